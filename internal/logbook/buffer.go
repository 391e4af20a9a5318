// Package logbook holds the bounded in-memory log of captured output lines
// and the sink that applies supervisor events to it.
package logbook

// MaxLines is the capacity of the in-memory log ring. Insertion past
// capacity evicts the oldest line.
const MaxLines = 5000

// Buffer is a FIFO ring of log lines with a fixed capacity. Lines are never
// reordered; eviction drops the oldest line first.
//
// Buffer is not safe for concurrent use: all mutation flows through the
// single event consumer.
type Buffer struct {
	lines []string
	head  int
	count int
	cap   int
}

// NewBuffer creates a buffer with the default capacity.
func NewBuffer() *Buffer {
	return NewBufferSize(MaxLines)
}

// NewBufferSize creates a buffer with an explicit capacity. Used by tests.
func NewBufferSize(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		lines: make([]string, capacity),
		cap:   capacity,
	}
}

// Append adds a line, evicting the oldest when full. It reports whether an
// eviction happened, the signal for a render surface to rebuild from a
// snapshot instead of appending the delta.
func (b *Buffer) Append(line string) (evicted bool) {
	if b.count == b.cap {
		b.lines[b.head] = line
		b.head = (b.head + 1) % b.cap
		return true
	}
	b.lines[(b.head+b.count)%b.cap] = line
	b.count++
	return false
}

// Len returns the number of stored lines.
func (b *Buffer) Len() int {
	return b.count
}

// Lines returns a snapshot of the stored lines in insertion order.
func (b *Buffer) Lines() []string {
	out := make([]string, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.lines[(b.head+i)%b.cap]
	}
	return out
}

// Clear drops all stored lines.
func (b *Buffer) Clear() {
	b.head = 0
	b.count = 0
}
