// Package event defines the lifecycle and log events produced by the
// supervisor and its stream readers, and the bus that carries them to the
// single consumer.
package event

// Source identifies where a log line came from.
type Source int

const (
	// SourceStdout is a line read from the supervised process's stdout.
	SourceStdout Source = iota
	// SourceStderr is a line read from the supervised process's stderr.
	SourceStderr
	// SourceSystem is a line synthesized by vigil itself (start/stop
	// notices, diagnostics, exit summaries).
	SourceSystem
)

// String returns a human-readable name for the source
func (s Source) String() string {
	switch s {
	case SourceStdout:
		return "stdout"
	case SourceStderr:
		return "stderr"
	case SourceSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Event is one of AppendLog, ProcessExited, or SetRunning. Events are
// produced by the supervisor and its stream readers and consumed exactly
// once, in FIFO order relative to all producers combined.
type Event interface {
	isEvent()
}

// AppendLog carries one captured log line.
type AppendLog struct {
	Line   string
	Source Source
}

// ProcessExited signals that the supervised process is gone. Code is nil
// when the OS did not report an exit code (e.g., killed by signal).
type ProcessExited struct {
	Code *int
}

// SetRunning toggles the running/stopped state of the start-stop affordance.
type SetRunning struct {
	Running bool
}

func (AppendLog) isEvent()     {}
func (ProcessExited) isEvent() {}
func (SetRunning) isEvent()    {}
