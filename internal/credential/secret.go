// Package credential mediates the one-shot capture of a privilege-escalation
// password and its relay into a child process's stdin. The secret is never
// persisted, never logged, and its backing storage is overwritten as soon as
// the attempt finishes.
package credential

// Secret holds a password transiently in memory. Call Destroy as soon as the
// value has been written (or the attempt abandoned). Go's garbage collector
// cannot guarantee zero-residency of earlier copies; overwriting the backing
// slice is best-effort.
type Secret struct {
	data []byte
}

// NewSecret copies the given value into fresh backing storage.
func NewSecret(value string) *Secret {
	return &Secret{data: []byte(value)}
}

// Bytes returns the secret's backing bytes. Callers must not retain the
// slice past Destroy.
func (s *Secret) Bytes() []byte {
	return s.data
}

// Len returns the secret length in bytes.
func (s *Secret) Len() int {
	return len(s.data)
}

// Destroy overwrites the backing storage with zeros and drops it.
// Safe to call more than once.
func (s *Secret) Destroy() {
	for i := range s.data {
		s.data[i] = 0
	}
	s.data = nil
}
