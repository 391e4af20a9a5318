package logbook

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kboone/vigil/internal/event"
	"github.com/kboone/vigil/internal/logger"
)

// Change describes what applying one event did to the sink, so the render
// surface knows whether to redraw from a snapshot or append the delta.
type Change struct {
	Line    string       // line appended to the buffer, "" if none
	Source  event.Source // where the appended line came from
	Rebuild bool         // an eviction happened; redraw from Buffer.Lines()
	Running *bool        // non-nil when the running state changed
	Exited  bool         // a ProcessExited event was applied
	Code    *int         // exit code carried by that event, nil if unknown
}

// Sink applies events to the in-memory log buffer and, when enabled,
// mirrors each line to an append-only file. Mirroring is best-effort:
// a write failure is reported once per occurrence and never blocks the
// in-memory append.
//
// Sink must only be driven by the single bus consumer.
type Sink struct {
	buf        *Buffer
	mirrorPath string // "" disables mirroring
	log        *slog.Logger
}

// NewSink creates a sink over a fresh buffer. mirrorPath may be empty.
func NewSink(mirrorPath string) *Sink {
	return &Sink{
		buf:        NewBuffer(),
		mirrorPath: mirrorPath,
		log:        logger.ComponentLogger("logbook"),
	}
}

// Buffer exposes the underlying ring for snapshot reads.
func (s *Sink) Buffer() *Buffer {
	return s.buf
}

// SetMirrorPath changes the mirror target. Empty disables mirroring.
func (s *Sink) SetMirrorPath(path string) {
	s.mirrorPath = path
}

// MirrorPath returns the current mirror target, "" when disabled.
func (s *Sink) MirrorPath() string {
	return s.mirrorPath
}

// Apply folds one event into the sink and reports the resulting change.
func (s *Sink) Apply(ev event.Event) Change {
	switch ev := ev.(type) {
	case event.AppendLog:
		rebuild := s.append(ev.Line)
		return Change{Line: ev.Line, Source: ev.Source, Rebuild: rebuild}

	case event.ProcessExited:
		summary := exitSummary(ev.Code)
		rebuild := s.append(summary)
		stopped := false
		return Change{
			Line:    summary,
			Source:  event.SourceSystem,
			Rebuild: rebuild,
			Running: &stopped,
			Exited:  true,
			Code:    ev.Code,
		}

	case event.SetRunning:
		running := ev.Running
		return Change{Running: &running}
	}
	return Change{}
}

// append writes the line to the buffer and mirrors it. Returns whether the
// buffer evicted an old line.
func (s *Sink) append(line string) bool {
	evicted := s.buf.Append(line)

	if s.mirrorPath != "" {
		if err := appendToFile(s.mirrorPath, line); err != nil {
			s.log.Error("failed to write log file", "path", s.mirrorPath, "error", err)
		}
	}
	return evicted
}

// appendToFile appends one line to the mirror, creating parent directories
// as needed. The file is opened per write so no descriptor is held across
// long-lived sessions.
func appendToFile(path, line string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, line)
	return err
}

// exitSummary renders the synthesized line for a process exit.
func exitSummary(code *int) string {
	if code != nil {
		return fmt.Sprintf("command exited with code %d", *code)
	}
	return "command exited"
}
