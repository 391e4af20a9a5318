package app

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kboone/vigil/internal/config"
	"github.com/kboone/vigil/internal/credential"
	"github.com/kboone/vigil/internal/event"
	"github.com/kboone/vigil/internal/logbook"
	"github.com/kboone/vigil/internal/logger"
	"github.com/kboone/vigil/internal/notification"
	"github.com/kboone/vigil/internal/supervisor"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	logger.Reset()
	dir := t.TempDir()
	if err := logger.Init(filepath.Join(dir, "debug.log")); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	t.Cleanup(logger.Reset)

	profile, err := config.LoadPath("default", filepath.Join(dir, "default.json"))
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}

	m := New(profile, "test")
	t.Cleanup(m.shutdown)
	return m
}

func hasLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}

func TestUpdate_BusEvents(t *testing.T) {
	m := newTestModel(t)

	m.Update(BusEventMsg{Event: event.SetRunning{Running: true}})
	if !m.IsRunning() {
		t.Error("model not running after SetRunning{true}")
	}

	m.Update(BusEventMsg{Event: event.AppendLog{Line: "hello", Source: event.SourceStdout}})
	if !hasLine(m.Lines(), "hello") {
		t.Errorf("lines = %v, want to contain %q", m.Lines(), "hello")
	}
}

func TestUpdate_ExitEventNotifies(t *testing.T) {
	m := newTestModel(t)
	m.Update(BusEventMsg{Event: event.SetRunning{Running: true}})

	var gotTitle, gotMessage string
	notification.SetNotifier(func(title, message, icon string) error {
		gotTitle = title
		gotMessage = message
		return nil
	})
	defer notification.ResetNotifier()

	code := 0
	m.Update(BusEventMsg{Event: event.ProcessExited{Code: &code}})

	if m.IsRunning() {
		t.Error("model still running after exit event")
	}
	if !hasLine(m.Lines(), "command exited with code 0") {
		t.Errorf("lines = %v, want exit summary", m.Lines())
	}
	if gotTitle != "Vigil" {
		t.Errorf("notification title = %q", gotTitle)
	}
	if !strings.Contains(gotMessage, "command exited with code 0") {
		t.Errorf("notification message = %q", gotMessage)
	}
}

func TestUpdate_StartErrorBecomesLogLine(t *testing.T) {
	m := newTestModel(t)

	m.Update(StartResultMsg{Err: supervisor.ErrEmptyCommand})
	if !hasLine(m.Lines(), "command is empty") {
		t.Errorf("lines = %v, want diagnostic", m.Lines())
	}
}

func TestUpdate_ClearLogs(t *testing.T) {
	m := newTestModel(t)
	m.Update(BusEventMsg{Event: event.AppendLog{Line: "noise", Source: event.SourceStdout}})

	m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(m.Lines()) != 0 {
		t.Errorf("lines after clear = %v, want empty", m.Lines())
	}
}

func TestApplyChange_DisplayWindowEviction(t *testing.T) {
	m := newTestModel(t)

	// Push far enough past capacity that the dead-prefix compaction runs.
	// Stdout lines pass through StyleLine unstyled, so they compare directly.
	total := 2*logbook.MaxLines + 3
	for i := 0; i < total; i++ {
		m.applyChange(logbook.Change{Line: strconv.Itoa(i), Source: event.SourceStdout})
	}

	window := m.styledLines[m.styledStart:]
	if len(window) != logbook.MaxLines {
		t.Fatalf("display window = %d lines, want %d", len(window), logbook.MaxLines)
	}
	if want := strconv.Itoa(total - logbook.MaxLines); window[0] != want {
		t.Errorf("oldest visible line = %q, want %q", window[0], want)
	}
	if want := strconv.Itoa(total - 1); window[len(window)-1] != want {
		t.Errorf("newest visible line = %q, want %q", window[len(window)-1], want)
	}
	if m.styledStart >= logbook.MaxLines {
		t.Errorf("dead prefix holds %d lines, compaction never ran", m.styledStart)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not produce QuitMsg")
	}
}

func TestCredentialFlow_Grant(t *testing.T) {
	m := newTestModel(t)

	type result struct {
		secret *credential.Secret
		ok     bool
	}
	done := make(chan result, 1)
	go func() {
		secret, ok := m.gate.Prompt("sudo ls")
		done <- result{secret, ok}
	}()

	var req credential.Request
	select {
	case req = <-m.gate.Requests():
	case <-time.After(2 * time.Second):
		t.Fatal("no credential request arrived")
	}

	m.Update(CredentialRequestMsg{Request: req})
	if !m.modal.IsVisible() {
		t.Fatal("password modal not shown")
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.modal.IsVisible() {
		t.Error("modal still visible after submit")
	}

	select {
	case res := <-done:
		if !res.ok {
			t.Error("prompt reported cancel, want grant")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not resolve")
	}
}

func TestCredentialFlow_Cancel(t *testing.T) {
	m := newTestModel(t)

	done := make(chan bool, 1)
	go func() {
		_, ok := m.gate.Prompt("sudo ls")
		done <- ok
	}()

	req := <-m.gate.Requests()
	m.Update(CredentialRequestMsg{Request: req})

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.modal.IsVisible() {
		t.Error("modal still visible after cancel")
	}

	select {
	case ok := <-done:
		if ok {
			t.Error("prompt reported grant, want cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not resolve")
	}
}

func TestView_RendersAfterResize(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(BusEventMsg{Event: event.AppendLog{Line: "some output", Source: event.SourceStdout}})

	// Must not panic at real and degenerate sizes
	_ = m.View()
	m.Update(tea.WindowSizeMsg{Width: 3, Height: 2})
	_ = m.View()
}
