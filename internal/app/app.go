// Package app wires the supervisor, event bus, log sink, and credential gate
// into the Bubble Tea program. The Update loop is the single consumer of the
// event bus, so all log and running state is mutated in one place.
package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kboone/vigil/internal/clipboard"
	"github.com/kboone/vigil/internal/config"
	"github.com/kboone/vigil/internal/credential"
	"github.com/kboone/vigil/internal/event"
	"github.com/kboone/vigil/internal/logbook"
	"github.com/kboone/vigil/internal/logger"
	"github.com/kboone/vigil/internal/notification"
	"github.com/kboone/vigil/internal/supervisor"
	"github.com/kboone/vigil/internal/ui"
)

// BusEventMsg carries one event delivered by the bus.
type BusEventMsg struct {
	Event event.Event
}

// BusClosedMsg is sent when the bus delivery channel closes.
type BusClosedMsg struct{}

// CredentialRequestMsg is sent when a starting command needs a password.
type CredentialRequestMsg struct {
	Request credential.Request
}

// StartResultMsg reports the outcome of an asynchronous start attempt.
type StartResultMsg struct {
	Err error
}

// Model is the main Bubble Tea model
type Model struct {
	profile *config.Profile
	version string // App version (injected at build time)

	bus  *event.Bus
	sup  *supervisor.Supervisor
	gate *credential.Gate
	sink *logbook.Sink

	header  *ui.Header
	footer  *ui.Footer
	logView *ui.LogView
	modal   *ui.Modal

	width  int
	height int

	running bool

	// styledLines shadows the sink's raw buffer with display styling applied,
	// kept in lockstep with the buffer's eviction behavior. styledStart is
	// the index of the oldest visible line; the dead prefix is compacted
	// away in bulk so eviction does not reslice per line.
	styledLines []string
	styledStart int

	// pendingRequest is the outstanding credential request while the
	// password modal is up.
	pendingRequest *credential.Request
}

// New creates the app model and its supervision plumbing for one profile.
func New(profile *config.Profile, version string) *Model {
	bus := event.NewBus()
	gate := credential.NewGate()

	m := &Model{
		profile: profile,
		version: version,
		bus:     bus,
		sup:     supervisor.New(bus, gate),
		gate:    gate,
		sink:    logbook.NewSink(profile.ResolveLogFilePath()),
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		logView: ui.NewLogView(),
		modal:   ui.NewModal(),
	}

	m.header.SetProfile(profile.Name())

	return m
}

// Init starts the bus and credential listeners, plus the command itself when
// the profile has autostart set.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.listenForBusEvent(),
		m.listenForCredentialRequest(),
	}
	if m.profile.GetAutostart() {
		cmds = append(cmds, m.startCommand())
	}
	return tea.Batch(cmds...)
}

// listenForBusEvent waits for the next event from the bus.
func (m *Model) listenForBusEvent() tea.Cmd {
	ch := m.bus.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return BusClosedMsg{}
		}
		return BusEventMsg{Event: ev}
	}
}

// listenForCredentialRequest waits for the next password prompt request.
func (m *Model) listenForCredentialRequest() tea.Cmd {
	ch := m.gate.Requests()
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return CredentialRequestMsg{Request: req}
	}
}

// startCommand runs Start off the Update loop; Start blocks while the
// credential gate is prompting, which the Update loop itself services.
func (m *Model) startCommand() tea.Cmd {
	command := m.profile.GetCommand()
	return func() tea.Msg {
		return StartResultMsg{Err: m.sup.Start(command)}
	}
}

// applyChange folds a sink change into the display state.
func (m *Model) applyChange(change logbook.Change) {
	if change.Line != "" {
		styled := ui.StyleLine(change.Line,
			change.Source == event.SourceStderr,
			change.Source == event.SourceSystem)
		m.styledLines = append(m.styledLines, styled)
		if len(m.styledLines)-m.styledStart > logbook.MaxLines {
			m.styledStart++
			if m.styledStart >= logbook.MaxLines {
				n := copy(m.styledLines, m.styledLines[m.styledStart:])
				m.styledLines = m.styledLines[:n]
				m.styledStart = 0
			}
		}
		m.logView.SetLines(m.styledLines[m.styledStart:])
	}

	if change.Running != nil {
		m.running = *change.Running
		m.header.SetRunning(m.running)
	}

	if change.Exited {
		logger.Info("command exited, notifying")
		if err := notification.CommandExited(m.profile.Name(), change.Line, m.profile.GetIconPath()); err != nil {
			logger.Warn("notification failed: %v", err)
		}
	}
}

// appendSystemLine routes a locally generated diagnostic through the same
// sink path as process output, so it lands in the buffer and the mirror.
func (m *Model) appendSystemLine(line string) {
	change := m.sink.Apply(event.AppendLog{Line: line, Source: event.SourceSystem})
	m.applyChange(change)
}

// clearLogs empties the buffer and the display. The mirror file is
// append-only and is not touched.
func (m *Model) clearLogs() {
	m.sink.Buffer().Clear()
	m.styledLines = nil
	m.styledStart = 0
	m.logView.SetLines(nil)
}

// copyLogs places the raw buffer contents on the system clipboard.
func (m *Model) copyLogs() {
	lines := m.sink.Buffer().Lines()
	if err := clipboard.WriteText(strings.Join(lines, "\n")); err != nil {
		m.appendSystemLine("failed to copy logs: " + err.Error())
		return
	}
	logger.Debug("copied %d log lines to clipboard", len(lines))
}

// IsRunning reports the display's running state. For tests.
func (m *Model) IsRunning() bool {
	return m.running
}

// Lines returns the raw captured log lines. For tests.
func (m *Model) Lines() []string {
	return m.sink.Buffer().Lines()
}

// shutdown tears down the supervised process and the bus before quitting.
func (m *Model) shutdown() {
	m.sup.StopBlocking()
	m.sup.Close()
	m.bus.Close()
}
