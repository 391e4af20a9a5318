package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kboone/vigil/internal/credential"
	"github.com/kboone/vigil/internal/ui"
)

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case BusEventMsg:
		change := m.sink.Apply(msg.Event)
		m.applyChange(change)
		return m, m.listenForBusEvent()

	case BusClosedMsg:
		return m, tea.Quit

	case CredentialRequestMsg:
		m.pendingRequest = &msg.Request
		m.modal.Show(ui.NewPasswordState(msg.Request.Command))
		return m, m.listenForCredentialRequest()

	case StartResultMsg:
		if msg.Err != nil {
			m.appendSystemLine(msg.Err.Error())
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.modal.IsVisible() {
			return m.handleModalKey(msg)
		}
		return m.handleGlobalKey(msg)
	}

	// Everything else (mouse wheel and friends) scrolls the log view
	return m, m.logView.Update(msg)
}

// handleModalKey drives the password modal.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if state, ok := m.modal.State.(*ui.PasswordState); ok && m.pendingRequest != nil {
			m.pendingRequest.Grant(credential.NewSecret(state.GetPassword()))
		}
		m.pendingRequest = nil
		m.modal.Hide()
		return m, nil

	case "esc":
		if m.pendingRequest != nil {
			m.pendingRequest.Deny()
		}
		m.pendingRequest = nil
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// handleGlobalKey handles the main key bindings.
func (m *Model) handleGlobalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "s":
		if m.sup.IsRunning() {
			m.sup.Stop()
			return m, nil
		}
		return m, m.startCommand()

	case "c":
		m.copyLogs()
		return m, nil

	case "x":
		m.clearLogs()
		return m, nil
	}

	return m, m.logView.Update(msg)
}
