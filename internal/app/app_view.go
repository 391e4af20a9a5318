package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kboone/vigil/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	// Log view fills the space between header, status line, and footer,
	// inside its border
	logHeight := m.height - ui.HeaderHeight - ui.StatusHeight - ui.FooterHeight - 2
	if logHeight < 1 {
		logHeight = 1
	}
	logWidth := m.width - 2
	if logWidth < 1 {
		logWidth = 1
	}
	m.logView.SetSize(logWidth, logHeight)
}

// statusLine renders the line between the log view and the footer: running
// state plus how many lines the buffer currently holds.
func (m *Model) statusLine() string {
	var state string
	if m.running {
		state = ui.StatusRunningStyle.Render("running")
	} else {
		state = ui.StatusStoppedStyle.Render("stopped")
	}

	count := m.sink.Buffer().Len()
	info := ui.FooterDescStyle.Render(fmt.Sprintf("%d line(s)", count))

	return ui.FooterStyle.Width(m.width).Render(state + "  " + info)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	m.footer.SetContext(m.running, m.modal.IsVisible())

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.logView.View(),
		m.statusLine(),
		m.footer.View(),
	)

	if m.modal.IsVisible() {
		v.SetContent(m.modal.View(m.width, m.height))
		return v
	}

	v.SetContent(view)
	return v
}
