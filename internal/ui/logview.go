package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// LogView is the scrolling pane showing the captured output of the
// supervised command. It follows the tail while the user hasn't scrolled up.
type LogView struct {
	viewport   viewport.Model
	followTail bool
}

// NewLogView creates the log view with tail-following enabled.
func NewLogView() *LogView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SoftWrap = true

	return &LogView{
		viewport:   vp,
		followTail: true,
	}
}

// SetSize resizes the viewport.
func (v *LogView) SetSize(width, height int) {
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(height)
	if v.followTail {
		v.viewport.GotoBottom()
	}
}

// SetLines replaces the viewport content with the given log lines.
func (v *LogView) SetLines(lines []string) {
	v.viewport.SetContent(strings.Join(lines, "\n"))
	if v.followTail {
		v.viewport.GotoBottom()
	}
}

// FollowTail reports whether the view is pinned to the newest line.
func (v *LogView) FollowTail() bool {
	return v.followTail
}

// Update delegates scroll handling to the viewport. Scrolling up releases
// tail-following; scrolling back to the bottom re-engages it.
func (v *LogView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	v.followTail = v.viewport.AtBottom()
	return cmd
}

// View renders the log pane inside its border.
func (v *LogView) View() string {
	return PanelStyle.Render(v.viewport.View())
}

// Width returns the viewport width.
func (v *LogView) Width() int {
	return v.viewport.Width()
}

// Height returns the viewport height.
func (v *LogView) Height() int {
	return v.viewport.Height()
}

// StyleLine colors a log line by its source marker. Stdout passes through
// unstyled so ANSI sequences from the child render as-is.
func StyleLine(line string, stderr, system bool) string {
	switch {
	case system:
		return LogSystemStyle.Render(line)
	case stderr:
		return LogStderrStyle.Render(line)
	default:
		return line
	}
}
