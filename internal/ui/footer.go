package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width     int
	running   bool // Whether the supervised command is running
	prompting bool // Whether the password modal is up
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(running, prompting bool) {
	f.running = running
	f.prompting = prompting
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer
func (f *Footer) View() string {
	var bindings []KeyBinding

	switch {
	case f.prompting:
		bindings = []KeyBinding{
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "cancel"},
		}
	case f.running:
		bindings = []KeyBinding{
			{Key: "s", Desc: "stop"},
			{Key: "c", Desc: "copy logs"},
			{Key: "x", Desc: "clear logs"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "q", Desc: "quit"},
		}
	default:
		bindings = []KeyBinding{
			{Key: "s", Desc: "start"},
			{Key: "c", Desc: "copy logs"},
			{Key: "x", Desc: "clear logs"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "q", Desc: "quit"},
		}
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
