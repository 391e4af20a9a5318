package ui

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// PasswordState is the modal shown when the command about to start needs a
// sudo password. The entered value is never echoed and never logged.
type PasswordState struct {
	Command string

	password string
	form     *huh.Form
}

func (*PasswordState) modalState() {}

func (s *PasswordState) Title() string { return "Sudo Password" }

func (s *PasswordState) Help() string {
	return "Enter: submit  Esc: cancel"
}

func (s *PasswordState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	commandLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Command:")

	commandLine := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + s.Command)

	formView := s.form.View()

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, commandLabel, commandLine, formView, help)
}

func (s *PasswordState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetPassword returns the entered password.
func (s *PasswordState) GetPassword() string {
	return s.password
}

// NewPasswordState creates the password prompt modal for the given command.
func NewPasswordState(command string) *PasswordState {
	s := &PasswordState{Command: command}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password),
		),
	).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	initHuhForm(s.form)

	return s
}
