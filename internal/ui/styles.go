// Package ui provides the visual components of the vigil TUI: the header and
// footer bars, the scrolling log view, and the password modal.
package ui

import "charm.land/lipgloss/v2"

// Layout constants
const (
	HeaderHeight = 1
	FooterHeight = 1
	StatusHeight = 1

	ModalWidth      = 60
	ModalInputWidth = 50
)

// Palette hex values, kept as strings for the header gradient math
const (
	hexPrimary = "#7C3AED"
	hexBg      = "#1F2937"
)

// Color palette
var (
	ColorPrimary     = lipgloss.Color(hexPrimary)
	ColorSecondary   = lipgloss.Color("#06B6D4")
	ColorBg          = lipgloss.Color(hexBg)
	ColorText        = lipgloss.Color("#F9FAFB")
	ColorTextMuted   = lipgloss.Color("#9CA3AF")
	ColorTextInverse = lipgloss.Color("#1F2937")
	ColorBorder      = lipgloss.Color("#374151")
	ColorSuccess     = lipgloss.Color("#4ADE80")
	ColorWarning     = lipgloss.Color("#F59E0B")
	ColorError       = lipgloss.Color("#EF4444")

	ColorStdout = lipgloss.Color("#F9FAFB")
	ColorStderr = lipgloss.Color("#F87171")
	ColorSystem = lipgloss.Color("#9CA3AF")
)

// Shared styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StatusStoppedStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	LogStderrStyle = lipgloss.NewStyle().
			Foreground(ColorStderr)

	LogSystemStyle = lipgloss.NewStyle().
			Foreground(ColorSystem).
			Italic(true)
)
