package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the renderer.
type Styles struct {
	Title        *lipgloss.Style
	NavItem      *lipgloss.Style
	NavSelected  *lipgloss.Style
	NavCurrent   *lipgloss.Style
	Label        *lipgloss.Style
	FocusedLabel *lipgloss.Style
	Value        *lipgloss.Style
	Button       *lipgloss.Style
	Editing      *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Footer       *lipgloss.Style
	Filter       *lipgloss.Style
	FilterPrompt *lipgloss.Style
	PaneBorder   *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	NavItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	NavSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	NavCurrent: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FocusedLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Editing: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PaneBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
}

// Default exposes the standard style set used across the renderer.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
