// Package styles holds the color themes and lipgloss styles of the
// walkthrough TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles is the set of lipgloss styles for one palette.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style

	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	ActivePanel lipgloss.Style

	PlanDone    lipgloss.Style
	PlanActive  lipgloss.Style
	PlanPending lipgloss.Style

	LineNumber  lipgloss.Style
	Code        lipgloss.Style
	CurrentLine lipgloss.Style
	Hint        lipgloss.Style

	LocalName  lipgloss.Style
	LocalValue lipgloss.Style
	Output     lipgloss.Style

	Muted     lipgloss.Style
	Error     lipgloss.Style
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

// New builds the styles for p.
func New(p *ColorPalette) *Styles {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	return &Styles{
		Palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().Foreground(p.Muted).Italic(true),

		Panel:       border,
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		ActivePanel: border.BorderForeground(p.Primary),

		PlanDone:    lipgloss.NewStyle().Foreground(p.Secondary),
		PlanActive:  lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		PlanPending: lipgloss.NewStyle().Foreground(p.Muted),

		LineNumber:  lipgloss.NewStyle().Foreground(p.Muted),
		Code:        lipgloss.NewStyle().Foreground(p.Text),
		CurrentLine: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Surface),
		Hint:        lipgloss.NewStyle().Italic(true).Foreground(p.Warning),

		LocalName:  lipgloss.NewStyle().Foreground(p.Variable),
		LocalValue: lipgloss.NewStyle().Foreground(p.Text),
		Output:     lipgloss.NewStyle().Foreground(p.Secondary),

		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		StatusBar: lipgloss.NewStyle().Foreground(p.Muted),
		HelpKey:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		HelpDesc:  lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// ForTheme builds the styles for a named theme. Unknown names get the
// default palette.
func ForTheme(name string) *Styles {
	return New(GetPalette(ThemeName(name)))
}
