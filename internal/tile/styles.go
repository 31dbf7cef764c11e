package tile

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary = lipgloss.Color("#8c25f4")
	colorSuccess = lipgloss.Color("#10b981")
	colorDanger  = lipgloss.Color("#ef4444")
	colorCyan    = lipgloss.Color("#22d3ee")
	colorEmerald = lipgloss.Color("#34d399")
	colorPink    = lipgloss.Color("#f472b6")
	colorWhite   = lipgloss.Color("#f8f8f2")
	colorMuted   = lipgloss.Color("#6b6478")
	colorFaint   = lipgloss.Color("#3a3345")
	colorInk     = lipgloss.Color("#0a0612")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	dimStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	faintStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaint).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaint).
			Align(lipgloss.Center)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaint).
			Padding(0, 1)
)

// pill renders a short inverted label such as a card sub-value.
func pill(text string, bg lipgloss.Color) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorInk).Background(bg).Padding(0, 1).Render(text)
}
