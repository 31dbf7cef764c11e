package tile

import (
	"github.com/charmbracelet/lipgloss"
)

// sideLabelMin is the spare width needed before the "LIVE VIEW" label is shown.
const sideLabelMin = 20

// Shell centers a rendered tile on a dotted background filling width x height.
// A zero or too small area returns the tile unchanged.
func Shell(tileView string, width, height int) string {
	tw, th := lipgloss.Width(tileView), lipgloss.Height(tileView)
	if width < tw || height < th {
		return tileView
	}
	content := tileView
	if width-tw >= sideLabelMin {
		label := dimStyle.Render("──── LIVE VIEW")
		content = lipgloss.JoinHorizontal(lipgloss.Center, tileView, "  ", label)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceChars(" · "),
		lipgloss.WithWhitespaceForeground(colorFaint),
	)
}
