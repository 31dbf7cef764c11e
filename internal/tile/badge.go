package tile

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"infracore-tile/internal/telemetry"
)

// Badge is the header indicator for a system status.
type Badge struct {
	Label string
	Color lipgloss.Color
}

// BadgeFor maps a system status to its label and color. Unknown values are
// treated as critical.
func BadgeFor(status telemetry.SystemStatus) Badge {
	switch status {
	case telemetry.SystemOptimal:
		return Badge{Label: "System Stable", Color: colorSuccess}
	case telemetry.SystemWarning:
		return Badge{Label: "Load High", Color: colorPrimary}
	default:
		return Badge{Label: "Critical", Color: colorDanger}
	}
}

// ServiceColor maps a service status to its chip color.
func ServiceColor(status telemetry.ServiceStatus) lipgloss.Color {
	switch status {
	case telemetry.ServiceHealthy:
		return colorSuccess
	case telemetry.ServiceWarning:
		return colorPrimary
	case telemetry.ServiceCritical:
		return colorDanger
	default:
		return colorMuted
	}
}

// statusDot returns the indicator glyph for a service at the given frame.
// Healthy breathes slowly, warning pings, critical flashes every frame and
// inactive is static.
func statusDot(status telemetry.ServiceStatus, frame int) string {
	switch status {
	case telemetry.ServiceHealthy:
		if (frame/4)%2 == 0 {
			return "●"
		}
		return "•"
	case telemetry.ServiceWarning:
		if frame%2 == 0 {
			return "◉"
		}
		return "●"
	case telemetry.ServiceCritical:
		if frame%2 == 0 {
			return "●"
		}
		return "○"
	default:
		return "○"
	}
}

// renderBadge draws the header badge with a pulsing dot.
func renderBadge(status telemetry.SystemStatus, frame int) string {
	b := BadgeFor(status)
	dot := "●"
	if frame%3 == 2 {
		dot = "◌"
	}
	style := lipgloss.NewStyle().
		Foreground(b.Color).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(b.Color).
		Padding(0, 1)
	return style.Render(dot + " " + strings.ToUpper(b.Label))
}
