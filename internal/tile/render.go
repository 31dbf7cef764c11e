// Package tile renders tile snapshots as fixed-width terminal panels. Every
// function here is pure: the same snapshot and frame give the same string.
package tile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"infracore-tile/internal/config"
	"infracore-tile/internal/telemetry"
)

const (
	// Width is the outer width of a tile, borders included.
	Width = 62

	innerWidth  = Width - 4
	gridColumns = 4
	chartHeight = 4
)

// Renderer draws tiles. It holds only static branding.
type Renderer struct {
	header config.Header
	footer config.Footer
	memBar progress.Model
	mesh   spinner.Spinner
}

// New creates a renderer using the header and footer of cfg.
func New(cfg *config.TileConfig) *Renderer {
	return &Renderer{
		header: cfg.Header,
		footer: cfg.Footer,
		memBar: progress.New(
			progress.WithSolidFill(string(colorEmerald)),
			progress.WithoutPercentage(),
			progress.WithWidth(12),
		),
		mesh: spinner.Pulse,
	}
}

// Render draws the tile for snap at the given animation frame.
func (r *Renderer) Render(snap telemetry.Snapshot, frame int) string {
	if snap.Variant == telemetry.VariantGrid {
		return r.renderGridTile(snap, frame)
	}
	return r.renderDashboard(snap, frame)
}

func (r *Renderer) renderDashboard(snap telemetry.Snapshot, frame int) string {
	sections := []string{
		r.renderHeader(snap.Metrics.Status, frame),
		divider(),
		r.renderHero(snap.Metrics, frame),
		r.renderCards(snap.Metrics),
		r.renderServicePanel(snap.Services, frame, "MICROSERVICES", "MESH ACTIVE"),
		divider(),
		r.renderFooter(frame),
	}
	return tileStyle.Width(innerWidth + 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (r *Renderer) renderGridTile(snap telemetry.Snapshot, frame int) string {
	title := titleStyle.Render("Microservices Health")
	label := okStyle.Render("SYSTEM GRID ACTIVE")
	if frame%4 == 3 {
		label = dimStyle.Render("SYSTEM GRID ACTIVE")
	}
	head := spread(title, label, innerWidth)

	counts := snap.StatusCounts()
	summary := dimStyle.Render(fmt.Sprintf("%d healthy · %d warning · %d critical · %d inactive",
		counts[telemetry.ServiceHealthy], counts[telemetry.ServiceWarning],
		counts[telemetry.ServiceCritical], counts[telemetry.ServiceInactive]))

	body := lipgloss.JoinVertical(lipgloss.Left,
		head,
		"",
		serviceGrid(snap.Services, frame, innerWidth),
		"",
		summary,
	)
	return tileStyle.Width(innerWidth + 2).Render(body)
}

func (r *Renderer) renderHeader(status telemetry.SystemStatus, frame int) string {
	logo := lipgloss.NewStyle().
		Foreground(colorWhite).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 1).
		Render("∿")
	brand := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(r.header.Title),
		primaryStyle.Render(strings.ToUpper(r.header.Tagline))+dimStyle.Render(" · "+r.header.Version),
	)
	left := lipgloss.JoinHorizontal(lipgloss.Center, logo, " ", brand)
	return spread(left, renderBadge(status, frame), innerWidth)
}

func (r *Renderer) renderHero(m telemetry.MetricState, frame int) string {
	chart := heroChart(m.CPULoad, m.MemoryLoad, innerWidth, chartHeight, frame)
	readout := lipgloss.NewStyle().Foreground(colorWhite).Bold(true).
		Render(bigText(fmt.Sprintf("%.0f%%", m.CPULoad)))
	ping := "●"
	if frame%2 == 1 {
		ping = "◌"
	}
	readout = lipgloss.JoinHorizontal(lipgloss.Top, readout, " ", primaryStyle.Render(ping))
	caption := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1).
		Render("TOTAL LOAD")

	center := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		chart,
		center.Render(readout),
		center.Render(caption),
	)
}

type metricCard struct {
	icon  string
	label string
	value string
	sub   string
	color lipgloss.Color
	extra string
}

func (r *Renderer) renderCards(m telemetry.MetricState) string {
	cards := []metricCard{
		{icon: "▤", label: "NODES", value: fmt.Sprintf("%d", m.ActiveNodes), sub: "+2", color: colorCyan},
		{icon: "⛁", label: "MEMORY", value: fmt.Sprintf("%.0fGB", m.MemoryLoad), sub: "Stable", color: colorEmerald,
			extra: r.memBar.ViewAs(m.MemoryLoad / 100)},
		{icon: "◠", label: "NETWORK", value: r.footer.Network, sub: "↑ High", color: colorPink},
	}
	cardWidth := (innerWidth - 2) / 3
	views := make([]string, 0, len(cards))
	for i, c := range cards {
		lines := []string{
			lipgloss.NewStyle().Foreground(c.color).Render(c.icon),
			valueStyle.Render(c.value),
			dimStyle.Render(c.label) + " " + pill(c.sub, c.color),
		}
		if c.extra != "" {
			lines = append(lines, c.extra)
		} else {
			lines = append(lines, "")
		}
		view := cardStyle.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
		if i > 0 {
			view = lipgloss.JoinHorizontal(lipgloss.Top, " ", view)
		}
		views = append(views, view)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func (r *Renderer) renderServicePanel(svcs []telemetry.ServiceEntity, frame int, title, active string) string {
	width := innerWidth - 4
	pulse := r.mesh.Frames[frame%len(r.mesh.Frames)]
	head := spread(
		dimStyle.Render("▣ "+title),
		okStyle.Render(pulse+" "+active),
		width,
	)
	body := lipgloss.JoinVertical(lipgloss.Left, head, "", serviceGrid(svcs, frame, width))
	return panelStyle.Width(innerWidth - 2).Render(body)
}

func (r *Renderer) renderFooter(frame int) string {
	scan := faintStyle.Render(scanline(innerWidth, frame))
	left := lipgloss.JoinVertical(lipgloss.Left,
		okStyle.Render("✔ "+r.footer.State),
		dimStyle.Render("REGION: "+strings.ToUpper(r.footer.Region)),
	)
	latency := lipgloss.JoinVertical(lipgloss.Right,
		dimStyle.Render("LATENCY"),
		lipgloss.NewStyle().Foreground(colorSuccess).Render("• ")+valueStyle.Render(r.footer.Latency),
	)
	uptime := lipgloss.JoinVertical(lipgloss.Right,
		dimStyle.Render("UPTIME"),
		valueStyle.Render(r.footer.Uptime),
	)
	right := lipgloss.JoinHorizontal(lipgloss.Top, latency, dimStyle.Render(" │ "), uptime)
	return lipgloss.JoinVertical(lipgloss.Left, scan, spread(left, right, innerWidth))
}

// serviceGrid lays out service chips in rows of gridColumns.
func serviceGrid(svcs []telemetry.ServiceEntity, frame, width int) string {
	chipWidth := width / gridColumns
	var rows []string
	for start := 0; start < len(svcs); start += gridColumns {
		end := min(start+gridColumns, len(svcs))
		chips := make([]string, 0, gridColumns)
		for _, svc := range svcs[start:end] {
			chips = append(chips, Chip(svc, frame, chipWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Chip renders one service as an icon, a status dot and a truncated name.
// Critical services carry a "!" marker.
func Chip(svc telemetry.ServiceEntity, frame, width int) string {
	color := ServiceColor(svc.Status)
	mark := lipgloss.NewStyle().Foreground(color)
	top := mark.Render(svc.Icon + " " + statusDot(svc.Status, frame))
	if svc.Status == telemetry.ServiceCritical {
		top += " " + lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorDanger).Render("!")
	}
	name := truncate.StringWithTail(strings.ToUpper(svc.Name), uint(max(width-2, 1)), "…")
	box := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center, box.Render(top), box.Render(dimStyle.Render(name)))
}

// spread places left and right at opposite edges of a line of width w.
func spread(left, right string, w int) string {
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), right)
}

func divider() string {
	return faintStyle.Render(strings.Repeat("─", innerWidth))
}

// scanline draws a faint sweep that moves across the footer with the frame.
func scanline(width, frame int) string {
	pos := frame % width
	var sb strings.Builder
	for i := 0; i < width; i++ {
		d := i - pos
		if d < 0 {
			d = -d
		}
		switch {
		case d == 0:
			sb.WriteRune('━')
		case d < 4:
			sb.WriteRune('─')
		default:
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}
