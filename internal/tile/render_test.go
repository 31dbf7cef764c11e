package tile

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"infracore-tile/internal/config"
	"infracore-tile/internal/telemetry"
)

func dashboardSnap(status telemetry.SystemStatus) telemetry.Snapshot {
	m := telemetry.InitialMetrics()
	m.Status = status
	return telemetry.Snapshot{
		Variant:  telemetry.VariantDashboard,
		Metrics:  m,
		Services: telemetry.DashboardServices(),
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		status telemetry.SystemStatus
		label  string
		color  lipgloss.Color
	}{
		{telemetry.SystemOptimal, "System Stable", colorSuccess},
		{telemetry.SystemWarning, "Load High", colorPrimary},
		{telemetry.SystemCritical, "Critical", colorDanger},
		{telemetry.SystemStatus("unknown"), "Critical", colorDanger},
	}
	for _, tc := range tests {
		b := BadgeFor(tc.status)
		if b.Label != tc.label || b.Color != tc.color {
			t.Errorf("BadgeFor(%s) = %+v, want %s/%s", tc.status, b, tc.label, tc.color)
		}
	}
	if colorDanger != lipgloss.Color("#ef4444") {
		t.Errorf("critical badge should be red, got %s", colorDanger)
	}
}

func TestRenderDashboardCritical(t *testing.T) {
	r := New(config.Default())
	out := r.Render(dashboardSnap(telemetry.SystemCritical), 0)
	for _, want := range []string{"CRITICAL", "InfraCore", "TOTAL LOAD", "NODES", "124", "30GB", "MICROSERVICES", "AUTH", "US-EAST-1", "99.99%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in rendered tile", want)
		}
	}
	if strings.Contains(out, "SYSTEM STABLE") {
		t.Errorf("critical tile should not show the stable badge")
	}
}

func TestRenderFixedWidth(t *testing.T) {
	r := New(config.Default())
	for _, snap := range []telemetry.Snapshot{
		dashboardSnap(telemetry.SystemOptimal),
		{Variant: telemetry.VariantGrid, Services: telemetry.GridServices()},
	} {
		out := r.Render(snap, 3)
		if w := lipgloss.Width(out); w != Width {
			t.Errorf("%s tile width = %d, want %d", snap.Variant, w, Width)
		}
	}
}

func TestRenderIsPure(t *testing.T) {
	r := New(config.Default())
	snap := dashboardSnap(telemetry.SystemWarning)
	if r.Render(snap, 5) != r.Render(snap, 5) {
		t.Fatalf("same snapshot and frame should render identically")
	}
	if !strings.Contains(r.Render(snap, 5), "LOAD HIGH") {
		t.Fatalf("expected warning badge")
	}
}

func TestRenderGridTile(t *testing.T) {
	r := New(config.Default(config.WithVariant("grid")))
	out := r.Render(telemetry.Snapshot{Variant: telemetry.VariantGrid, Services: telemetry.GridServices()}, 0)
	for _, want := range []string{"Microservices Health", "SYSTEM GRID ACTIVE", "LEGACY", "9 healthy", "1 inactive"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in grid tile", want)
		}
	}
	if strings.Contains(out, "TOTAL LOAD") {
		t.Errorf("grid tile should not draw the hero section")
	}
}

func TestChip(t *testing.T) {
	crit := Chip(telemetry.ServiceEntity{Name: "Img-Proc", Icon: "⚠", Status: telemetry.ServiceCritical}, 0, 13)
	if !strings.Contains(crit, "!") {
		t.Errorf("critical chip should carry a marker")
	}
	ok := Chip(telemetry.ServiceEntity{Name: "Auth", Icon: "⛨", Status: telemetry.ServiceHealthy}, 0, 13)
	if strings.Contains(ok, "!") {
		t.Errorf("healthy chip should not carry a marker")
	}
	long := Chip(telemetry.ServiceEntity{Name: "Very-Long-Service-Name", Status: telemetry.ServiceHealthy}, 0, 10)
	if lipgloss.Width(long) > 10 {
		t.Errorf("chip wider than requested: %d", lipgloss.Width(long))
	}
	if !strings.Contains(long, "…") {
		t.Errorf("expected truncated name")
	}
}

func TestStatusDotAnimation(t *testing.T) {
	if statusDot(telemetry.ServiceCritical, 0) == statusDot(telemetry.ServiceCritical, 1) {
		t.Errorf("critical should flash every frame")
	}
	if statusDot(telemetry.ServiceWarning, 0) == statusDot(telemetry.ServiceWarning, 1) {
		t.Errorf("warning should ping every other frame")
	}
	if statusDot(telemetry.ServiceHealthy, 0) != statusDot(telemetry.ServiceHealthy, 1) {
		t.Errorf("healthy should breathe slowly")
	}
	for f := 0; f < 8; f++ {
		if statusDot(telemetry.ServiceInactive, f) != "○" {
			t.Errorf("inactive should be static")
		}
	}
}

func TestServiceColor(t *testing.T) {
	if ServiceColor(telemetry.ServiceCritical) != colorDanger {
		t.Errorf("critical chip should be red")
	}
	if ServiceColor(telemetry.ServiceInactive) != colorMuted {
		t.Errorf("inactive chip should be gray")
	}
}

func TestBigText(t *testing.T) {
	out := bigText("47%")
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if w := lipgloss.Width(lines[0]); w != 11 {
		t.Errorf("expected width 11, got %d", w)
	}
}

func TestHeroChartDimensions(t *testing.T) {
	out := heroChart(90, 80, 40, 4, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 40 {
			t.Errorf("row %d width = %d, want 40", i, w)
		}
	}
}

func TestShell(t *testing.T) {
	r := New(config.Default())
	view := r.Render(dashboardSnap(telemetry.SystemOptimal), 0)
	if Shell(view, 10, 10) != view {
		t.Errorf("too small area should return the tile unchanged")
	}
	h := lipgloss.Height(view) + 4
	out := Shell(view, Width+40, h)
	if !strings.Contains(out, "LIVE VIEW") {
		t.Errorf("expected side label in wide shell")
	}
	if got := lipgloss.Height(out); got != h {
		t.Errorf("shell height = %d, want %d", got, h)
	}
	if got := lipgloss.Width(out); got != Width+40 {
		t.Errorf("shell width = %d, want %d", got, Width+40)
	}
}
