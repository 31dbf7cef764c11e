package sim

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"infracore-tile/internal/config"
	"infracore-tile/internal/telemetry"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func testSnapshot(v telemetry.Variant) telemetry.Snapshot {
	return telemetry.Snapshot{
		TileID:    "t",
		Variant:   v,
		Metrics:   telemetry.InitialMetrics(),
		Services:  telemetry.PresetServices(v),
		Timestamp: time.Unix(0, 0).UTC(),
	}
}

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	if err := w.WriteState(testSnapshot(telemetry.VariantDashboard)); err != nil {
		t.Fatalf("state: %v", err)
	}
	msg, ok := p.msgs[0].(stateMsg)
	if !ok {
		t.Fatalf("expected stateMsg, got %T", p.msgs[0])
	}
	if msg.TileID != "t" {
		t.Errorf("unexpected snapshot %+v", msg.Snapshot)
	}
}

func TestTUIModelMountingPlaceholder(t *testing.T) {
	m := newTUIModel(config.Default())
	if got := m.View(); got != "mounting tile…" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	updated, _ := m.Update(stateMsg{Snapshot: testSnapshot(telemetry.VariantDashboard)})
	view := updated.(tuiModel).View()
	if !strings.Contains(view, "MICROSERVICES") {
		t.Fatalf("expected rendered dashboard, got:\n%s", view)
	}
}

func TestTUIModelFrameAndPause(t *testing.T) {
	var m tea.Model = newTUIModel(config.Default())
	m, cmd := m.Update(frameMsg{})
	if cmd == nil {
		t.Fatalf("frame tick should be rescheduled")
	}
	if m.(tuiModel).frame != 1 {
		t.Fatalf("expected frame 1, got %d", m.(tuiModel).frame)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.(tuiModel).paused {
		t.Fatalf("space should pause the animation")
	}
	m, cmd = m.Update(frameMsg{})
	if cmd == nil || m.(tuiModel).frame != 1 {
		t.Fatalf("paused model should keep ticking without advancing, frame=%d", m.(tuiModel).frame)
	}
}

func TestTUIModelHelpToggle(t *testing.T) {
	var m tea.Model = newTUIModel(config.Default())
	m, _ = m.Update(stateMsg{Snapshot: testSnapshot(telemetry.VariantDashboard)})
	if strings.Contains(m.View(), "local random timers") {
		t.Fatalf("long help should be hidden by default")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.(tuiModel).help {
		t.Fatalf("? should toggle help")
	}
	if !strings.Contains(m.View(), "local random") {
		t.Fatalf("expected long help in view")
	}
}

func TestTUIModelQuit(t *testing.T) {
	m := newTUIModel(config.Default())
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected QuitMsg", key)
		}
	}
}

func TestTUIModelWindowSize(t *testing.T) {
	var m tea.Model = newTUIModel(config.Default(config.WithVariant("grid")))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m, _ = m.Update(stateMsg{Snapshot: testSnapshot(telemetry.VariantGrid)})
	view := m.View()
	if !strings.Contains(view, "LIVE VIEW") {
		t.Fatalf("expected live view label in a wide window")
	}
	if !strings.Contains(view, "LEGACY") {
		t.Fatalf("expected grid services in view")
	}
}
