package sim

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"infracore-tile/internal/config"
	"infracore-tile/internal/telemetry"
	"infracore-tile/internal/tile"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// stateMsg carries a fresh tile snapshot.
type stateMsg struct{ telemetry.Snapshot }

// frameMsg advances the cosmetic animation by one frame.
type frameMsg struct{}

const (
	shortHelp = "q quit · space pause animation · ? help"
	longHelp  = "The tile is driven by local random timers. Loads drift on every metric tick, " +
		"services flip on their own tick, and the badge status flips independently of load. " +
		"Press space to freeze the animation (simulation keeps running) and q, esc or ctrl+c to unmount and exit."
)

// TUIWriter renders tile snapshots using a bubbletea TUI.
type TUIWriter struct {
	program teaProgram
	done    chan struct{}
	err     error
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.TileConfig, opts ...tea.ProgramOption) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	w.program = p
	go func() {
		_, w.err = p.Run()
		close(w.done)
	}()
	return w
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(s telemetry.Snapshot) error {
	w.program.Send(stateMsg{Snapshot: s})
	return nil
}

// Done is closed once the TUI program has exited, e.g. after the user quit.
func (w *TUIWriter) Done() <-chan struct{} {
	return w.done
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return w.err
}

type tuiModel struct {
	renderer      *tile.Renderer
	snap          telemetry.Snapshot
	ready         bool
	frame         int
	frameInterval time.Duration
	paused        bool
	help          bool
	width         int
	height        int
}

func newTUIModel(cfg *config.TileConfig) tuiModel {
	return tuiModel{
		renderer:      tile.New(cfg),
		frameInterval: cfg.FrameInterval,
	}
}

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m tuiModel) Init() tea.Cmd { return frameTick(m.frameInterval) }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case stateMsg:
		m.snap = msg.Snapshot
		m.ready = true
	case frameMsg:
		if !m.paused {
			m.frame++
		}
		return m, frameTick(m.frameInterval)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "?":
			m.help = !m.help
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	if !m.ready {
		return "mounting tile…"
	}
	view := m.renderer.Render(m.snap, m.frame)
	view = lipgloss.JoinVertical(lipgloss.Center, view, m.renderHelp())
	return tile.Shell(view, m.width, m.height)
}

func (m tuiModel) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	text := shortHelp
	if m.paused {
		text = "paused · " + text
	}
	if m.help {
		text = wordwrap.String(longHelp, tile.Width) + "\n" + text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}
