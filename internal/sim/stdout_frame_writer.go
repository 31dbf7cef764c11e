// FrameWriter prints rendered tiles to a plain stream when no TUI is available.
package sim

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"infracore-tile/internal/config"
	"infracore-tile/internal/telemetry"
	"infracore-tile/internal/tile"
)

// FrameWriter renders every snapshot it receives as a text frame.
type FrameWriter struct {
	renderer *tile.Renderer
	out      io.Writer
	width    int
	height   int

	mu    sync.Mutex
	frame int
}

// NewFrameWriter creates a FrameWriter writing to out. A non-zero width
// centers each frame; a zero height keeps the tile's own height.
func NewFrameWriter(out io.Writer, cfg *config.TileConfig, width, height int) *FrameWriter {
	return &FrameWriter{renderer: tile.New(cfg), out: out, width: width, height: height}
}

// WriteState renders and prints one frame. Each call advances the animation.
func (w *FrameWriter) WriteState(s telemetry.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	view := w.renderer.Render(s, w.frame)
	h := w.height
	if h == 0 {
		h = lipgloss.Height(view)
	}
	view = tile.Shell(view, w.width, h)
	w.frame++
	_, err := fmt.Fprintln(w.out, view)
	return err
}
