package tile

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// subBlocks give sub-cell resolution for the top of the CPU area.
var subBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// waveAt returns the height, in rows, of a wave centered on level at column x.
// level is a 0..100 load value; phase animates the wave between frames.
func waveAt(level float64, x, width, height int, amp, cycles, phase float64) float64 {
	base := level / 100 * float64(height)
	t := float64(x) / float64(max(width-1, 1))
	return base + amp*math.Sin(2*math.Pi*cycles*t+phase)
}

// heroChart draws the CPU area (purple) with the memory line (cyan) over it.
//
//	      ·····
//	 ·····  ▄▆█████▆▄
//	▆██████████████████▆▄▂
func heroChart(cpu, mem float64, width, height, frame int) string {
	if height < 2 {
		height = 2
	}
	phase := float64(frame) * 0.35
	cpuStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	memStyle := lipgloss.NewStyle().Foreground(colorCyan)

	var sb strings.Builder
	for row := height - 1; row >= 0; row-- {
		for x := 0; x < width; x++ {
			c := waveAt(cpu, x, width, height, 1.2, 1.5, phase)
			m := waveAt(mem, x, width, height, 0.8, 1, -phase*0.6)

			var ch rune
			switch {
			case c >= float64(row+1):
				ch = '█'
			case c > float64(row):
				idx := int((c - float64(row)) * 8)
				ch = subBlocks[min(max(idx, 0), len(subBlocks)-1)]
			default:
				ch = ' '
			}

			if int(math.Floor(m)) == row && (ch == ' ' || ch == '▁') {
				sb.WriteString(memStyle.Render("·"))
				continue
			}
			if ch == ' ' {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(cpuStyle.Render(string(ch)))
		}
		if row > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// bigGlyphs is a 3x5 block font for the hero readout.
var bigGlyphs = map[rune][5]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" ██", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	'%': {"█ █", "  █", " █ ", "█  ", "█ █"},
}

// bigText renders s in the block font. Unknown runes render as blanks.
func bigText(s string) string {
	rows := make([]string, 5)
	for i, r := range s {
		g, ok := bigGlyphs[r]
		if !ok {
			g = [5]string{"   ", "   ", "   ", "   ", "   "}
		}
		for j := range rows {
			if i > 0 {
				rows[j] += " "
			}
			rows[j] += g[j]
		}
	}
	return strings.Join(rows, "\n")
}
