package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Title colors successive letters with successive type colors.
func (th Theme) Title(text string, types int) string {
	types = max(types, 1)
	var b strings.Builder
	t := 0
	for _, r := range text {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.TypeColor(t % types)).Render(string(r)))
		t++
	}
	return b.String()
}

// Status renders the run state badge.
func (th Theme) Status(paused bool) string {
	if paused {
		return lipgloss.NewStyle().Bold(true).Foreground(th.Muted).Render("PAUSED")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render("RUNNING")
}

func (th Theme) recording(frames int) string {
	return lipgloss.NewStyle().Bold(true).Blink(true).Foreground(th.TypeColor(0)).
		Render(fmt.Sprintf("● REC %d", frames))
}

// Sparkline draws the latest width values scaled to their own range.
// Values above the window mean take the accent color.
func (th Theme) Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	cold := lipgloss.NewStyle().Foreground(th.Muted)
	if len(values) == 0 {
		return cold.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	hot := lipgloss.NewStyle().Foreground(th.Accent)
	lo := floats.Min(values)
	span := floats.Max(values) - lo
	mean := floats.Sum(values) / float64(len(values))
	top := len(sparkGlyphs) - 1

	var b strings.Builder
	for _, v := range values {
		idx := top
		if span > 0 {
			idx = int((v - lo) / span * float64(top))
		}
		glyph := string(sparkGlyphs[idx])
		if v > mean {
			b.WriteString(hot.Render(glyph))
		} else {
			b.WriteString(cold.Render(glyph))
		}
	}
	return b.String()
}

// Meter fills width cells in proportion to frac, clamped to [0, 1].
func (th Theme) Meter(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(math.Max(0, math.Min(1, frac)) * float64(width)))
	return lipgloss.NewStyle().Foreground(th.Accent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(th.Muted).Render(strings.Repeat("░", width-filled))
}

func (th Theme) rule(width int) string {
	return lipgloss.NewStyle().Foreground(th.Border).Render(strings.Repeat("─", width))
}
