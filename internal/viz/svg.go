package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/particlelife/internal/life"
)

// SnapshotSVG draws particles as circles colored by type on a domain of
// cfg.Width x cfg.Height scaled by scale.
func SnapshotSVG(particles []life.ParticleState, cfg life.Config, scale float64, th Theme) string {
	if scale <= 0 {
		scale = 1
	}
	width := cfg.Width * scale
	height := cfg.Height * scale
	r := cfg.ParticleRadius * scale

	// Circles are grouped by type under one fill.
	groups := make([][]life.ParticleState, max(cfg.NumTypes, 1))
	for _, p := range particles {
		t := p.Type
		if t < 0 || t >= len(groups) {
			t = 0
		}
		groups[t] = append(groups[t], p)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a12"/>
`, width, height, width, height))

	for t, group := range groups {
		if len(group) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", th.TypeColor(t)))
		for _, p := range group {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, p.X*scale, p.Y*scale, r))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
