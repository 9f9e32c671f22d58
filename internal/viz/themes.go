package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the per-type palette and panel colors.
type Theme struct {
	Name   string
	Types  []lipgloss.Color
	Border lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name: "neon",
		Types: []lipgloss.Color{
			"#ff4d6d", "#ffd23f", "#3bceac", "#0ead69", "#4cc9f0", "#b517ff",
			"#ff8fab", "#f4a261",
		},
		Border: "#444466",
		Accent: "#00ffff",
		Muted:  "#666688",
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Types: []lipgloss.Color{
			"#0077be", "#00a8cc", "#48cae4", "#90e0ef", "#ffd700", "#ff7f50",
			"#caf0f8", "#023e8a",
		},
		Border: "#4488aa",
		Accent: "#ffd700",
		Muted:  "#4488aa",
	}

	ThemeSunset = Theme{
		Name: "sunset",
		Types: []lipgloss.Color{
			"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068", "#ffc048", "#c56cf0",
			"#ff4757", "#fff5f5",
		},
		Border: "#8b6b8c",
		Accent: "#ff9ff3",
		Muted:  "#8b6b8c",
	}

	ThemeMono = Theme{
		Name:   "mono",
		Types:  []lipgloss.Color{"#ffffff", "#dddddd", "#bbbbbb", "#999999", "#777777", "#555555"},
		Border: "#888888",
		Accent: "#ffffff",
		Muted:  "#888888",
	}

	Themes = []Theme{ThemeNeon, ThemeOcean, ThemeSunset, ThemeMono}
)

// TypeColor returns the color for particle type t, cycling the palette.
func (th Theme) TypeColor(t int) lipgloss.Color {
	if t < 0 || len(th.Types) == 0 {
		return th.Muted
	}
	return th.Types[t%len(th.Types)]
}

// GetTheme returns a theme by name, falling back to neon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
