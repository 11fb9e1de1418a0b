package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the atom palette for the TUI
type Theme struct {
	Name     string
	Proton   lipgloss.Color
	Neutron  lipgloss.Color
	Electron lipgloss.Color
	Shell    lipgloss.Color
	Focus    lipgloss.Color
	Marker   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:     "classic",
		Proton:   lipgloss.Color("#ff5f5f"),
		Neutron:  lipgloss.Color("#9e9e9e"),
		Electron: lipgloss.Color("#5fafff"),
		Shell:    lipgloss.Color("#5f5f87"),
		Focus:    lipgloss.Color("#ffd700"),
		Marker:   lipgloss.Color("#87d787"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Proton:   lipgloss.Color("#88ff88"),
		Neutron:  lipgloss.Color("#00aa00"),
		Electron: lipgloss.Color("#ccffcc"),
		Shell:    lipgloss.Color("#005500"),
		Focus:    lipgloss.Color("#ffff00"),
		Marker:   lipgloss.Color("#00ff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeHighContrast = Theme{
		Name:     "contrast",
		Proton:   lipgloss.Color("#ff0000"),
		Neutron:  lipgloss.Color("#ffffff"),
		Electron: lipgloss.Color("#00ffff"),
		Shell:    lipgloss.Color("#aaaaaa"),
		Focus:    lipgloss.Color("#ffff00"),
		Marker:   lipgloss.Color("#00ff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#bbbbbb"),
		Error:    lipgloss.Color("#ff00ff"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeHighContrast,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme cycles to the theme after current.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
