package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/buildatom/internal/particle"
)

var (
	Panel        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")).Padding(0, 1)
	FocusedPanel = Panel.BorderForeground(lipgloss.Color("#ffd700"))
	Title        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	Subtle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	MetricValue  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	MetricLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	StatusOK     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

// Glyph is the one-cell symbol for a particle kind.
func Glyph(k particle.Kind) string {
	switch k {
	case particle.Proton:
		return "+"
	case particle.Neutron:
		return "o"
	case particle.Electron:
		return "-"
	}
	return "?"
}

func (t Theme) ParticleColor(k particle.Kind) lipgloss.Color {
	switch k {
	case particle.Proton:
		return t.Proton
	case particle.Neutron:
		return t.Neutron
	case particle.Electron:
		return t.Electron
	}
	return t.Muted
}

func (t Theme) RenderParticle(k particle.Kind) string {
	return lipgloss.NewStyle().Bold(true).Foreground(t.ParticleColor(k)).Render(Glyph(k))
}

// StockBar renders how full a bucket is.
func StockBar(count, capacity, width int) string {
	if capacity <= 0 || width <= 0 {
		return ""
	}
	filled := count * width / capacity
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if filled == 0 {
		return StatusWarn.Render(bar)
	}
	return StatusOK.Render(bar)
}
