package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/buildatom/internal/bucket"
	"github.com/san-kum/buildatom/internal/particle"
	"github.com/san-kum/buildatom/internal/placement"
	"github.com/san-kum/buildatom/internal/viz"
)

const panelWidth = 30

func (m *Model) View() string {
	sceneW := max(m.width-panelWidth-4, 20)
	sceneH := max(m.height-4, 10)

	scene := viz.Panel.Render(m.scene().Render(sceneW, sceneH))
	side := lipgloss.JoinVertical(lipgloss.Left, m.atomPanel(), m.bucketPanel(), m.focusPanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, scene, side)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

func (m *Model) scene() viz.Scene {
	reg := m.machine.Registry()
	outer, _ := reg.Geometry(placement.OuterShell)
	inner, _ := reg.Geometry(placement.InnerShell)
	s := viz.Scene{
		Rings:  []float64{inner.Radius, outer.Radius},
		Extent: outer.Radius + 100,
	}

	marker := lipgloss.NewStyle().Foreground(m.theme.Marker)
	focus := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Focus)
	settings := m.cfg.PlacementSettings()

	for _, o := range reg.All() {
		if o.ID.Kind != placement.KindSlot {
			continue
		}
		var glyph string
		switch {
		case m.machine.Highlighted(o.ID):
			glyph = focus.Render("◎")
		case m.machine.MarkerVisible(o.ID):
			glyph = marker.Render("∘")
		default:
			continue
		}
		s.Marks = append(s.Marks, viz.Mark{At: o.Anchor.Scale(settings.SlotPlacementScale), Glyph: glyph})
	}

	for _, p := range m.atom.Particles() {
		s.Marks = append(s.Marks, viz.Mark{At: p.Position, Glyph: m.theme.RenderParticle(p.Kind())})
	}
	for _, b := range m.buckets {
		for _, p := range b.Particles() {
			s.Marks = append(s.Marks, viz.Mark{At: p.Position, Glyph: m.theme.RenderParticle(p.Kind())})
		}
	}

	if sess, ok := m.machine.Session(); ok {
		if at, ok := m.machine.Focus().CurrentHoverLocation(); ok {
			held := focus.Render(viz.Glyph(sess.Particle.Kind()))
			s.Marks = append(s.Marks, viz.Mark{At: at, Glyph: held})
		}
	}
	return s
}

func (m *Model) atomPanel() string {
	var b strings.Builder

	el, ok := m.atom.Element()
	if ok {
		b.WriteString(viz.Title.Render(fmt.Sprintf("%s  %s", el.Symbol, el.Name)))
	} else {
		b.WriteString(viz.Title.Render("no element"))
	}
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value int
	}{
		{"protons", m.atom.Protons()},
		{"neutrons", m.atom.Neutrons()},
		{"electrons", m.atom.Electrons()},
		{"mass", m.atom.MassNumber()},
	}
	for _, r := range rows {
		b.WriteString(viz.MetricLabel.Render(fmt.Sprintf("%-10s", r.label)))
		b.WriteString(viz.MetricValue.Render(fmt.Sprintf("%d", r.value)))
		b.WriteString("\n")
	}
	b.WriteString(viz.MetricLabel.Render(fmt.Sprintf("%-10s", "charge")))
	b.WriteString(viz.MetricValue.Render(formatCharge(m.atom.Charge())))

	return viz.Panel.Width(panelWidth).Render(b.String())
}

func (m *Model) bucketPanel() string {
	var b strings.Builder
	for i, bk := range m.buckets {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.bucketLine(bk))
	}
	return viz.Panel.Width(panelWidth).Render(b.String())
}

func (m *Model) bucketLine(bk *bucket.Bucket) string {
	label := fmt.Sprintf("%s %-9s", m.theme.RenderParticle(bk.Kind()), bk.Kind().String()+"s")
	capacity := m.capacity(bk)
	line := fmt.Sprintf("%s %s %2d", label, viz.StockBar(bk.Count(), capacity, 8), bk.Count())
	if bk.Focused() {
		return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Focus).Render("▸ ") + line
	}
	return "  " + line
}

func (m *Model) capacity(bk *bucket.Bucket) int {
	switch bk.Kind() {
	case particle.Proton:
		return m.cfg.Stock.Protons
	case particle.Neutron:
		return m.cfg.Stock.Neutrons
	}
	return m.cfg.Stock.Electrons
}

func (m *Model) focusPanel() string {
	var b strings.Builder
	b.WriteString(viz.MetricLabel.Render("mode  "))
	b.WriteString(viz.MetricValue.Render(m.machine.State().String()))
	b.WriteString("\n")

	t := m.machine.Focus().CurrentFocusTarget()
	b.WriteString(viz.MetricLabel.Render("focus "))
	switch {
	case t.Kind == placement.FocusOption:
		b.WriteString(viz.MetricValue.Render(t.Option.String()))
	case m.focused >= 0:
		b.WriteString(viz.MetricValue.Render(m.buckets[m.focused].Kind().String() + "s"))
	default:
		b.WriteString(viz.Subtle.Render("none"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.status))
	}
	return viz.Panel.Width(panelWidth).Render(b.String())
}

func formatCharge(c int) string {
	switch {
	case c > 0:
		return fmt.Sprintf("+%d", c)
	case c < 0:
		return fmt.Sprintf("−%d", -c)
	}
	return "0"
}
