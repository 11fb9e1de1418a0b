package viz

import (
	"github.com/san-kum/buildatom/internal/geom"
)

// Mark is a glyph pinned to a model-space point. Later marks win a shared cell.
type Mark struct {
	At    geom.Vec2
	Glyph string
}

// Scene is the atom drawn around the origin: concentric rings plus marks.
type Scene struct {
	Rings  []float64
	Marks  []Mark
	Extent float64
}

func (s Scene) Render(width, height int) string {
	c := NewCanvas(width, height)
	s.Draw(c)
	return c.String()
}

// Projection fits the scene's extent, or its largest ring, onto c.
func (s Scene) Projection(c *Canvas) Projection {
	extent := s.Extent
	for _, r := range s.Rings {
		if r > extent {
			extent = r
		}
	}
	return Fit(c, geom.V(0, 0), extent)
}

func (s Scene) Draw(c *Canvas) {
	proj := s.Projection(c)

	cx, cy := proj.Pixel(geom.V(0, 0))
	for _, r := range s.Rings {
		c.DrawCircle(cx, cy, proj.Length(r))
	}
	for _, m := range s.Marks {
		col, row := proj.Cell(m.At)
		c.Put(col, row, m.Glyph)
	}
}
