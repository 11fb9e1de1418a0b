package viz

import (
	"math"

	"github.com/san-kum/buildatom/internal/geom"
)

// Projection maps model space (y up) onto canvas sub-pixels (y down).
type Projection struct {
	Scale  float64
	Center geom.Vec2
	OX, OY float64
}

// Fit returns a projection that shows every point within extent of center.
func Fit(c *Canvas, center geom.Vec2, extent float64) Projection {
	w, h := c.PixelSize()
	half := math.Min(float64(w), float64(h)) / 2
	scale := 1.0
	if extent > 0 && half > 1 {
		scale = (half - 1) / extent
	}
	return Projection{
		Scale:  scale,
		Center: center,
		OX:     float64(w) / 2,
		OY:     float64(h) / 2,
	}
}

func (p Projection) Pixel(v geom.Vec2) (int, int) {
	d := v.Sub(p.Center)
	return int(math.Round(p.OX + d.X*p.Scale)), int(math.Round(p.OY - d.Y*p.Scale))
}

func (p Projection) Cell(v geom.Vec2) (col, row int) {
	x, y := p.Pixel(v)
	return floorDiv(x, 2), floorDiv(y, 4)
}

func (p Projection) Length(l float64) int {
	return int(math.Round(l * p.Scale))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
