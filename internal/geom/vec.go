package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or displacement in model space. The nucleus sits at the origin.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Polar returns the point at radius r and angle theta (radians) from the origin.
func Polar(r, theta float64) Vec2 {
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Distance(o Vec2) float64 { return o.Sub(v).Norm() }

// Angle is the bearing of v measured from the positive x axis.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}
