package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want float64
	}{
		{"same point", V(1, 1), V(1, 1), 0},
		{"horizontal", V(0, 0), V(3, 0), 3},
		{"3-4-5", V(1, 2), V(4, 6), 5},
		{"negative quadrant", V(-1, -1), V(-4, -5), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestPolar(t *testing.T) {
	p := Polar(2, math.Pi/2)
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-2) > 1e-12 {
		t.Errorf("expected (0, 2), got %s", p)
	}
	if math.Abs(p.Norm()-2) > 1e-12 {
		t.Errorf("expected norm 2, got %f", p.Norm())
	}
}

func TestScaleFromOrigin(t *testing.T) {
	p := V(10, -20).Scale(1.05)
	if math.Abs(p.X-10.5) > 1e-12 || math.Abs(p.Y+21) > 1e-12 {
		t.Errorf("unexpected scaled point %s", p)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		v    Vec2
		want bool
	}{
		{V(0, 0), true},
		{V(-1e9, 1e9), true},
		{V(math.NaN(), 0), false},
		{V(0, math.Inf(1)), false},
		{V(math.Inf(-1), math.NaN()), false},
	}

	for _, tt := range tests {
		if got := tt.v.IsValid(); got != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.v, tt.want, got)
		}
	}
}
