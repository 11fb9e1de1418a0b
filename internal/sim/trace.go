package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
)

// Trace runs the motion controller headless, moving a particle from `from`
// toward `to`, and records its distance to the destination after every step.
// It stops early once the particle arrives.
func Trace(ctx context.Context, from, to geom.Vec2, speed float64, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(speed > 0) || math.IsInf(speed, 0) {
		return nil, fmt.Errorf("%w: speed must be positive and finite, got %f", ErrInvalidConfig, speed)
	}

	p := particle.New(particle.Proton, from)
	if err := p.SetPositionAndDestination(from); err != nil {
		return nil, err
	}
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: destination %v is not finite", particle.ErrInvalidArgument, to)
	}
	p.Destination = to
	p.Speed = speed

	steps := cfg.Steps()
	result := &Result{
		Speed:     speed,
		Times:     make([]float64, 0, steps+1),
		Positions: make([]geom.Vec2, 0, steps+1),
		Distances: make([]float64, 0, steps+1),
	}
	record := func(t float64) {
		result.Times = append(result.Times, t)
		result.Positions = append(result.Positions, p.Position)
		result.Distances = append(result.Distances, p.Position.Distance(p.Destination))
	}

	w := NewWorld(nil)
	w.AddParticle(p)
	record(0)

	err := w.Run(ctx, cfg, func(t float64) bool {
		result.StepsTaken++
		record(t)
		return !p.AtDestination()
	})
	result.Arrived = p.AtDestination()
	return result, err
}
