package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/buildatom/internal/geom"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Stepper is anything advanced once per simulation tick.
type Stepper interface {
	Step(dt float64)
}

type Observer interface {
	OnStep(t float64)
}

type Config struct {
	Dt       float64
	Duration float64
}

func (c Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	}
	return nil
}

func (c Config) Steps() int { return int(c.Duration / c.Dt) }

// Result is a recorded motion trace of a single particle.
type Result struct {
	Speed      float64
	Times      []float64
	Positions  []geom.Vec2
	Distances  []float64
	StepsTaken int
	Arrived    bool
}
