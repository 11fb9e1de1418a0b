package sim

import (
	"context"
	"time"

	"github.com/san-kum/buildatom/internal/particle"
)

// World steps every registered particle once per tick and advances the
// deferred task queue on the same clock.
type World struct {
	particles []*particle.Particle
	steppers  []Stepper
	observers []Observer
	queue     *Queue
	time      float64
}

func NewWorld(queue *Queue) *World {
	if queue == nil {
		queue = NewQueue()
	}
	return &World{queue: queue}
}

func (w *World) Queue() *Queue { return w.queue }

func (w *World) Time() float64 { return w.time }

func (w *World) AddParticle(p *particle.Particle) {
	for _, q := range w.particles {
		if q == p {
			return
		}
	}
	w.particles = append(w.particles, p)
}

func (w *World) RemoveParticle(p *particle.Particle) {
	for i, q := range w.particles {
		if q == p {
			w.particles = append(w.particles[:i], w.particles[i+1:]...)
			return
		}
	}
}

func (w *World) Particles() []*particle.Particle {
	out := make([]*particle.Particle, len(w.particles))
	copy(out, w.particles)
	return out
}

func (w *World) AddStepper(s Stepper)   { w.steppers = append(w.steppers, s) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Step advances the world by dt seconds. Negative or zero dt only flushes
// tasks that are already due.
func (w *World) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for _, p := range w.particles {
		p.Step(dt)
	}
	for _, s := range w.steppers {
		s.Step(dt)
	}
	w.time += dt
	w.queue.Advance(time.Duration(dt * float64(time.Second)))
	for _, o := range w.observers {
		o.OnStep(w.time)
	}
}

// Settled reports whether every particle has reached its destination.
func (w *World) Settled() bool {
	for _, p := range w.particles {
		if !p.UserControlled && !p.AtDestination() {
			return false
		}
	}
	return true
}

// Run steps the world with a fixed dt until the duration elapses, the context
// is cancelled, or callback returns false.
func (w *World) Run(ctx context.Context, cfg Config, callback func(t float64) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	end := w.time + cfg.Duration
	for w.time < end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		w.Step(cfg.Dt)
		if callback != nil && !callback(w.time) {
			return nil
		}
	}
	return nil
}
