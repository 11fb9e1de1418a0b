package particle

import (
	"fmt"
	"math"

	"github.com/san-kum/buildatom/internal/geom"
)

// snapEpsilon absorbs floating residue so that a particle whose remaining
// distance equals one step's travel lands exactly instead of taking an extra
// tick. It only widens the snap decision: an approaching step always covers
// exactly Speed*dt, and a snap covers at most Speed*dt*(1+snapEpsilon).
const snapEpsilon = 1e-9

// Step advances Position toward Destination by at most Speed*dt, within the
// snapEpsilon tolerance on the final step. A particle without a positive
// speed stays put.
func (p *Particle) Step(dt float64) {
	if p.UserControlled || !(dt > 0) || !(p.Speed > 0) {
		return
	}

	remaining := p.Position.Distance(p.Destination)
	if remaining == 0 {
		return
	}

	travel := p.Speed * dt
	if remaining > travel*(1+snapEpsilon) {
		bearing := p.Destination.Sub(p.Position).Angle()
		p.Position = p.Position.Add(geom.Polar(travel, bearing))
		return
	}

	p.Position = p.Destination
}

// MoveImmediatelyToDestination teleports the particle, skipping interpolation.
func (p *Particle) MoveImmediatelyToDestination() {
	p.Position = p.Destination
}

// SetPositionAndDestination places the particle at pos without animation.
func (p *Particle) SetPositionAndDestination(pos geom.Vec2) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: position %v is not finite", ErrInvalidArgument, pos)
	}
	p.Destination = pos
	p.MoveImmediatelyToDestination()
	return nil
}

// StepsToArrive is the number of Step calls needed to cover distance at the
// given speed and dt.
func StepsToArrive(distance, speed, dt float64) int {
	if distance <= 0 {
		return 0
	}
	if speed <= 0 || dt <= 0 {
		return -1
	}
	return int(math.Ceil(distance / (speed * dt)))
}
