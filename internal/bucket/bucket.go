package bucket

import (
	"errors"
	"fmt"

	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
)

var ErrEmpty = errors.New("bucket: empty")

const DefaultPerRow = 5

// Bucket is a pile of particles of one kind that the user draws from. It is
// the origin a cancelled placement returns to.
type Bucket struct {
	kind      particle.Kind
	position  geom.Vec2
	perRow    int
	particles []*particle.Particle
	focused   bool
	onFocus   func(b *Bucket)
}

func New(kind particle.Kind, position geom.Vec2) (*Bucket, error) {
	if !position.IsValid() {
		return nil, fmt.Errorf("%w: bucket position %v is not finite", particle.ErrInvalidArgument, position)
	}
	return &Bucket{kind: kind, position: position, perRow: DefaultPerRow}, nil
}

func (b *Bucket) Kind() particle.Kind      { return b.kind }
func (b *Bucket) Position() geom.Vec2      { return b.position }
func (b *Bucket) Count() int               { return len(b.particles) }
func (b *Bucket) Focused() bool            { return b.focused }
func (b *Bucket) SetFocused(f bool)        { b.focused = f }
func (b *Bucket) OnFocus(fn func(*Bucket)) { b.onFocus = fn }

func (b *Bucket) Particles() []*particle.Particle {
	out := make([]*particle.Particle, len(b.particles))
	copy(out, b.particles)
	return out
}

func (b *Bucket) Contains(p *particle.Particle) bool {
	for _, q := range b.particles {
		if q == p {
			return true
		}
	}
	return false
}

// Fill creates n new particles and drops them straight into open positions.
func (b *Bucket) Fill(n int) ([]*particle.Particle, error) {
	created := make([]*particle.Particle, 0, n)
	for i := 0; i < n; i++ {
		p := particle.New(b.kind, b.position)
		if err := b.Add(p); err != nil {
			return created, err
		}
		created = append(created, p)
	}
	return created, nil
}

// Add places p at the next open position without animation. p is left
// untouched if that position cannot be computed.
func (b *Bucket) Add(p *particle.Particle) error {
	slot := b.openPosition(len(b.particles))
	if err := p.SetPositionAndDestination(slot); err != nil {
		return fmt.Errorf("bucket %s: %w", b.kind, err)
	}
	p.UserControlled = false
	p.DepthLayer = len(b.particles) / b.perRow
	b.particles = append(b.particles, p)
	return nil
}

// Take removes the top particle of the pile.
func (b *Bucket) Take() (*particle.Particle, error) {
	if len(b.particles) == 0 {
		return nil, fmt.Errorf("%w: no %ss left", ErrEmpty, b.kind)
	}
	last := len(b.particles) - 1
	p := b.particles[last]
	b.particles[last] = nil
	b.particles = b.particles[:last]
	return p, nil
}

// Reabsorb takes p back and lets the motion controller carry it to the next
// open position.
func (b *Bucket) Reabsorb(p *particle.Particle) {
	if b.Contains(p) {
		return
	}
	p.UserControlled = false
	p.Destination = b.openPosition(len(b.particles))
	p.DepthLayer = len(b.particles) / b.perRow
	b.particles = append(b.particles, p)
}

// Focus is called when input focus is handed back to the bucket.
func (b *Bucket) Focus() {
	b.focused = true
	if b.onFocus != nil {
		b.onFocus(b)
	}
}

func (b *Bucket) openPosition(i int) geom.Vec2 {
	spacing := 2 * particle.NucleonRadius
	if b.kind == particle.Electron {
		spacing = 2 * particle.ElectronRadius
	}
	col := i % b.perRow
	row := i / b.perRow
	offset := float64(col) - float64(b.perRow-1)/2
	return b.position.Add(geom.V(offset*spacing, float64(row)*spacing*0.8))
}
