package atom

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
	"github.com/san-kum/buildatom/internal/placement"
)

var (
	ErrSlotOccupied = errors.New("atom: slot already occupied")
	ErrWrongKind    = errors.New("atom: particle kind not allowed there")
)

// Atom aggregates the particles committed to the nucleus and to shell slots.
type Atom struct {
	registry *placement.Registry
	nucleus  []*particle.Particle
	slots    map[placement.OptionID]*particle.Particle
}

func New(registry *placement.Registry) *Atom {
	return &Atom{
		registry: registry,
		slots:    make(map[placement.OptionID]*particle.Particle),
	}
}

// Place records p at target. Nucleons go in the nucleus, electrons in slots.
func (a *Atom) Place(p *particle.Particle, target placement.OptionID) error {
	if _, err := a.registry.Lookup(target); err != nil {
		return err
	}

	switch target.Kind {
	case placement.KindNucleus:
		if p.Kind() == particle.Electron {
			return fmt.Errorf("%w: electron in nucleus", ErrWrongKind)
		}
		for _, q := range a.nucleus {
			if q == p {
				return nil
			}
		}
		a.nucleus = append(a.nucleus, p)
		a.arrangeNucleus()
		return nil
	case placement.KindSlot:
		if p.Kind() != particle.Electron {
			return fmt.Errorf("%w: %s on %s", ErrWrongKind, p.Kind(), target)
		}
		if cur, ok := a.slots[target]; ok && cur != p {
			return fmt.Errorf("%w: %s", ErrSlotOccupied, target)
		}
		a.slots[target] = p
		return nil
	}
	return fmt.Errorf("%w: %s", placement.ErrUnsupportedSelection, target)
}

// Remove takes p out of the atom, if present.
func (a *Atom) Remove(p *particle.Particle) bool {
	for i, q := range a.nucleus {
		if q == p {
			a.nucleus = append(a.nucleus[:i], a.nucleus[i+1:]...)
			a.arrangeNucleus()
			return true
		}
	}
	for id, q := range a.slots {
		if q == p {
			delete(a.slots, id)
			return true
		}
	}
	return false
}

func (a *Atom) Occupant(id placement.OptionID) (*particle.Particle, bool) {
	p, ok := a.slots[id]
	return p, ok
}

func (a *Atom) Particles() []*particle.Particle {
	out := make([]*particle.Particle, 0, len(a.nucleus)+len(a.slots))
	out = append(out, a.nucleus...)
	for _, o := range a.registry.All() {
		if p, ok := a.slots[o.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (a *Atom) Protons() int   { return a.countNucleus(particle.Proton) }
func (a *Atom) Neutrons() int  { return a.countNucleus(particle.Neutron) }
func (a *Atom) Electrons() int { return len(a.slots) }

func (a *Atom) MassNumber() int { return len(a.nucleus) }

func (a *Atom) Charge() int { return a.Protons() - a.Electrons() }

func (a *Atom) Element() (Element, bool) { return ElementFor(a.Protons()) }

func (a *Atom) countNucleus(k particle.Kind) int {
	n := 0
	for _, p := range a.nucleus {
		if p.Kind() == k {
			n++
		}
	}
	return n
}

// arrangeNucleus packs nucleons on a golden-angle spiral around the origin and
// lets the motion controller carry each one to its spot.
func (a *Atom) arrangeNucleus() {
	golden := math.Pi * (3 - math.Sqrt(5))
	for i, p := range a.nucleus {
		r := particle.NucleonRadius * 0.9 * math.Sqrt(float64(i))
		p.Destination = geom.Polar(r, float64(i)*golden)
		p.DepthLayer = len(a.nucleus) - i
	}
}
