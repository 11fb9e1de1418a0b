package particle

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/san-kum/buildatom/internal/geom"
)

type Kind int

const (
	Proton Kind = iota
	Neutron
	Electron
)

func (k Kind) String() string {
	switch k {
	case Proton:
		return "proton"
	case Neutron:
		return "neutron"
	case Electron:
		return "electron"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "proton":
		return Proton, nil
	case "neutron":
		return Neutron, nil
	case "electron":
		return Electron, nil
	}
	return 0, fmt.Errorf("%w: unknown particle kind %q", ErrInvalidArgument, s)
}

const (
	// DefaultSpeed is in model units per second.
	DefaultSpeed   = 200.0
	NucleonRadius  = 15.0
	ElectronRadius = NucleonRadius * 0.6
)

// Particle carries motion and selection state. It is owned by whatever
// container or atom currently holds it; this package only moves it.
type Particle struct {
	ID   string
	kind Kind

	Position    geom.Vec2
	Destination geom.Vec2
	Speed       float64

	// UserControlled is set while a pointer drag or keyboard placement owns
	// the particle. Step never writes Position while it is true.
	UserControlled bool
	DepthLayer     int
}

func New(kind Kind, at geom.Vec2) *Particle {
	return &Particle{
		ID:          uuid.NewString(),
		kind:        kind,
		Position:    at,
		Destination: at,
		Speed:       DefaultSpeed,
	}
}

func (p *Particle) Kind() Kind { return p.kind }

func (p *Particle) Radius() float64 {
	if p.kind == Electron {
		return ElectronRadius
	}
	return NucleonRadius
}

func (p *Particle) AtDestination() bool { return p.Position == p.Destination }

func (p *Particle) String() string {
	return fmt.Sprintf("%s %s at %s", p.kind, shortID(p.ID), p.Position)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
