package placement

import (
	"fmt"
	"math"

	"github.com/san-kum/buildatom/internal/geom"
)

// ShellGeometry describes one ring around the nucleus. Slots are spaced evenly
// starting at StartAngle (radians) and proceeding counter-clockwise.
type ShellGeometry struct {
	Shell      ShellID
	Radius     float64
	Slots      int
	StartAngle float64
}

const (
	ReferenceInnerRadius = 78.0
	ReferenceOuterRadius = 130.0
)

// ReferenceShells is two slots on the inner shell and six on the outer.
func ReferenceShells() []ShellGeometry {
	return []ShellGeometry{
		{Shell: InnerShell, Radius: ReferenceInnerRadius, Slots: 2, StartAngle: 0},
		{Shell: OuterShell, Radius: ReferenceOuterRadius, Slots: 6, StartAngle: math.Pi / 6},
	}
}

// Registry holds every navigable option. It is built once per atom view and
// never changes afterwards.
type Registry struct {
	top    []Option
	slots  map[ShellID][]Option
	shells map[ShellID]ShellGeometry
}

func NewRegistry(shells []ShellGeometry) (*Registry, error) {
	byID := make(map[ShellID]ShellGeometry, len(shells))
	for _, g := range shells {
		if g.Shell != InnerShell && g.Shell != OuterShell {
			return nil, fmt.Errorf("%w: unknown shell %s", ErrInvalidGeometry, g.Shell)
		}
		if _, dup := byID[g.Shell]; dup {
			return nil, fmt.Errorf("%w: %s shell defined twice", ErrInvalidGeometry, g.Shell)
		}
		if !(g.Radius > 0) || math.IsInf(g.Radius, 0) {
			return nil, fmt.Errorf("%w: %s shell radius %f", ErrInvalidGeometry, g.Shell, g.Radius)
		}
		if g.Slots < 1 {
			return nil, fmt.Errorf("%w: %s shell needs at least one slot, got %d", ErrInvalidGeometry, g.Shell, g.Slots)
		}
		if math.IsNaN(g.StartAngle) || math.IsInf(g.StartAngle, 0) {
			return nil, fmt.Errorf("%w: %s shell start angle", ErrInvalidGeometry, g.Shell)
		}
		byID[g.Shell] = g
	}

	inner, okInner := byID[InnerShell]
	outer, okOuter := byID[OuterShell]
	if !okInner || !okOuter {
		return nil, fmt.Errorf("%w: both inner and outer shells are required", ErrInvalidGeometry)
	}
	if inner.Radius >= outer.Radius {
		return nil, fmt.Errorf("%w: inner radius %.1f must be below outer radius %.1f", ErrInvalidGeometry, inner.Radius, outer.Radius)
	}

	r := &Registry{
		slots:  make(map[ShellID][]Option, 2),
		shells: byID,
	}
	r.top = []Option{
		{ID: Nucleus(), Anchor: geom.V(0, 0)},
		{ID: Shell(InnerShell), Anchor: geom.Polar(inner.Radius, inner.StartAngle)},
		{ID: Shell(OuterShell), Anchor: geom.Polar(outer.Radius, outer.StartAngle)},
	}
	for _, g := range []ShellGeometry{inner, outer} {
		opts := make([]Option, g.Slots)
		step := 2 * math.Pi / float64(g.Slots)
		for i := range opts {
			opts[i] = Option{
				ID:     Slot(g.Shell, i),
				Anchor: geom.Polar(g.Radius, g.StartAngle+float64(i)*step),
			}
		}
		r.slots[g.Shell] = opts
	}
	return r, nil
}

// TopLevelOptions returns [Nucleus, InnerShell, OuterShell], the navigation order.
func (r *Registry) TopLevelOptions() []Option {
	out := make([]Option, len(r.top))
	copy(out, r.top)
	return out
}

// SlotsFor returns the shell's slots in creation (angular) order.
func (r *Registry) SlotsFor(shell ShellID) ([]Option, error) {
	opts, ok := r.slots[shell]
	if !ok {
		return nil, fmt.Errorf("%w: no slots for %s shell", ErrUnsupportedSelection, shell)
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out, nil
}

func (r *Registry) SlotCount(shell ShellID) int { return len(r.slots[shell]) }

func (r *Registry) Geometry(shell ShellID) (ShellGeometry, bool) {
	g, ok := r.shells[shell]
	return g, ok
}

// Lookup resolves any option id known to the registry.
func (r *Registry) Lookup(id OptionID) (Option, error) {
	switch id.Kind {
	case KindNucleus, KindShell:
		for _, o := range r.top {
			if o.ID == id {
				return o, nil
			}
		}
	case KindSlot:
		opts := r.slots[id.Shell]
		if id.Index >= 0 && id.Index < len(opts) {
			return opts[id.Index], nil
		}
	}
	return Option{}, fmt.Errorf("%w: %s", ErrUnsupportedSelection, id)
}

// All lists the top-level options followed by every slot, inner shell first.
func (r *Registry) All() []Option {
	out := r.TopLevelOptions()
	out = append(out, r.slots[InnerShell]...)
	return append(out, r.slots[OuterShell]...)
}
