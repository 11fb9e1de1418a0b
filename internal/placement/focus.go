package placement

import "github.com/san-kum/buildatom/internal/geom"

type FocusKind int

const (
	// FocusNone means focus has left this core, e.g. moved on in tab order.
	FocusNone FocusKind = iota
	FocusOption
	FocusOrigin
)

type FocusTarget struct {
	Kind   FocusKind
	Option OptionID
	Origin Origin
}

// FocusCoordinator records which target holds input focus. It carries no
// navigation logic; the Machine drives it.
type FocusCoordinator struct {
	target FocusTarget
	hover  geom.Vec2
}

func (f *FocusCoordinator) CurrentFocusTarget() FocusTarget { return f.target }

// CurrentHoverLocation is where a particle would land if the focused option
// were committed. ok is false when no option has focus.
func (f *FocusCoordinator) CurrentHoverLocation() (loc geom.Vec2, ok bool) {
	if f.target.Kind != FocusOption {
		return geom.Vec2{}, false
	}
	return f.hover, true
}

func (f *FocusCoordinator) focusOption(id OptionID, landing geom.Vec2) {
	f.target = FocusTarget{Kind: FocusOption, Option: id}
	f.hover = landing
}

func (f *FocusCoordinator) focusOrigin(o Origin) {
	f.target = FocusTarget{Kind: FocusOrigin, Origin: o}
	f.hover = geom.Vec2{}
	if fo, ok := o.(Focuser); ok {
		fo.Focus()
	}
}

func (f *FocusCoordinator) release() {
	f.target = FocusTarget{}
	f.hover = geom.Vec2{}
}
