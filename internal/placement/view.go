package placement

// View is the render-facing state of the placement core. Slot visibility and
// focusability are derived from it rather than stored per option, so nothing
// survives past the end of a session.
type View struct {
	State       State
	TopIndex    int
	ActiveShell ShellID
	SlotIndex   int
}

// Focusable reports whether id is reachable at the current navigation level.
func (v View) Focusable(id OptionID) bool {
	switch v.State {
	case StateTop:
		return id.Kind == KindNucleus || id.Kind == KindShell
	case StateSlot:
		return id.Kind == KindSlot && id.Shell == v.ActiveShell
	}
	return false
}

// MarkerVisible reports whether a slot's idle marker should be drawn. The
// highlighted slot shows a focus indicator instead.
func (v View) MarkerVisible(id OptionID) bool {
	if v.State != StateSlot || id.Kind != KindSlot || id.Shell != v.ActiveShell {
		return false
	}
	return id.Index != v.SlotIndex
}

// Highlighted reports whether id is the option currently selected.
func (v View) Highlighted(id OptionID) bool {
	switch v.State {
	case StateTop:
		if v.TopIndex < 0 || v.TopIndex >= len(topLevelIDs) {
			return false
		}
		return id == topLevelIDs[v.TopIndex]
	case StateSlot:
		return id == Slot(v.ActiveShell, v.SlotIndex)
	}
	return false
}

var topLevelIDs = [...]OptionID{Nucleus(), Shell(InnerShell), Shell(OuterShell)}
