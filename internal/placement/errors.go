package placement

import "errors"

// Placement errors. All of them are local to a single call: the machine's
// committed state is left exactly as it was before the call.
var (
	// ErrSessionConflict is returned when a selection is started while another
	// one is still active.
	ErrSessionConflict = errors.New("placement: selection already in progress")

	// ErrUnsupportedSelection indicates an option id the registry does not know
	// or that is not reachable at the current navigation level.
	ErrUnsupportedSelection = errors.New("placement: unsupported selection")

	// ErrInvalidGeometry indicates shell geometry a registry cannot be built from.
	ErrInvalidGeometry = errors.New("placement: invalid shell geometry")
)
