package particle

import "errors"

var (
	// ErrInvalidArgument indicates a non-finite or otherwise malformed position.
	ErrInvalidArgument = errors.New("particle: invalid argument")
)
