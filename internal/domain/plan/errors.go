package plan

import "errors"

// Sentinel kinds for plan errors.
var (
	ErrNotFound = errors.New("daily routine not found")
)
