package score

import "errors"

// Sentinel kinds for score errors.
var (
	ErrNormalization = errors.New("score normalization failed")
)
