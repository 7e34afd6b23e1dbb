package scoring

import "errors"

// ErrProvider indicates the scoring provider could not produce scores,
// whether from a transport failure, an error status, or a bad payload.
var ErrProvider = errors.New("scoring provider error")
