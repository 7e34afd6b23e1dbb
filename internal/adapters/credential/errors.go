package credential

import "errors"

// Sentinel kinds for credential errors.
var (
	ErrCredentialFetch = errors.New("credential fetch failed")
)
