package service

import "errors"

// ErrValidation indicates the caller supplied unusable input.
var ErrValidation = errors.New("validation error")
