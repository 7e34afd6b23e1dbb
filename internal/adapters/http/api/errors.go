package api

import (
	"errors"

	"github.com/visagelab/facesym/internal/adapters/credential"
	"github.com/visagelab/facesym/internal/adapters/repository"
	"github.com/visagelab/facesym/internal/adapters/scoring"
	service "github.com/visagelab/facesym/internal/app"
	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/score"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// isValidation reports whether err is a caller input problem.
func isValidation(err error) bool {
	return errors.Is(err, service.ErrValidation)
}

// isNotFound reports whether err maps to a missing resource.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, plan.ErrNotFound)
}

// isUpstream reports whether err originated at the scoring provider or
// its credential issuer. A payload that fails normalization counts: the
// provider, not the caller, produced it.
func isUpstream(err error) bool {
	return errors.Is(err, credential.ErrCredentialFetch) ||
		errors.Is(err, scoring.ErrProvider) ||
		errors.Is(err, score.ErrNormalization)
}
