package simulate

import (
	"crypto/rand"
	"math/big"

	"github.com/visagelab/facesym/internal/domain/score"
)

// Landmark mesh size matching the face landmarker model output.
const landmarkCount = 468

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 4
)

// Constants for synthetic face jitter: how far landmarks drift from the
// canonical centered mesh for each facial profile.
const (
	symmetricJitter = 0.005
	mildJitter      = 0.02
	skewedJitter    = 0.05
	puffyJitter     = 0.035
)

// Profile cases.
const (
	caseSymmetricFace = 0
	caseMildFace      = 1
	caseSkewedFace    = 2
	casePuffyFace     = 3
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateLandmarks synthesizes one face mesh. Each call picks a facial
// profile so a run covers faces the recommendation engine treats very
// differently.
func generateLandmarks() []score.Landmark {
	jitter := pickJitter()

	landmarks := make([]score.Landmark, landmarkCount)
	for i := range landmarks {
		// Spread points across the unit square with profile-dependent
		// asymmetry noise.
		base := float64(i) / float64(landmarkCount)
		landmarks[i] = score.Landmark{
			X: base + (getRandomFloat()-0.5)*jitter,
			Y: 1 - base + (getRandomFloat()-0.5)*jitter,
			Z: (getRandomFloat() - 0.5) * jitter,
		}
	}
	return landmarks
}

// pickJitter selects the asymmetry level for one synthetic face.
func pickJitter() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))
	switch n.Int64() {
	case caseSymmetricFace:
		return symmetricJitter
	case caseMildFace:
		return mildJitter
	case caseSkewedFace:
		return skewedJitter
	case casePuffyFace:
		return puffyJitter
	default:
		return mildJitter
	}
}
