// Package score defines the canonical ten-factor score vector and the
// normalization of raw scoring-provider payloads into it.
package score

import "time"

// Factor names one of the ten canonical facial-symmetry measurements.
type Factor string

// Canonical factor keys. The string values double as the JSON field names
// exposed to clients, so the casing here is load-bearing.
const (
	OverallSymmetry  Factor = "overallSymmetry"
	EyeAlignment     Factor = "eyeAlignment"
	NoseCentering    Factor = "noseCentering"
	FacialPuffiness  Factor = "facialPuffiness"
	SkinClarity      Factor = "skinClarity"
	ChinAlignment    Factor = "chinAlignment"
	FacialThirds     Factor = "facialThirds"
	JawlineSymmetry  Factor = "jawlineSymmetry"
	CheekboneBalance Factor = "cheekboneBalance"
	EyebrowSymmetry  Factor = "eyebrowSymmetry"
)

// factors lists the canonical keys in their fixed iteration order. Ranking
// determinism depends on this order, so it never changes between releases.
var factors = []Factor{
	OverallSymmetry,
	EyeAlignment,
	NoseCentering,
	FacialPuffiness,
	SkinClarity,
	ChinAlignment,
	FacialThirds,
	JawlineSymmetry,
	CheekboneBalance,
	EyebrowSymmetry,
}

// Factors returns the canonical factor keys in fixed iteration order.
func Factors() []Factor {
	out := make([]Factor, len(factors))
	copy(out, factors)
	return out
}

// Inverted reports whether lower values are better for the factor.
// facialPuffiness is the single inverted factor.
func Inverted(f Factor) bool {
	return f == FacialPuffiness
}

// Vector is the canonical ten-factor score vector. Values are percentages
// in [0,100]. A vector is built once per completed assessment and never
// mutated afterwards; it is a value type, so plain assignment copies it.
type Vector struct {
	OverallSymmetry  float64 `json:"overallSymmetry"`
	EyeAlignment     float64 `json:"eyeAlignment"`
	NoseCentering    float64 `json:"noseCentering"`
	FacialPuffiness  float64 `json:"facialPuffiness"`
	SkinClarity      float64 `json:"skinClarity"`
	ChinAlignment    float64 `json:"chinAlignment"`
	FacialThirds     float64 `json:"facialThirds"`
	JawlineSymmetry  float64 `json:"jawlineSymmetry"`
	CheekboneBalance float64 `json:"cheekboneBalance"`
	EyebrowSymmetry  float64 `json:"eyebrowSymmetry"`
}

// Value returns the vector's value for a canonical factor.
func (v Vector) Value(f Factor) float64 {
	switch f {
	case OverallSymmetry:
		return v.OverallSymmetry
	case EyeAlignment:
		return v.EyeAlignment
	case NoseCentering:
		return v.NoseCentering
	case FacialPuffiness:
		return v.FacialPuffiness
	case SkinClarity:
		return v.SkinClarity
	case ChinAlignment:
		return v.ChinAlignment
	case FacialThirds:
		return v.FacialThirds
	case JawlineSymmetry:
		return v.JawlineSymmetry
	case CheekboneBalance:
		return v.CheekboneBalance
	case EyebrowSymmetry:
		return v.EyebrowSymmetry
	}
	return 0
}

// Landmark is a single face landmark passed through to the scoring
// provider. The core never interprets coordinates.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Scan is a completed assessment: the landmarks submitted and the
// normalized score vector they produced. Immutable once stored.
type Scan struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Landmarks []Landmark `json:"landmarks,omitempty"`
	Scores    Vector     `json:"scores"`
}
