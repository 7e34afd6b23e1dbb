package score

import (
	"fmt"
	"math"
)

// providerFields maps each canonical factor to the short field name used by
// the scoring provider. The mapping is total: every canonical key has
// exactly one source field.
var providerFields = map[Factor]string{
	OverallSymmetry:  "overall",
	EyeAlignment:     "eye",
	NoseCentering:    "nose",
	FacialPuffiness:  "puff",
	SkinClarity:      "clar",
	ChinAlignment:    "chin",
	FacialThirds:     "thirds",
	JawlineSymmetry:  "jaw",
	CheekboneBalance: "mid",
	EyebrowSymmetry:  "brow",
}

// Normalize converts a raw provider payload into the canonical vector.
// A missing or malformed source field fails with ErrNormalization rather
// than defaulting to zero; a silently-defaulted factor would corrupt every
// downstream recommendation.
func Normalize(raw map[string]float64) (Vector, error) {
	var v Vector
	for _, f := range factors {
		field := providerFields[f]
		val, ok := raw[field]
		if !ok {
			return Vector{}, fmt.Errorf("%w: missing provider field %q", ErrNormalization, field)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 || val > 100 {
			return Vector{}, fmt.Errorf("%w: provider field %q out of range: %v", ErrNormalization, field, val)
		}
		v.set(f, val)
	}
	return v, nil
}

func (v *Vector) set(f Factor, val float64) {
	switch f {
	case OverallSymmetry:
		v.OverallSymmetry = val
	case EyeAlignment:
		v.EyeAlignment = val
	case NoseCentering:
		v.NoseCentering = val
	case FacialPuffiness:
		v.FacialPuffiness = val
	case SkinClarity:
		v.SkinClarity = val
	case ChinAlignment:
		v.ChinAlignment = val
	case FacialThirds:
		v.FacialThirds = val
	case JawlineSymmetry:
		v.JawlineSymmetry = val
	case CheekboneBalance:
		v.CheekboneBalance = val
	case EyebrowSymmetry:
		v.EyebrowSymmetry = val
	}
}
