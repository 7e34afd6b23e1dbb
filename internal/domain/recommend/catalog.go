// Package recommend ranks corrective routines against a user's score vector.
package recommend

import (
	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
)

// Mapping relates a routine to a factor with a curated effectiveness
// weight. Impact is on a 1-10 scale; higher means more effective.
type Mapping struct {
	RoutineID routine.ID
	Impact    float64
}

// Catalog is the immutable configuration for the engine: per-factor goal
// values plus the factor-to-routine mappings. Injected at construction so
// tests can substitute alternate tables.
type Catalog struct {
	Goals    map[score.Factor]float64
	Mappings map[score.Factor][]Mapping
}

// DefaultCatalog returns the curated production tables. The goal values
// and impacts stay in sync with the backend's routine/factor map.
func DefaultCatalog() Catalog {
	return Catalog{
		Goals: map[score.Factor]float64{
			score.OverallSymmetry:  85,
			score.EyeAlignment:     85,
			score.NoseCentering:    80,
			score.FacialPuffiness:  30, // lower is better
			score.SkinClarity:      70,
			score.ChinAlignment:    80,
			score.FacialThirds:     70,
			score.JawlineSymmetry:  80,
			score.CheekboneBalance: 75,
			score.EyebrowSymmetry:  80,
		},
		Mappings: map[score.Factor][]Mapping{
			score.OverallSymmetry: {
				{RoutineID: routine.HardMewingHold, Impact: 9},
				{RoutineID: routine.ChinTucks, Impact: 8},
				{RoutineID: routine.NeckCurlsExtensions, Impact: 7},
			},
			score.FacialThirds: {
				{RoutineID: routine.HardMewingHold, Impact: 8},
				{RoutineID: routine.ChinTucks, Impact: 7},
			},
			score.EyeAlignment: {
				{RoutineID: routine.OrbOculiTraining, Impact: 9},
				{RoutineID: routine.SCMNeckStretch, Impact: 6},
			},
			score.EyebrowSymmetry: {
				{RoutineID: routine.OrbOculiTraining, Impact: 8},
			},
			score.NoseCentering: {
				{RoutineID: routine.NoseCenteringRoutine, Impact: 9},
				{RoutineID: routine.SCMNeckStretch, Impact: 5},
			},
			score.FacialPuffiness: {
				{RoutineID: routine.GuaShaJawline, Impact: 9},
				{RoutineID: routine.MandibularFasciaRelease, Impact: 7},
			},
			score.SkinClarity: {
				{RoutineID: routine.GuaShaJawline, Impact: 7},
			},
			score.JawlineSymmetry: {
				{RoutineID: routine.MasseterBalanceTraining, Impact: 9},
				{RoutineID: routine.MandibularFasciaRelease, Impact: 7},
			},
			score.CheekboneBalance: {
				{RoutineID: routine.CheekboneLiftMassage, Impact: 9},
				{RoutineID: routine.GuaShaJawline, Impact: 6},
			},
			score.ChinAlignment: {
				{RoutineID: routine.ChinTucks, Impact: 9},
				{RoutineID: routine.MasseterBalanceTraining, Impact: 7},
			},
		},
	}
}
