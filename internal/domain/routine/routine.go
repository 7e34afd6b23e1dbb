// Package routine defines the catalog of corrective routine identifiers.
package routine

// ID identifies a corrective routine. The set is externally curated and
// must stay in sync with the content catalog shipped to clients.
type ID string

// Known routine identifiers.
const (
	HardMewingHold          ID = "hard-mewing-hold"
	MasseterBalanceTraining ID = "masseter-balance-training"
	NeckCurlsExtensions     ID = "neck-curls-extensions"
	ChinTucks               ID = "chin-tucks"
	WallPostureReset        ID = "wall-posture-reset"
	SCMNeckStretch          ID = "scm-neck-stretch"
	MandibularFasciaRelease ID = "mandibular-fascia-release"
	GuaShaJawline           ID = "gua-sha-jawline"
	CheekboneLiftMassage    ID = "cheekbone-lift-massage"
	SmileSymmetryRoutine    ID = "smile-symmetry-routine"
	OrbOculiTraining        ID = "orb-oculi-training"
	WallPostureTraining     ID = "wall-posture-training"
	NeckStretch             ID = "neck-stretch"
	NoseCenteringRoutine    ID = "nose-centering-routine"
)

// all lists every known routine in catalog order.
var all = []ID{
	HardMewingHold,
	MasseterBalanceTraining,
	NeckCurlsExtensions,
	ChinTucks,
	WallPostureReset,
	SCMNeckStretch,
	MandibularFasciaRelease,
	GuaShaJawline,
	CheekboneLiftMassage,
	SmileSymmetryRoutine,
	OrbOculiTraining,
	WallPostureTraining,
	NeckStretch,
	NoseCenteringRoutine,
}

var known = func() map[ID]struct{} {
	m := make(map[ID]struct{}, len(all))
	for _, id := range all {
		m[id] = struct{}{}
	}
	return m
}()

// All returns the known routines in catalog order. The returned slice is a
// copy; callers may reorder it freely.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Known reports whether id names a routine in the catalog.
func Known(id ID) bool {
	_, ok := known[id]
	return ok
}
