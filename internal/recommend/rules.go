package recommend

import "github.com/ppiankov/footfit/internal/model"

// Materials the rules can suggest
const (
	MaterialDualDensityMidsole = "dual-density firm midsole"
	MaterialPlushRockerFoam    = "plush cushioned foam with rocker geometry"
	MaterialBalancedFoam       = "responsive balanced foam"
	MaterialHighRebound        = "high-rebound cushioning unit"
	MaterialLightweightFoam    = "lightweight low-density foam"
	MaterialSoftTopLayer       = "soft cushioned top layer"
	MaterialBreathableMesh     = "engineered breathable mesh upper"
	MaterialLateralOverlay     = "reinforced lateral support overlay"
	MaterialCorkFootbed        = "cork or foam footbed"
)

// Catalog returns every material any rule can add, in rule order
func Catalog() []string {
	return []string{
		MaterialDualDensityMidsole,
		MaterialPlushRockerFoam,
		MaterialBalancedFoam,
		MaterialHighRebound,
		MaterialLightweightFoam,
		MaterialSoftTopLayer,
		MaterialBreathableMesh,
		MaterialLateralOverlay,
		MaterialCorkFootbed,
	}
}

// reason pairs a material with the sentence that justifies it
type reason struct {
	material      string
	justification string
}

var footRules = map[model.FootType]struct {
	arch       model.ArchSupport
	cushioning model.Cushioning
	reason     reason
}{
	model.FootFlatArch: {
		arch:       model.ArchHigh,
		cushioning: model.CushioningModerate,
		reason:     reason{MaterialDualDensityMidsole, "reduces overpronation, increases arch stability"},
	},
	model.FootHighArch: {
		arch:       model.ArchLowToModerate,
		cushioning: model.CushioningHigh,
		reason:     reason{MaterialPlushRockerFoam, "increases shock absorption, promotes even load distribution"},
	},
	model.FootNormalArch: {
		arch:       model.ArchNormal,
		cushioning: model.CushioningModerate,
		reason:     reason{MaterialBalancedFoam, "balanced cushioning and flexibility"},
	},
}

var (
	heavyReason   = reason{MaterialHighRebound, "extra cushioning reduces peak plantar pressure for heavier users"}
	lightReason   = reason{MaterialLightweightFoam, "keeps the shoe light for lighter users"}
	seniorReason  = reason{MaterialSoftTopLayer, "additional comfort and pressure relief for older feet"}
	categoryRules = map[model.ShoeCategory]reason{
		model.CategoryRunning:       {MaterialBreathableMesh, "improves breathability, reduces weight during running"},
		model.CategoryCrossTraining: {MaterialLateralOverlay, "provides lateral stability for multi-directional movement"},
		model.CategorySandals:       {MaterialCorkFootbed, "conforms to foot shape, cushions casual wear"},
	}
)

// accumulator is the single mutable state the rules write to
type accumulator struct {
	category   model.ShoeCategory
	arch       model.ArchSupport
	cushioning model.Cushioning
	reasons    []reason
	fired      []string
}

func (a *accumulator) add(r reason) {
	a.reasons = append(a.reasons, r)
}

// rule is one step of the recommendation. Apply reports whether it fired.
type rule struct {
	name  string
	apply func(p model.Profile, acc *accumulator) bool
}

// rules run in this exact order; later cushioning writes overwrite earlier ones
var rules = []rule{
	{name: "activity", apply: applyActivity},
	{name: "foot", apply: applyFoot},
	{name: "weight", apply: applyWeight},
	{name: "age", apply: applyAge},
	{name: "category", apply: applyCategory},
}

func applyActivity(p model.Profile, acc *accumulator) bool {
	switch p.Activity {
	case model.ActivityHigh:
		acc.category = model.CategoryRunning
	case model.ActivityModerate:
		acc.category = model.CategoryCrossTraining
	default:
		acc.category = model.CategoryCasual
	}
	return true
}

func applyFoot(p model.Profile, acc *accumulator) bool {
	fr, ok := footRules[p.Foot]
	if !ok {
		fr = footRules[model.FootNormalArch]
	}
	acc.arch = fr.arch
	acc.cushioning = fr.cushioning
	acc.add(fr.reason)
	return true
}

func applyWeight(p model.Profile, acc *accumulator) bool {
	switch p.Weight {
	case model.Weight71To90, model.WeightOver90:
		acc.cushioning = model.CushioningHigh
		acc.add(heavyReason)
		return true
	case model.WeightUnder50:
		acc.add(lightReason)
		return true
	}
	return false
}

func applyAge(p model.Profile, acc *accumulator) bool {
	if p.Age != model.Age51To65 && p.Age != model.AgeOver65 {
		return false
	}
	acc.cushioning = model.CushioningHigh
	acc.add(seniorReason)
	return true
}

// applyCategory keys off the activity-derived category, never the preference
func applyCategory(_ model.Profile, acc *accumulator) bool {
	r, ok := categoryRules[acc.category]
	if !ok {
		return false
	}
	acc.add(r)
	return true
}
