// Package recommend maps a questionnaire profile to a footwear recommendation.
//
// The engine is a fixed, ordered rule table applied to a single accumulator.
// It holds no state, does no I/O and is safe for concurrent use.
package recommend

import (
	"fmt"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/validate"
)

const (
	// MaxMaterials caps the materials shown to the user
	MaxMaterials = 2
	// MaxJustifications caps the justification sentences, independently of MaxMaterials
	MaxJustifications = 3
)

// Recommender evaluates the rule table
type Recommender struct{}

// NewRecommender creates a new recommender
func NewRecommender() *Recommender {
	return &Recommender{}
}

// Recommend validates p and returns its recommendation.
// The only error is a validate.ErrInvalidDomainValue.
func (r *Recommender) Recommend(p model.Profile) (model.Recommendation, error) {
	if err := validate.Profile(p); err != nil {
		return model.Recommendation{}, err
	}

	acc := &accumulator{}

	// 1-5. Ordered rule evaluation
	for _, rl := range rules {
		if rl.apply(p, acc) {
			acc.fired = append(acc.fired, ruleLabel(rl.name, p, acc))
		}
	}

	// 6. Deduplicate by material, then cap each list independently
	materials, justification := dedupe(acc.reasons)

	// 7. Preference override touches only the category label
	category := acc.category
	if p.HasPreference() {
		category = p.PreferredCategory
		acc.fired = append(acc.fired, "preference:"+string(p.PreferredCategory))
	}

	return model.Recommendation{
		ShoeCategory:  category,
		ArchSupport:   acc.arch,
		Cushioning:    acc.cushioning,
		Materials:     truncate(materials, MaxMaterials),
		Justification: truncate(justification, MaxJustifications),
		Rules:         acc.fired,
	}, nil
}

// dedupe keeps the first occurrence of each material along with its own justification
func dedupe(reasons []reason) (materials []string, justification []string) {
	seen := make(map[string]bool, len(reasons))
	materials = make([]string, 0, len(reasons))
	justification = make([]string, 0, len(reasons))

	for _, r := range reasons {
		if seen[r.material] {
			continue
		}
		seen[r.material] = true
		materials = append(materials, r.material)
		justification = append(justification, r.justification)
	}

	return materials, justification
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n:n]
	}
	return items
}

// ruleLabel names a fired rule with the input that triggered it
func ruleLabel(name string, p model.Profile, acc *accumulator) string {
	switch name {
	case "activity":
		return fmt.Sprintf("activity:%s->%s", p.Activity, acc.category)
	case "foot":
		return "foot:" + string(p.Foot)
	case "weight":
		return "weight:" + string(p.Weight)
	case "age":
		return "age:" + string(p.Age)
	case "category":
		return "category:" + string(acc.category)
	default:
		return name
	}
}
