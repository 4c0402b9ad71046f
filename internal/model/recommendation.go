package model

// ArchSupport is the recommended level of arch support
type ArchSupport string

const (
	ArchLowToModerate ArchSupport = "low-to-moderate"
	ArchNormal        ArchSupport = "normal"
	ArchHigh          ArchSupport = "high"
)

func (a ArchSupport) Label() string {
	switch a {
	case ArchLowToModerate:
		return "Low to Moderate"
	case ArchNormal:
		return "Normal"
	case ArchHigh:
		return "High"
	default:
		return string(a)
	}
}

// Cushioning is the recommended midsole cushioning level
type Cushioning string

const (
	CushioningModerate Cushioning = "moderate"
	CushioningHigh     Cushioning = "high"
)

func (c Cushioning) Label() string {
	switch c {
	case CushioningModerate:
		return "Moderate"
	case CushioningHigh:
		return "High"
	default:
		return string(c)
	}
}

// Recommendation is the structured output of the rule engine
type Recommendation struct {
	ShoeCategory  ShoeCategory `json:"shoe_category"`
	ArchSupport   ArchSupport  `json:"arch_support"`
	Cushioning    Cushioning   `json:"cushioning"`
	Materials     []string     `json:"materials"`     // At most 2, first-triggered order
	Justification []string     `json:"justification"` // At most 3, aligned with deduplicated materials
	Rules         []string     `json:"rules"`         // Names of the rules that fired, in evaluation order
}

// Narrative is an optional LLM-written explanation of a recommendation.
// It is produced after the engine runs and never changes the recommendation.
type Narrative struct {
	Enabled         bool     `json:"enabled"`
	Provider        string   `json:"provider,omitempty"`
	Model           string   `json:"model,omitempty"`
	StrictMaterials bool     `json:"strict_materials"`
	Text            string   `json:"text,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}
