package model

// AgeBracket is the user's age group
type AgeBracket string

const (
	AgeUnder18 AgeBracket = "under-18"
	Age18To25  AgeBracket = "18-25"
	Age26To35  AgeBracket = "26-35"
	Age36To50  AgeBracket = "36-50"
	Age51To65  AgeBracket = "51-65"
	AgeOver65  AgeBracket = "over-65"
)

// AgeBrackets lists every age bracket in slider order
var AgeBrackets = []AgeBracket{AgeUnder18, Age18To25, Age26To35, Age36To50, Age51To65, AgeOver65}

func (a AgeBracket) Label() string {
	switch a {
	case AgeUnder18:
		return "under 18"
	case AgeOver65:
		return "over 65"
	default:
		return string(a)
	}
}

// WeightBracket is the user's body-weight group
type WeightBracket string

const (
	WeightUnder50 WeightBracket = "under-50kg"
	Weight50To70  WeightBracket = "50-70kg"
	Weight71To90  WeightBracket = "71-90kg"
	WeightOver90  WeightBracket = "over-90kg"
)

// WeightBrackets lists every weight bracket in slider order
var WeightBrackets = []WeightBracket{WeightUnder50, Weight50To70, Weight71To90, WeightOver90}

func (w WeightBracket) Label() string {
	switch w {
	case WeightUnder50:
		return "Under 50 kg"
	case Weight50To70:
		return "50-70 kg"
	case Weight71To90:
		return "71-90 kg"
	case WeightOver90:
		return "Over 90 kg"
	default:
		return string(w)
	}
}

// FootType is the arch shape of the user's foot
type FootType string

const (
	FootFlatArch   FootType = "flat-arch"
	FootNormalArch FootType = "normal-arch"
	FootHighArch   FootType = "high-arch"
)

// FootTypes lists every foot type in selection order
var FootTypes = []FootType{FootFlatArch, FootNormalArch, FootHighArch}

func (f FootType) Label() string {
	switch f {
	case FootFlatArch:
		return "Flat Arch"
	case FootNormalArch:
		return "Normal Arch"
	case FootHighArch:
		return "High Arch"
	default:
		return string(f)
	}
}

// ActivityLevel is how active the user is day to day
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// ActivityLevels lists every activity level in slider order
var ActivityLevels = []ActivityLevel{ActivityLow, ActivityModerate, ActivityHigh}

func (a ActivityLevel) Label() string {
	switch a {
	case ActivityLow:
		return "Low"
	case ActivityModerate:
		return "Moderate"
	case ActivityHigh:
		return "High"
	default:
		return string(a)
	}
}

// ShoeCategory is the kind of footwear recommended
type ShoeCategory string

const (
	CategoryRunning       ShoeCategory = "running"
	CategoryCrossTraining ShoeCategory = "cross-training"
	CategoryCasual        ShoeCategory = "casual"
	CategorySandals       ShoeCategory = "sandals"
)

// ShoeCategories lists every category in preference-menu order
var ShoeCategories = []ShoeCategory{CategoryRunning, CategoryCrossTraining, CategoryCasual, CategorySandals}

func (c ShoeCategory) Label() string {
	switch c {
	case CategoryRunning:
		return "Running shoes"
	case CategoryCrossTraining:
		return "Cross-training shoes"
	case CategoryCasual:
		return "Casual/fashion sneakers"
	case CategorySandals:
		return "Sandals or slippers"
	default:
		return string(c)
	}
}

// Profile holds the questionnaire answers fed to the recommender.
// PreferredCategory is optional; the empty value means "auto detect".
type Profile struct {
	Age               AgeBracket    `json:"age" yaml:"age" validate:"oneof=under-18 18-25 26-35 36-50 51-65 over-65"`
	Weight            WeightBracket `json:"weight" yaml:"weight" validate:"oneof=under-50kg 50-70kg 71-90kg over-90kg"`
	Foot              FootType      `json:"foot" yaml:"foot" validate:"oneof=flat-arch normal-arch high-arch"`
	Activity          ActivityLevel `json:"activity" yaml:"activity" validate:"oneof=low moderate high"`
	PreferredCategory ShoeCategory  `json:"preferred,omitempty" yaml:"preferred,omitempty" validate:"omitempty,oneof=running cross-training casual sandals"`
}

// HasPreference reports whether the user picked a category explicitly
func (p Profile) HasPreference() bool {
	return p.PreferredCategory != ""
}
