// Package wizard implements the three-step questionnaire as an explicit state machine.
//
// A Session is owned by its caller and is not safe for concurrent use.
package wizard

import (
	"errors"
	"fmt"

	"github.com/ppiankov/footfit/internal/model"
)

// Step is a wizard screen
type Step int

const (
	StepPersonal Step = 1 // age, weight, activity sliders
	StepFoot     Step = 2 // foot type and optional preference
	StepResult   Step = 3 // analyze
)

// StepCount is the number of wizard screens
const StepCount = 3

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "Personal Info"
	case StepFoot:
		return "Foot details"
	case StepResult:
		return "Recommendation"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

var (
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrWrongStep         = errors.New("answer not accepted on this step")
	ErrIndexOutOfRange   = errors.New("slider index out of range")
)

// Slider defaults, matching the positions the questionnaire starts at
const (
	DefaultAgeIndex        = 2 // 26-35
	DefaultWeightIndex     = 1 // 50-70kg
	DefaultActivityIndex   = 1 // moderate
	DefaultFootIndex       = 1 // normal-arch
	DefaultPreferenceIndex = 0 // auto detect
)

// Recommender is what Analyze calls
type Recommender interface {
	Recommend(p model.Profile) (model.Recommendation, error)
}

// answers holds what the user has entered so far; nil means unanswered
type answers struct {
	age       *model.AgeBracket
	weight    *model.WeightBracket
	activity  *model.ActivityLevel
	foot      *model.FootType
	preferred model.ShoeCategory
}

// Session tracks the current step and accumulated answers
type Session struct {
	step    Step
	answers answers
}

// NewSession starts a wizard on step 1
func NewSession() *Session {
	return &Session{step: StepPersonal}
}

// Step returns the current step
func (s *Session) Step() Step {
	return s.step
}

// Next advances one step. There is no step after the result.
func (s *Session) Next() error {
	if s.step >= StepResult {
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, s.step)
	}
	s.step++
	return nil
}

// Back returns one step; on step 1 it stays put
func (s *Session) Back() {
	if s.step > StepPersonal {
		s.step--
	}
}

// Reset starts over: step 1, no answers
func (s *Session) Reset() {
	s.step = StepPersonal
	s.answers = answers{}
}

// SetPersonal records the step-1 slider positions
func (s *Session) SetPersonal(ageIdx, weightIdx, activityIdx int) error {
	if s.step != StepPersonal {
		return fmt.Errorf("%w: personal info on %s", ErrWrongStep, s.step)
	}

	age, err := AgeAt(ageIdx)
	if err != nil {
		return err
	}
	weight, err := WeightAt(weightIdx)
	if err != nil {
		return err
	}
	activity, err := ActivityAt(activityIdx)
	if err != nil {
		return err
	}

	s.answers.age = &age
	s.answers.weight = &weight
	s.answers.activity = &activity
	return nil
}

// SetFoot records the step-2 foot type and preference (0 = auto detect)
func (s *Session) SetFoot(footIdx, preferenceIdx int) error {
	if s.step != StepFoot {
		return fmt.Errorf("%w: foot details on %s", ErrWrongStep, s.step)
	}

	foot, err := FootAt(footIdx)
	if err != nil {
		return err
	}
	pref, err := PreferenceAt(preferenceIdx)
	if err != nil {
		return err
	}

	s.answers.foot = &foot
	s.answers.preferred = pref
	return nil
}

// Profile returns the answers so far, with defaults for anything unanswered
func (s *Session) Profile() model.Profile {
	p := model.Profile{
		Age:               model.AgeBrackets[DefaultAgeIndex],
		Weight:            model.WeightBrackets[DefaultWeightIndex],
		Activity:          model.ActivityLevels[DefaultActivityIndex],
		Foot:              model.FootTypes[DefaultFootIndex],
		PreferredCategory: s.answers.preferred,
	}
	if s.answers.age != nil {
		p.Age = *s.answers.age
	}
	if s.answers.weight != nil {
		p.Weight = *s.answers.weight
	}
	if s.answers.activity != nil {
		p.Activity = *s.answers.activity
	}
	if s.answers.foot != nil {
		p.Foot = *s.answers.foot
	}
	return p
}

// Analyze runs the recommender once. Only allowed on the result step.
func (s *Session) Analyze(r Recommender) (model.Recommendation, error) {
	if s.step != StepResult {
		return model.Recommendation{}, fmt.Errorf("%w: analyze on %s", ErrInvalidTransition, s.step)
	}
	return r.Recommend(s.Profile())
}
