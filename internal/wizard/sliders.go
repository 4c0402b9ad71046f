package wizard

import (
	"fmt"

	"github.com/ppiankov/footfit/internal/model"
)

// PreferenceOptions is the step-2 menu; index 0 leaves the category to the engine
var PreferenceOptions = []string{
	"Auto detect",
	model.CategoryRunning.Label(),
	model.CategoryCrossTraining.Label(),
	model.CategoryCasual.Label(),
	model.CategorySandals.Label(),
}

func at[T any](name string, items []T, idx int) (T, error) {
	if idx < 0 || idx >= len(items) {
		var zero T
		return zero, fmt.Errorf("%w: %s index %d not in 0..%d", ErrIndexOutOfRange, name, idx, len(items)-1)
	}
	return items[idx], nil
}

func AgeAt(idx int) (model.AgeBracket, error) {
	return at("age", model.AgeBrackets, idx)
}

func WeightAt(idx int) (model.WeightBracket, error) {
	return at("weight", model.WeightBrackets, idx)
}

func ActivityAt(idx int) (model.ActivityLevel, error) {
	return at("activity", model.ActivityLevels, idx)
}

func FootAt(idx int) (model.FootType, error) {
	return at("foot", model.FootTypes, idx)
}

// PreferenceAt maps a menu index to a category; 0 yields no preference
func PreferenceAt(idx int) (model.ShoeCategory, error) {
	if idx < 0 || idx >= len(PreferenceOptions) {
		return "", fmt.Errorf("%w: preference index %d not in 0..%d", ErrIndexOutOfRange, idx, len(PreferenceOptions)-1)
	}
	if idx == 0 {
		return "", nil
	}
	return model.ShoeCategories[idx-1], nil
}
