// Package validate checks questionnaire answers against their enumerated domains.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ppiankov/footfit/internal/model"
)

// ErrInvalidDomainValue is the only error kind the recommender raises
var ErrInvalidDomainValue = errors.New("invalid-domain-value")

var (
	instance *validator.Validate
	once     sync.Once
)

// FieldError describes one field that fell outside its domain
type FieldError struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	Allowed []string `json:"allowed"`
}

// DomainError collects every out-of-domain field of a profile
type DomainError struct {
	Fields []FieldError
}

func (e *DomainError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %q must be one of: %s", f.Field, f.Value, strings.Join(f.Allowed, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidDomainValue, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidDomainValue) hold for any DomainError
func (e *DomainError) Is(target error) bool {
	return target == ErrInvalidDomainValue
}

// Code returns the machine-readable error kind
func (e *DomainError) Code() string {
	return ErrInvalidDomainValue.Error()
}

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON name so errors match what callers send
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Profile validates every field of p. It returns nil or a *DomainError.
func Profile(p model.Profile) error {
	err := get().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate profile: %w", err)
	}

	domainErr := &DomainError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		domainErr.Fields = append(domainErr.Fields, FieldError{
			Field:   fe.Field(),
			Value:   fmt.Sprint(fe.Value()),
			Allowed: strings.Fields(fe.Param()),
		})
	}
	return domainErr
}
