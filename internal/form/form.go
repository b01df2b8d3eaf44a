// Package form validates the add-city input before anything is sent to the API.
package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/tphakala/weatherdash/internal/errors"
)

// Validation failures. Both block submission only.
var (
	ErrRequiredField = errors.NewStd("city name is required")
	ErrRangeOrder    = errors.NewStd("minimum temperature must be less than maximum temperature")
)

// Input is a validated add-city submission. Absent bounds are nil.
type Input struct {
	City    string
	MinTemp *float64
	MaxTemp *float64
}

// Validate checks the raw form values.
//
// The trimmed city name must be non-empty. Bound strings that are empty or
// not a finite number are treated as absent. When both bounds are present
// the minimum may not exceed the maximum; equal bounds are accepted.
// Negative temperatures and units are not checked.
func Validate(city, minTemp, maxTemp string) (Input, error) {
	name := strings.TrimSpace(city)
	if name == "" {
		return Input{}, validationError(ErrRequiredField, "city")
	}

	in := Input{
		City:    name,
		MinTemp: parseBound(minTemp),
		MaxTemp: parseBound(maxTemp),
	}

	if in.MinTemp != nil && in.MaxTemp != nil && *in.MinTemp > *in.MaxTemp {
		return Input{}, validationError(ErrRangeOrder, "minTemp")
	}
	return in, nil
}

// parseBound returns nil for anything that is not a finite number.
func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func validationError(sentinel error, field string) error {
	return errors.New(sentinel).
		Component("form").
		Category(errors.CategoryValidation).
		Priority(errors.PriorityLow).
		Context("field", field).
		Build()
}
