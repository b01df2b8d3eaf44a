package form

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/weatherdash/internal/errors"
)

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		city     string
		minTemp  string
		maxTemp  string
		wantCity string
		wantMin  *float64
		wantMax  *float64
	}{
		{"no bounds", "Paris", "", "", "Paris", nil, nil},
		{"trims name", "  New York \t", "", "", "New York", nil, nil},
		{"both bounds", "Oslo", "-5", "25", "Oslo", ptr(-5), ptr(25)},
		{"equal bounds", "Oslo", "10", "10", "Oslo", ptr(10), ptr(10)},
		{"min only", "Oslo", "3.5", "", "Oslo", ptr(3.5), nil},
		{"max only", "Oslo", "", "30", "Oslo", nil, ptr(30)},
		{"zero is a bound", "Nuuk", "0", "", "Nuuk", ptr(0), nil},
		{"negative range", "Yakutsk", "-60", "-40", "Yakutsk", ptr(-60), ptr(-40)},
		{"bound whitespace", "Oslo", " 4 ", " 8 ", "Oslo", ptr(4), ptr(8)},
		{"unparseable min is absent", "Oslo", "warm", "8", "Oslo", nil, ptr(8)},
		{"NaN is absent", "Oslo", "NaN", "8", "Oslo", nil, ptr(8)},
		{"infinity is absent", "Oslo", "1", "+Inf", "Oslo", ptr(1), nil},
		{"unparseable pair skips order check", "Oslo", "30", "cold", "Oslo", ptr(30), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, err := Validate(tt.city, tt.minTemp, tt.maxTemp)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCity, in.City)
			assert.Equal(t, tt.wantMin, in.MinTemp)
			assert.Equal(t, tt.wantMax, in.MaxTemp)
		})
	}
}

func TestValidate_RequiredField(t *testing.T) {
	t.Parallel()

	for _, city := range []string{"", " ", "\t\n"} {
		for _, bounds := range [][2]string{{"", ""}, {"30", "10"}, {"1", "2"}} {
			t.Run(fmt.Sprintf("%q/%v", city, bounds), func(t *testing.T) {
				t.Parallel()

				_, err := Validate(city, bounds[0], bounds[1])
				require.ErrorIs(t, err, ErrRequiredField)
				assert.NotErrorIs(t, err, ErrRangeOrder, "required check runs first")
				assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
			})
		}
	}
}

func TestValidate_RangeOrder(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{{"30", "10"}, {"0.1", "0"}, {"-1", "-2"}, {"25", "-5"}}
	for _, p := range pairs {
		t.Run(p[0]+">"+p[1], func(t *testing.T) {
			t.Parallel()

			in, err := Validate("Oslo", p[0], p[1])
			require.ErrorIs(t, err, ErrRangeOrder)
			assert.Equal(t, Input{}, in)
			assert.Equal(t, "minimum temperature must be less than maximum temperature", err.Error())

			field, ok := errors.ContextValue(err, "field")
			require.True(t, ok)
			assert.Equal(t, "minTemp", field)
		})
	}
}

func ptr(v float64) *float64 { return &v }
