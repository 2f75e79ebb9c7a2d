package units

import (
	"testing"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConvertReps_KeepsText(t *testing.T) {
	assert.Equal(t, "8-10", ConvertReps("8-10", domain.RepRange, domain.RepFixed))
	assert.Equal(t, "30s", ConvertReps("30s", domain.RepTime, domain.RepAMRAP))
}

func TestFormatReps(t *testing.T) {
	cases := []struct {
		typ  domain.RepType
		in   string
		want string
	}{
		{domain.RepFixed, "08", "8"},
		{domain.RepRange, "8 - 10", "8-10"},
		{domain.RepRange, "6 to 8", "6-8"},
		{domain.RepDescending, "10 8 6", "10,8,6"},
		{domain.RepDescending, "12/10/10", "12,10,10"},
		{domain.RepTime, "45", "45s"},
		{domain.RepTime, "90s", "1:30"},
		{domain.RepTime, "2 min", "2:00"},
		{domain.RepTime, "1:05", "1:05"},
		{domain.RepEachSide, "10", "10/side"},
		{domain.RepEachSide, "12 each", "12/side"},
		{domain.RepAMRAP, "max", "AMRAP"},
		{domain.RepFixed, "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatReps(tc.in, tc.typ), "%s %q", tc.typ, tc.in)
	}
}

func TestFormatReps_InvalidKeepsInput(t *testing.T) {
	assert.Equal(t, "10-8", FormatReps("10-8", domain.RepRange))
	assert.Equal(t, "6,8,10", FormatReps("6,8,10", domain.RepDescending))
	assert.Equal(t, "lots", FormatReps("lots", domain.RepFixed))
}

func TestValidateReps(t *testing.T) {
	assert.NoError(t, ValidateReps("8-10", domain.RepRange))
	assert.Error(t, ValidateReps("8", domain.RepRange))
	assert.Error(t, ValidateReps("10", domain.RepDescending))
	assert.Error(t, ValidateReps("soon", domain.RepTime))
	assert.Error(t, ValidateReps("5", domain.RepType("bogus")))
}

func TestRepPlaceholder(t *testing.T) {
	assert.Equal(t, "8-10", RepPlaceholder(domain.RepRange))
	assert.Equal(t, "reps", RepPlaceholder(""))
}

func TestFormatRest(t *testing.T) {
	assert.Equal(t, "1:30", FormatRest("90"))
	assert.Equal(t, "45s", FormatRest("45 sec"))
	assert.Equal(t, "long", FormatRest("long"))
}
