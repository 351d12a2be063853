package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"simple", "Paris", true},
		{"with spaces", "New York", true},
		{"only spaces", "   ", false},
		{"empty", "", false},
		{"underscore", "Kyiv_", false},
		{"digits", "City9", false},
		{"punctuation", "St. Louis", false},
		{"cyrillic", "Київ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.value))
		})
	}
}

func TestValidAirportName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"plain", "Heathrow", true},
		{"extended charset", "John F. Kennedy (JFK) - Intl/North", true},
		{"only symbols", ".-/()", false},
		{"digits rejected", "Terminal 5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAirportName(tt.value))
		})
	}
}

func TestValidAirplaneName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"letters and digits", "Boeing 747", true},
		{"letters only", "Concorde", true},
		{"leading digit", "747 Boeing", false},
		{"digits only", "747", false},
		{"punctuation", "A-320", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAirplaneName(tt.value))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{" united  kingdom ", "UKRAINE", "new zealand", "Côte d'Ivoire"}
	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "normalize should be idempotent for %q", in)
	}
	assert.Equal(t, "United Kingdom", NormalizeName("  united kingdom "))
}

func TestCheckDistinctEndpoints(t *testing.T) {
	v := New()
	v.CheckDistinctEndpoints(3, 3)
	assert.False(t, v.Valid())
	assert.Contains(t, v.Errors, "source")
	assert.Contains(t, v.Errors, "destination")

	v = New()
	v.CheckDistinctEndpoints(3, 4)
	assert.True(t, v.Valid())
}

func TestFlightDateRules(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	dep := now.Add(24 * time.Hour)
	arr := dep.Add(3 * time.Hour)

	t.Run("past departure rejected", func(t *testing.T) {
		v := New()
		v.CheckFuture("departure_time", past, now)
		assert.Contains(t, v.Errors, "departure_time")
	})

	t.Run("equal dates rejected on both fields", func(t *testing.T) {
		v := New()
		v.CheckDistinctDates("departure_time", "arrival_time", dep, dep)
		assert.Contains(t, v.Errors, "departure_time")
		assert.Contains(t, v.Errors, "arrival_time")
	})

	t.Run("departure after arrival rejected", func(t *testing.T) {
		v := New()
		v.CheckOrdered("departure_time", arr, dep)
		assert.Contains(t, v.Errors, "departure_time")
	})

	t.Run("valid schedule passes", func(t *testing.T) {
		v := New()
		v.CheckFuture("departure_time", dep, now)
		v.CheckFuture("arrival_time", arr, now)
		v.CheckDistinctDates("departure_time", "arrival_time", dep, arr)
		v.CheckOrdered("departure_time", dep, arr)
		assert.True(t, v.Valid())
		assert.NoError(t, v.Err())
	})
}

func TestCheckSeatBound(t *testing.T) {
	tests := []struct {
		name      string
		requested uint32
		max       uint32
		ok        bool
	}{
		{"in range", 3, 10, true},
		{"lower edge", 1, 10, true},
		{"upper edge", 10, 10, true},
		{"zero", 0, 10, false},
		{"above max", 11, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.CheckSeatBound("seat", tt.requested, tt.max)
			assert.Equal(t, tt.ok, v.Valid())
		})
	}
}

func TestValidatorFirstErrorWins(t *testing.T) {
	v := New()
	v.AddError("name", "first")
	v.AddError("name", "second")
	assert.Equal(t, "first", v.Errors["name"])
}

func TestValidationErrorMessage(t *testing.T) {
	v := New()
	v.CheckName("name", "123")
	err := v.Err()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, err.Error(), "name")
}
