package validator

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeName trims surrounding whitespace and title-cases each word.
// The operation is idempotent: normalizing an already-normalized value
// returns it unchanged, so repositories may apply it on every write.
func NormalizeName(value string) string {
	return titleCaser.String(strings.TrimSpace(value))
}

// NormalizeTrim only trims surrounding whitespace, for fields where the
// original casing is meaningful (city and airplane names).
func NormalizeTrim(value string) string {
	return strings.TrimSpace(value)
}

// CheckName validates a plain name field (letters and spaces only).
func (v *Validator) CheckName(field, value string) {
	v.Check(ValidName(value), field,
		fmt.Sprintf("%s should contain only english letters, spaces are allowed", value))
}

// CheckAirportName validates an airport name, which additionally allows
// dots, parentheses, dashes and slashes.
func (v *Validator) CheckAirportName(field, value string) {
	v.Check(ValidAirportName(value), field,
		fmt.Sprintf("%s should contain english letters, spaces, parentheses and the symbols - . / are allowed", value))
}

// CheckAirplaneName validates an airplane or airplane-type name.
func (v *Validator) CheckAirplaneName(field, value string) {
	v.Check(ValidAirplaneName(value), field,
		fmt.Sprintf("%s should contain english letters with or without spaces and digits, and must not start with a digit", value))
}

// CheckDistinctEndpoints fails both endpoint fields when a route's source
// and destination refer to the same airport.
func (v *Validator) CheckDistinctEndpoints(sourceID, destinationID uint64) {
	if sourceID == destinationID {
		v.AddError("source", "source and destination should not be the same")
		v.AddError("destination", "destination and source should not be the same")
	}
}

// CheckFuture fails when date is not strictly after now.
func (v *Validator) CheckFuture(field string, date, now time.Time) {
	v.Check(date.After(now), field,
		fmt.Sprintf("%s shouldn't be in the past", date.Format(time.RFC3339)))
}

// CheckDistinctDates fails both fields when the two timestamps are equal.
func (v *Validator) CheckDistinctDates(firstField, secondField string, first, second time.Time) {
	if first.Equal(second) {
		msg := fmt.Sprintf("%s & %s shouldn't be the same", firstField, secondField)
		v.AddError(firstField, msg)
		v.AddError(secondField, msg)
	}
}

// CheckOrdered fails the departure field when departure is after arrival.
func (v *Validator) CheckOrdered(departureField string, departure, arrival time.Time) {
	v.Check(!departure.After(arrival), departureField,
		"departure time should not be later than arrival time")
}

// CheckSeatBound fails field when the requested position exceeds the
// airplane's dimension (rows or seats per row). Positions are 1-based.
func (v *Validator) CheckSeatBound(field string, requested, max uint32) {
	v.Check(requested >= 1 && requested <= max, field,
		fmt.Sprintf("%d must be in range (1, %d)", requested, max))
}
