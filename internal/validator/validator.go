// Package validator accumulates field-keyed validation errors so that API
// consumers can highlight the offending inputs instead of parsing a single
// message string. All checks are pure; nothing here touches the database.
package validator

import "regexp"

// namePattern matches names made of basic Latin letters and whitespace.
// A separate hasLetter check enforces that at least one letter is present,
// so a value of only spaces is rejected.
var (
	namePattern         = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	airportNamePattern  = regexp.MustCompile(`^[a-zA-Z\s.()\-/]+$`)
	airplaneNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	hasLetter           = regexp.MustCompile(`[a-zA-Z]`)
	startsWithDigit     = regexp.MustCompile(`^[0-9]`)
)

// Validator collects validation failures keyed by field name. A Validator
// with no recorded errors is valid. The zero value is not usable; call New.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator ready to accumulate errors.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no field has failed so far.
func (v *Validator) Valid() bool { return len(v.Errors) == 0 }

// AddError records a failure for field. The first failure recorded for a
// field wins; later ones for the same field are dropped.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check records message under field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Err returns the accumulated failures as a *ValidationError, or nil when
// every check passed. Handlers translate the result into a 400 response.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &ValidationError{Fields: v.Errors}
}

// ValidName reports whether value consists solely of letters and spaces and
// contains at least one letter.
func ValidName(value string) bool {
	return hasLetter.MatchString(value) && namePattern.MatchString(value)
}

// ValidAirportName is like ValidName but additionally permits the
// characters . ( ) - and /.
func ValidAirportName(value string) bool {
	return hasLetter.MatchString(value) && airportNamePattern.MatchString(value)
}

// ValidAirplaneName permits letters, digits and spaces. The value must
// contain at least one letter and must not start with a digit.
func ValidAirplaneName(value string) bool {
	return hasLetter.MatchString(value) &&
		airplaneNamePattern.MatchString(value) &&
		!startsWithDigit.MatchString(value)
}
