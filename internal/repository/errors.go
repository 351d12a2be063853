// Package repository persists the domain entities with their invariants
// enforced atomically at write time. Field validators run before any
// insert, uniqueness is delegated to the schema's UNIQUE keys, and any
// violation aborts the whole write.
//
// This file defines the error values shared across repositories so
// handlers can translate failures into HTTP responses.
package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, e.g. another user's order. Handlers translate
// it into a 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned (usually wrapped with the entity name) when a
// lookup yields no rows. Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ConflictError reports a uniqueness-constraint violation with field-keyed
// messages, mirroring the shape of validation failures so clients handle
// both the same way. Handlers translate it into a 409 response.
type ConflictError struct {
	Fields map[string]string
}

func (e *ConflictError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "conflict: " + strings.Join(parts, "; ")
}

// conflict builds a single-field ConflictError.
func conflict(field, message string) *ConflictError {
	return &ConflictError{Fields: map[string]string{field: message}}
}

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). Uniqueness invariants are enforced by the schema, so this
// is the signal that a concurrent or repeated write lost the race.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// notFound wraps ErrNotFound with the entity name for log readability
// while staying matchable with errors.Is.
func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}
