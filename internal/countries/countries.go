// Package countries holds the reference list of country names a Country
// entity may be created with. The list is embedded into the binary and
// loaded once at process start into read-only package state, so lookups
// never touch the database or the filesystem at request time.
package countries

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/avialine/airport-api/internal/validator"
)

//go:embed countries.txt
var rawList string

var (
	byName  map[string]struct{}
	ordered []string
)

func init() {
	byName = make(map[string]struct{})
	for _, line := range strings.Split(rawList, "\n") {
		name := validator.NormalizeName(line)
		if name == "" {
			continue
		}
		if _, dup := byName[name]; dup {
			continue
		}
		byName[name] = struct{}{}
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
}

// Known reports whether name, after normalization, is present in the
// reference list.
func Known(name string) bool {
	_, ok := byName[validator.NormalizeName(name)]
	return ok
}

// All returns the full reference list in sorted order. The returned slice
// is a copy; callers may not mutate package state through it.
func All() []string {
	out := make([]string, len(ordered))
	copy(out, ordered)
	return out
}
