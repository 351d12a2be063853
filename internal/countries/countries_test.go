package countries

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnown(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"exact", "Ukraine", true},
		{"lowercase", "ukraine", true},
		{"padded", "  united kingdom  ", true},
		{"uppercase", "FRANCE", true},
		{"unknown", "Atlantis", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Known(tt.value))
		})
	}
}

func TestAllSortedCopy(t *testing.T) {
	all := All()
	assert.NotEmpty(t, all)
	assert.True(t, sort.StringsAreSorted(all))

	// Mutating the returned slice must not affect package state.
	first := all[0]
	all[0] = "Zzz"
	assert.Equal(t, first, All()[0])
	assert.True(t, Known(first))
}
