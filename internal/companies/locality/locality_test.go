package locality

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"almaty", "Алматы"},
		{"  Almaty ", "Алматы"},
		{"ASTANA", "Астана"},
		{"Nur-Sultan", "Нур-Султан"},
		{"almaty region", "Алматинская область"},
		{"companies in almaty region please", "Алматинская область"},
		{"Алматы", "Алматы"},
		{"Unknownville", "Unknownville"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Translate(tt.input))
		})
	}
}

func TestTranslate_DoesNotMatchInsideWords(t *testing.T) {
	// "oral" is an alias; "moral" must stay untouched.
	assert.Equal(t, "moral", Translate("moral"))
}

func TestAliases_LongestFirst(t *testing.T) {
	all := Aliases()
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, len(all[i-1].Latin), len(all[i].Latin))
	}
}

func TestNames_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names() {
		assert.False(t, seen[n], "duplicate name %q", n)
		seen[n] = true
	}
	assert.Contains(t, Names(), "Алматы")
}

func TestLatin(t *testing.T) {
	latin := Latin()
	assert.Len(t, latin, len(Aliases()))
	assert.True(t, sort.StringsAreSorted(latin))
	assert.Contains(t, latin, "almaty")
}

func TestVariations(t *testing.T) {
	assert.Equal(t, []string{"Almaty", "almaty", "Алматы", "алматы"}, Variations("almaty"))
	assert.Equal(t, []string{"Unknownville", "unknownville"}, Variations("Unknownville"))
	assert.Empty(t, Variations("  "))
}
