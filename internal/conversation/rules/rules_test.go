package rules

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinuation(t *testing.T) {
	positives := []string{
		"дай еще",
		"Ещё 15 компаний",
		"покажи следующие 10",
		"больше",
		"продолжи",
		"give me more",
		"Find another 15 companies",
		"next 5",
		"тағы 10 компания",
	}
	for _, in := range positives {
		assert.True(t, Continuation.Any(Normalize(in)), "expected continuation: %q", in)
	}

	negatives := []string{
		"Найди 15 IT компаний в Almaty",
		"привет",
		"what is the weather",
		"moreover the companies", // "more" inside a word
		"Ещенко", // not the standalone word
	}
	for _, in := range negatives {
		assert.False(t, Continuation.Any(Normalize(in)), "unexpected continuation: %q", in)
	}
}

func TestSearchMarkers(t *testing.T) {
	assert.True(t, SearchMarkers.Any(Normalize("Найди компании")))
	assert.True(t, SearchMarkers.Any(Normalize("find companies")))
	assert.True(t, SearchMarkers.Any(Normalize("покажи фирмы")))
	assert.False(t, SearchMarkers.Any(Normalize("привет как дела")))
}

func TestGazetteer(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Найди компании в Алматы", "Алматы"},
		{"компании в Астане", "Астана"},
		{"фирмы из Караганды", "Караганда"},
		{"companies in Almaty", "Алматы"},
		{"companies in almaty region", "Алматинская область"},
		{"строительные компании в Алматинской области", "Алматинская область"},
		{"в Шымкенте", "Шымкент"},
		{"Нур-Султан", "Нур-Султан"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Gazetteer.First(Normalize(tt.input))
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := Gazetteer.First(Normalize("найди компании"))
	assert.False(t, ok)
}

func TestActivities(t *testing.T) {
	assert.Equal(t, []string{"IT"}, Activities.All(Normalize("Найди 15 IT компаний")))
	assert.Equal(t, []string{"строительство", "торговля"}, Activities.All(Normalize("строительные и торговые фирмы")))
	assert.Empty(t, Activities.All(Normalize("компании в Алматы")))
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		input string
		n     int
		ok    bool
	}{
		{"найди 15 компаний", 15, true},
		{"еще 20", 20, true},
		{"дай 5, потом 7", 5, true},
		{"1000 компаний", 1000, true},
		{"найди 99999999999999999999999 компаний", math.MaxInt, true},
		{"в 2024 году", 0, false},
		{"налоги за 2023 г. и 30 компаний", 30, true},
		{"0 компаний", 0, false},
		{"0 или 5", 5, true},
		{"без числа", 0, false},
	}
	for _, tt := range tests {
		n, ok := Quantity(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.n, n, tt.input)
	}
}

func TestNormalize_CapsInput(t *testing.T) {
	long := strings.Repeat("а", MaxInputRunes*2)
	assert.Equal(t, MaxInputRunes, len([]rune(Normalize(long))))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, LanguageRussian, DetectLanguage("Найди компании"))
	assert.Equal(t, LanguageKazakh, DetectLanguage("Алматыдағы компанияларды тап"))
	assert.Equal(t, LanguageEnglish, DetectLanguage("find companies"))
}
