package rules

import "unicode"

// Language is a reply language.
type Language string

const (
	LanguageRussian Language = "ru"
	LanguageKazakh  Language = "kk"
	LanguageEnglish Language = "en"
)

// kazakhLetters are Cyrillic letters used in Kazakh but not in Russian.
const kazakhLetters = "әғқңөұүһіӘҒҚҢӨҰҮҺІ"

// DetectLanguage guesses the language of text: any Kazakh-specific letter
// means Kazakh, otherwise any Cyrillic letter means Russian, otherwise English.
func DetectLanguage(text string) Language {
	cyrillic := false
	for _, r := range text {
		for _, k := range kazakhLetters {
			if r == k {
				return LanguageKazakh
			}
		}
		if unicode.Is(unicode.Cyrillic, r) {
			cyrillic = true
		}
	}
	if cyrillic {
		return LanguageRussian
	}
	return LanguageEnglish
}
