package web

import "golang.org/x/text/language"

// Locales supported by the dashboard.
var supportedLocales = []string{"ru", "en"}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.Russian,
	language.English,
})

// translations holds the dashboard labels per locale.
var translations = map[string]map[string]string{
	"ru": {
		"title":           "Статистика корпуса",
		"speakers":        "Носители",
		"informants":      "Информанты",
		"total_sound_dur": "Общая длительность записей",
		"total_dur":       "Общая длительность расшифровок",
		"inf_dur":         "Длительность расшифровок информантов",
		"total_tok":       "Всего словоупотреблений",
		"inf_tok":         "Словоупотреблений информантов",
		"freq_tokens":     "Частотные слова",
		"speaker":         "Носитель",
		"duration":        "Длительность",
		"tokens":          "Словоупотреблений",
		"missing":         "данные недоступны",
	},
	"en": {
		"title":           "Corpus statistics",
		"speakers":        "Speakers",
		"informants":      "Informants",
		"total_sound_dur": "Total sound duration",
		"total_dur":       "Total transcribed duration",
		"inf_dur":         "Informant transcribed duration",
		"total_tok":       "Total tokens",
		"inf_tok":         "Informant tokens",
		"freq_tokens":     "Frequent tokens",
		"speaker":         "Speaker",
		"duration":        "Duration",
		"tokens":          "Tokens",
		"missing":         "data unavailable",
	},
}

// validLocale reports whether the dashboard knows the locale.
func validLocale(locale string) bool {
	_, ok := translations[locale]
	return ok
}

// matchLocale picks the best supported locale for an Accept-Language
// header, falling back to fallback.
func matchLocale(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supportedLocales[index]
}
