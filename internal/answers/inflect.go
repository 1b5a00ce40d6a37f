package answers

import "strings"

// feminine lists forms the suffix rules get wrong: soft stems, fleeting
// vowels and the like.
var feminine = map[string]string{
	"высокий":     "высокая",
	"средний":     "средняя",
	"синий":       "синяя",
	"крайний":     "крайняя",
	"доволен":     "довольна",
	"недоволен":   "недовольна",
	"уверен":      "уверена",
	"неуверен":    "неуверена",
	"не уверен":   "не уверена",
	"смущен":      "смущена",
	"смущён":      "смущена",
	"спокоен":     "спокойна",
	"силен":       "сильна",
	"силён":       "сильна",
	"худощав":     "худощава",
	"вынослив":    "вынослива",
	"подтянут":    "подтянута",
	"равнодушен":  "равнодушна",
	"безразличен": "безразлична",
}

type suffixRule struct {
	from, to string
}

// Order matters: the first matching rule wins.
var suffixRules = []suffixRule{
	{"ый", "ая"},
	{"ий", "ая"},
	{"ой", "ая"},
	{"ен", "на"},
}

// Feminine returns the feminine form of a masculine phrase.
func Feminine(s string) string {
	if f, ok := feminine[s]; ok {
		return f
	}
	for _, r := range suffixRules {
		if strings.HasSuffix(s, r.from) {
			return strings.TrimSuffix(s, r.from) + r.to
		}
	}
	return s
}
