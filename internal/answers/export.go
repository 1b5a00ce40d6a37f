package answers

import (
	"strings"
	"unicode"
)

// CustomOption is the free-text placeholder; it exports as an empty sentence.
const CustomOption = "свой вариант"

// template keywords match the start of a word, so "ног" hits "ноги" but not
// "много".
type template struct {
	name     string
	keywords []string
	format   func(adapted string) string
}

// templates are tried in order; the generic sentence is the fallback.
var templates = []template{
	{
		name:     "height",
		keywords: []string{"высок", "низк", "средн"},
		format:   func(a string) string { return "Я " + a + " роста" },
	},
	{
		name:     "height-attitude",
		keywords: []string{"горж", "стесня", "комплекс", "доволен", "нравится"},
		format:   func(a string) string { return "Я " + a + " своим ростом" },
	},
	{
		name:     "legs",
		keywords: []string{"ног"},
		format:   func(a string) string { return "У меня " + a + " относительно туловища" },
	},
	{
		name:     "somatotype",
		keywords: []string{"эктоморф", "мезоморф", "эндоморф", "телосложен", "фигур"},
		format:   func(a string) string { return "По типу телосложения я " + a },
	},
	{
		name:     "fitness",
		keywords: []string{"спорт", "трениров", "форм", "подтян"},
		format:   func(a string) string { return "Я " + a },
	},
	{
		name:     "stamina",
		keywords: []string{"вынослив", "устаю", "энерг"},
		format:   func(a string) string { return "Что касается выносливости, я " + a },
	},
}

func generic(a string) string { return "У меня " + a }

// templateFor picks the first template with a keyword starting one of the
// words of option, or nil for the generic sentence.
func templateFor(option string) *template {
	words := strings.FieldsFunc(strings.ToLower(option), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for i := range templates {
		if startsAny(words, templates[i].keywords) {
			return &templates[i]
		}
	}
	return nil
}

// Export builds the sentence used in exported reports. option selects the
// template; adapted is the gender-specific form placed into it.
func Export(option, adapted string) string {
	if strings.EqualFold(strings.TrimSpace(option), CustomOption) {
		return ""
	}
	if t := templateFor(option); t != nil {
		return t.format(adapted)
	}
	return generic(adapted)
}

func startsAny(words, prefixes []string) bool {
	for _, w := range words {
		for _, p := range prefixes {
			if strings.HasPrefix(w, p) {
				return true
			}
		}
	}
	return false
}
