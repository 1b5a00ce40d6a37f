// Package slug derives URL-safe identifiers from Cyrillic headings, questions
// and answer options.
package slug

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen is the maximum length of a generated slug.
const MaxLen = 50

var (
	outlinePrefix = regexp.MustCompile(`^\d+(\.\d+)*\.?`)
	nonWord       = regexp.MustCompile(`[^\w\s-]`)
	whitespace    = regexp.MustCompile(`\s+`)
	hyphens       = regexp.MustCompile(`-+`)
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// FallbackFunc returns an identifier for text that reduces to an empty slug.
type FallbackFunc func() string

// Generator turns display text into slugs. The zero value uses
// DefaultFallback.
type Generator struct {
	fallback FallbackFunc
	tally    *int
}

// New returns a Generator using fallback for degenerate input. A nil
// fallback selects DefaultFallback.
func New(fallback FallbackFunc) *Generator {
	return &Generator{fallback: fallback}
}

// Tally returns a copy of g that adds one to *n each time it falls back.
// The copy is meant for a single goroutine.
func (g *Generator) Tally(n *int) *Generator {
	t := &Generator{tally: n}
	if g != nil {
		t.fallback = g.fallback
	}
	return t
}

var std = New(nil)

// Make slugs text with the default generator.
func Make(text string) string {
	return std.Make(text)
}

// Make lowercases text, strips a leading outline number such as "3.2.1 ",
// transliterates Cyrillic, folds the rest to ASCII and joins words with
// hyphens. Text that leaves nothing behind gets a fallback ID.
func (g *Generator) Make(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = stripOutline(s)
	s = Transliterate(s)
	s = foldASCII(s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	if s == "" {
		return g.fallbackID()
	}
	return s
}

// stripOutline drops a leading "3.2.1 " or "3." number. Digits glued to
// other characters, as in "1-vopros" or "5rost", stay, which keeps Make
// idempotent on its own output.
func stripOutline(s string) string {
	loc := outlinePrefix.FindStringIndex(s)
	if loc == nil {
		return s
	}
	prefix, rest := s[:loc[1]], s[loc[1]:]
	next, _ := utf8.DecodeRuneInString(rest)
	switch {
	case strings.HasSuffix(prefix, "."),
		unicode.IsSpace(next),
		rest == "" && strings.Contains(prefix, "."):
		return strings.TrimLeftFunc(rest, unicode.IsSpace)
	}
	return s
}

func (g *Generator) fallbackID() string {
	if g != nil && g.tally != nil {
		*g.tally++
	}
	if g == nil || g.fallback == nil {
		return DefaultFallback()
	}
	return g.fallback()
}

// Transliterate maps lowercase Cyrillic letters to Latin. Other runes pass
// through unchanged.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if lat, ok := cyrillic[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// foldASCII drops combining marks so that "é" becomes "e". It must run after
// Transliterate: NFD would split "й" into "и" plus a breve.
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DefaultFallback returns "generated-id-<unix millis>-<random>".
func DefaultFallback() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("generated-id-%d-%s", time.Now().UnixMilli(), suffix)
}

// Sequence returns a deterministic fallback yielding prefix-1, prefix-2, ...
func Sequence(prefix string) FallbackFunc {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
