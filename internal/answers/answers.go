// Package answers turns an options line and a hint line into Answer records
// with masculine and feminine renderings.
package answers

import (
	"regexp"
	"strings"

	"github.com/madib-from-georgia/checklistgen/internal/checklist"
	"github.com/madib-from-georgia/checklistgen/internal/slug"
)

var (
	optionsLine = regexp.MustCompile(`^[-*+]\s*Варианты\s*\(([^)]*)\)\s*:\s*(.*)$`)
	hintLine    = regexp.MustCompile(`^[-*+]\s*Подсказка\s*:\s*(.*)$`)
)

const singleMarker = "один ответ"

// Options is a parsed "Варианты (<meta>): a, b, c" line.
type Options struct {
	Meta   string
	Values []string
}

// AnswerType reports single choice when the meta mentions "один ответ".
func (o Options) AnswerType() checklist.AnswerType {
	if strings.Contains(strings.ToLower(o.Meta), singleMarker) {
		return checklist.AnswerSingle
	}
	return checklist.AnswerMultiple
}

// ParseOptions parses a trimmed options line.
func ParseOptions(line string) (Options, bool) {
	m := optionsLine.FindStringSubmatch(line)
	if m == nil {
		return Options{}, false
	}
	opts := Options{Meta: strings.TrimSpace(m[1])}
	for _, v := range strings.Split(m[2], ",") {
		if v = strings.TrimSpace(v); v != "" {
			opts.Values = append(opts.Values, v)
		}
	}
	return opts, true
}

// ParseHint parses a trimmed "Подсказка: ..." line.
func ParseHint(line string) (string, bool) {
	m := hintLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Builder synthesizes answers. Its slug generator names each option.
type Builder struct {
	slugs *slug.Generator
}

func NewBuilder(slugs *slug.Generator) *Builder {
	if slugs == nil {
		slugs = slug.New(nil)
	}
	return &Builder{slugs: slugs}
}

// Build returns one answer per option in input order. Every answer shares
// the same hint.
func (b *Builder) Build(options []string, hint string) []checklist.Answer {
	out := make([]checklist.Answer, 0, len(options))
	for _, opt := range options {
		female := Feminine(opt)
		out = append(out, checklist.Answer{
			ID:    b.slugs.Make(opt),
			Value: checklist.Gendered{Male: opt, Female: female},
			ExportedValue: checklist.Gendered{
				Male:   Export(opt, opt),
				Female: Export(opt, female),
			},
			Hint: hint,
		})
	}
	return out
}
