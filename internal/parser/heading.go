package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the structural role of a line.
type Kind int

const (
	KindNone Kind = iota
	KindSection
	KindSubsection
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindSubsection:
		return "subsection"
	case KindGroup:
		return "group"
	default:
		return "none"
	}
}

// Supported base depths. Documents put sections at "##" or "###".
const (
	MinBaseDepth = 2
	MaxBaseDepth = 4
)

// Layout maps heading levels to structural roles relative to Base:
// sections sit at Base, subsections at Base+1, question groups at Base+2.
type Layout struct {
	Base int
}

// NewLayout validates base and returns its Layout.
func NewLayout(base int) (Layout, error) {
	if base < MinBaseDepth || base > MaxBaseDepth {
		return Layout{}, fmt.Errorf("base depth %d out of range [%d, %d]", base, MinBaseDepth, MaxBaseDepth)
	}
	return Layout{Base: base}, nil
}

func (l Layout) SectionLevel() int    { return l.Base }
func (l Layout) SubsectionLevel() int { return l.Base + 1 }
func (l Layout) GroupLevel() int      { return l.Base + 2 }

var (
	outlineNumber = regexp.MustCompile(`^\d+(\.\d+)*\.?\s*`)
	purposeTitle  = regexp.MustCompile(`(?i)^(цель|назначение)([^\p{L}]|$)|^цели$`)
	asideTitle    = regexp.MustCompile(`(?i)(^|[^\p{L}])(примеры?|почему это важно)([^\p{L}]|$)`)
)

// isPurpose reports the reserved "purpose of the portrait" heading, which is
// never a section. Only a title that starts with "Цель" or "Назначение", or is
// just "Цели", qualifies; "Цели и мечты" is an ordinary section.
func isPurpose(title string) bool {
	t := outlineNumber.ReplaceAllString(stripLeadingEmoji(title), "")
	return purposeTitle.MatchString(strings.TrimSpace(t))
}

// isAside reports an "examples" or "why this matters" heading. Asides never
// become question groups.
func isAside(title string) bool { return asideTitle.MatchString(title) }

// Classify returns the role of a trimmed line under l.
func (l Layout) Classify(line string) Kind {
	level, title, ok := parseHeading(line)
	if !ok {
		return KindNone
	}
	switch level {
	case l.SectionLevel():
		if !isPurpose(title) {
			return KindSection
		}
	case l.SubsectionLevel():
		return KindSubsection
	case l.GroupLevel():
		if !isAside(title) {
			return KindGroup
		}
	}
	return KindNone
}

// parseHeading splits an ATX heading into its level and text. The marker
// must be followed by whitespace or end the line, so "#tag" is not a heading.
func parseHeading(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}
