// Package parser converts a Markdown checklist document into a Portrait
// tree. Headings at three consecutive levels become sections, subsections
// and question groups; bullet lines ending in "?" become questions.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/madib-from-georgia/checklistgen/internal/answers"
	"github.com/madib-from-georgia/checklistgen/internal/checklist"
	"github.com/madib-from-georgia/checklistgen/internal/slug"
)

// Parser builds Portrait trees. It keeps no per-document state; each call
// gets its own cursor, so a Parser is safe for concurrent use as long as its
// slug fallback is.
type Parser struct {
	layout Layout
	slugs  *slug.Generator
	log    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLayout fixes the heading layout. Without it the base depth is
// detected per document.
func WithLayout(l Layout) Option {
	return func(p *Parser) { p.layout = l }
}

// WithSlugs sets the generator used for every ID in the tree.
func WithSlugs(g *slug.Generator) Option {
	return func(p *Parser) { p.slugs = g }
}

// WithLogger sets the logger for per-document diagnostics, emitted at debug
// level.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.slugs == nil {
		p.slugs = slug.New(nil)
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	return p
}

// Report describes one conversion beyond the tree itself.
type Report struct {
	BaseDepth int `json:"baseDepth"`
	// FallbackIDs counts IDs that came from the slug fallback because their
	// text left nothing to slug.
	FallbackIDs int `json:"fallbackIds"`
	// Discarded lists question bullets dropped because they sit directly
	// under a subsection that also has question groups.
	Discarded []Discarded `json:"discarded"`
}

// Discarded is a question bullet that did not make it into the tree.
type Discarded struct {
	Line       int    `json:"line"`
	Subsection string `json:"subsection"`
	Question   string `json:"question"`
}

// Parse reads a whole document and converts it.
func (p *Parser) Parse(r io.Reader) (*checklist.Portrait, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.ParseBytes(src), nil
}

// ParseBytes converts src. Malformed input yields a sparse tree, never an
// error.
func (p *Parser) ParseBytes(src []byte) *checklist.Portrait {
	portrait, _ := p.Convert(src)
	return portrait
}

// Convert is ParseBytes plus a Report of what the conversion dropped or
// had to invent.
func (p *Parser) Convert(src []byte) (*checklist.Portrait, Report) {
	layout := p.layout
	if layout.Base == 0 {
		layout = Layout{Base: DetectBaseDepth(src)}
	}
	report := Report{BaseDepth: layout.Base, Discarded: []Discarded{}}
	slugs := p.slugs.Tally(&report.FallbackIDs)
	b := &builder{
		layout:  layout,
		slugs:   slugs,
		answers: answers.NewBuilder(slugs),
		log:     p.log,
		report:  &report,
	}
	portrait := b.portrait(newCursor(splitLines(string(src))))
	return portrait, report
}

// builder holds the state of one conversion.
type builder struct {
	layout  Layout
	slugs   *slug.Generator
	answers *answers.Builder
	log     *slog.Logger
	report  *Report
}

func (b *builder) portrait(c *cursor) *checklist.Portrait {
	out := &checklist.Portrait{Sections: []checklist.Section{}}

	for ; !c.done(); c.next() {
		if level, title, ok := c.heading(); ok && level == 1 {
			out.Title = stripLeadingEmoji(title)
			c.next()
			break
		}
	}
	if out.Title == "" {
		// No root title: scan the whole document for sections anyway.
		c.pos = 0
	}
	out.ID = b.slugs.Make(out.Title)

	for !c.done() {
		if b.layout.Classify(c.line()) == KindSection {
			out.Sections = append(out.Sections, b.section(c))
			continue
		}
		c.next()
	}
	return out
}

// section consumes a section heading and everything up to the next heading
// at section level or above.
func (b *builder) section(c *cursor) checklist.Section {
	_, title, _ := c.heading()
	sec := checklist.Section{
		ID:          b.slugs.Make(title),
		Title:       title,
		Subsections: []checklist.Subsection{},
	}
	c.next()

	for !c.done() {
		if level, _, ok := c.heading(); ok && level <= b.layout.SectionLevel() {
			break
		}
		if b.layout.Classify(c.line()) == KindSubsection {
			sec.Subsections = append(sec.Subsections, b.subsection(c))
			continue
		}
		c.next()
	}
	return sec
}

// subsection collects question groups. Questions placed directly under the
// subsection are kept only when it has no group headings; they then form the
// service group.
func (b *builder) subsection(c *cursor) checklist.Subsection {
	_, title, _ := c.heading()
	sub := checklist.Subsection{
		ID:             b.slugs.Make(title),
		Title:          title,
		QuestionGroups: []checklist.QuestionGroup{},
	}
	c.next()

	var (
		direct = []checklist.Question{}
		lines  []int
	)
	for !c.done() {
		if level, _, ok := c.heading(); ok && level <= b.layout.SubsectionLevel() {
			break
		}
		if b.layout.Classify(c.line()) == KindGroup {
			sub.QuestionGroups = append(sub.QuestionGroups, b.group(c))
			continue
		}
		if _, ok := questionTitle(c.line()); ok {
			lines = append(lines, c.pos+1)
			direct = append(direct, b.question(c))
			continue
		}
		c.next()
	}

	if len(sub.QuestionGroups) == 0 {
		sub.QuestionGroups = append(sub.QuestionGroups, checklist.QuestionGroup{
			ID:        "service-group-" + sub.ID,
			Title:     serviceGroupTitle(sub.Title),
			Questions: direct,
		})
		return sub
	}
	for i, q := range direct {
		b.discard(Discarded{Line: lines[i], Subsection: sub.Title, Question: q.Title})
	}
	return sub
}

func (b *builder) discard(d Discarded) {
	b.report.Discarded = append(b.report.Discarded, d)
	b.log.Debug("question outside any group ignored",
		"line", d.Line,
		"subsection", d.Subsection,
		"question", d.Question,
	)
}

// group collects questions until the next structural heading at group level
// or above. Aside headings ("Примеры", "Почему это важно") do not end the
// group, so bullets under them still count as its questions.
func (b *builder) group(c *cursor) checklist.QuestionGroup {
	_, title, _ := c.heading()
	g := checklist.QuestionGroup{
		ID:        b.slugs.Make(title),
		Title:     title,
		Questions: []checklist.Question{},
	}
	c.next()

	for !c.done() {
		if level, t, ok := c.heading(); ok && level <= b.layout.GroupLevel() {
			if level < b.layout.GroupLevel() || !isAside(t) {
				break
			}
		}
		if _, ok := questionTitle(c.line()); ok {
			g.Questions = append(g.Questions, b.question(c))
			continue
		}
		c.next()
	}
	return g
}

// question consumes a question bullet and looks ahead for its options and
// hint lines. The look-ahead stops at the next question or heading.
func (b *builder) question(c *cursor) checklist.Question {
	title, _ := questionTitle(c.line())
	c.next()

	var (
		opts     answers.Options
		haveOpts bool
		hint     string
		haveHint bool
	)
	for ; !c.done(); c.next() {
		line := c.line()
		if _, _, ok := parseHeading(line); ok {
			break
		}
		if o, ok := answers.ParseOptions(line); ok {
			if !haveOpts {
				opts, haveOpts = o, true
			}
			continue
		}
		if h, ok := answers.ParseHint(line); ok {
			if !haveHint {
				hint, haveHint = h, true
			}
			continue
		}
		if _, ok := questionTitle(line); ok {
			break
		}
	}

	return checklist.Question{
		ID:         b.slugs.Make(title),
		Title:      title,
		Answers:    b.answers.Build(opts.Values, hint),
		AnswerType: opts.AnswerType(),
		Source:     checklist.SourceText,
	}
}

func serviceGroupTitle(subsection string) string {
	return "Вопросы раздела \"" + subsection + "\""
}

// questionTitle strips the list marker from a bullet line and reports
// whether the remaining text is a question.
func questionTitle(line string) (string, bool) {
	if len(line) < 2 || !strings.ContainsRune("-*+", rune(line[0])) || (line[1] != ' ' && line[1] != '\t') {
		return "", false
	}
	title := strings.TrimSpace(line[1:])
	if !strings.HasSuffix(title, "?") {
		return "", false
	}
	return title, true
}

// stripLeadingEmoji removes pictographs, joiners, variation selectors and
// spaces from the start of a title.
func stripLeadingEmoji(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			unicode.Is(unicode.So, r) ||
			unicode.Is(unicode.Sk, r) ||
			r == '\u200d' ||
			(r >= '\ufe00' && r <= '\ufe0f')
	})
}
