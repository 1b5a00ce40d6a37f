package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"` // 1-based source line
}

// Outline lists the document headings in order using goldmark, so
// headings inside fenced code blocks are not reported.
func Outline(src []byte) []Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		line := 0
		if lines := h.Lines(); lines.Len() > 0 {
			line = bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
		}
		out = append(out, Heading{
			Level: h.Level,
			Text:  inlineText(h, src),
			Line:  line,
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// DetectBaseDepth guesses the section level of a document. Level-5
// headings, or level-3 headings with no level-2 ones, mean sections start at
// "###"; anything else is the "##" layout.
func DetectBaseDepth(src []byte) int {
	var counts [7]int
	for _, h := range Outline(src) {
		if h.Level >= 1 && h.Level <= 6 {
			counts[h.Level]++
		}
	}
	if counts[5] > 0 || (counts[2] == 0 && counts[3] > 0) {
		return 3
	}
	return 2
}

// inlineText concatenates the text segments under n.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
