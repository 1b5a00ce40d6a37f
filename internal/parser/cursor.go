package parser

import "strings"

// cursor is the read position over a document's lines. One cursor belongs to
// one conversion.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(lines []string) *cursor {
	return &cursor{lines: lines}
}

func (c *cursor) done() bool { return c.pos >= len(c.lines) }

// line returns the current line with surrounding whitespace removed.
func (c *cursor) line() string {
	if c.done() {
		return ""
	}
	return strings.TrimSpace(c.lines[c.pos])
}

func (c *cursor) next() { c.pos++ }

// heading returns the level and title of the current line if it is a heading.
func (c *cursor) heading() (int, string, bool) {
	return parseHeading(c.line())
}

// splitLines is the line loader: it splits on "\n" and drops a trailing "\r".
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
