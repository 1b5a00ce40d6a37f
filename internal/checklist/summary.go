package checklist

import (
	"fmt"
	"io"
)

// Summary counts the nodes of a Portrait at every level.
type Summary struct {
	Sections    int `json:"sections"`
	Subsections int `json:"subsections"`
	Groups      int `json:"questionGroups"`
	Questions   int `json:"questions"`
	Answers     int `json:"answers"`
}

// Summarize walks the tree and counts its nodes.
func Summarize(p *Portrait) Summary {
	var s Summary
	if p == nil {
		return s
	}
	s.Sections = len(p.Sections)
	for _, sec := range p.Sections {
		s.Subsections += len(sec.Subsections)
		for _, sub := range sec.Subsections {
			s.Groups += len(sub.QuestionGroups)
			for _, g := range sub.QuestionGroups {
				s.Questions += len(g.Questions)
				for _, q := range g.Questions {
					s.Answers += len(q.Answers)
				}
			}
		}
	}
	return s
}

// WriteTo prints the summary as one "Label: count" line per level.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	rows := []struct {
		label string
		n     int
	}{
		{"Sections", s.Sections},
		{"Subsections", s.Subsections},
		{"Question groups", s.Groups},
		{"Questions", s.Questions},
		{"Answers", s.Answers},
	}
	var total int64
	for _, r := range rows {
		n, err := fmt.Fprintf(w, "%s: %d\n", r.label, r.n)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
