package checklist

import "strconv"

// DedupeIDs rewrites repeated IDs within each sibling list so that every
// sibling carries a distinct ID. The first occurrence keeps its ID; later ones
// get "-2", "-3", ... in document order. The tree is modified in place.
func DedupeIDs(p *Portrait) {
	if p == nil {
		return
	}
	secIDs := newIDSet()
	for i := range p.Sections {
		sec := &p.Sections[i]
		sec.ID = secIDs.claim(sec.ID)

		subIDs := newIDSet()
		for j := range sec.Subsections {
			sub := &sec.Subsections[j]
			sub.ID = subIDs.claim(sub.ID)

			groupIDs := newIDSet()
			for k := range sub.QuestionGroups {
				g := &sub.QuestionGroups[k]
				g.ID = groupIDs.claim(g.ID)

				questionIDs := newIDSet()
				for l := range g.Questions {
					q := &g.Questions[l]
					q.ID = questionIDs.claim(q.ID)

					answerIDs := newIDSet()
					for m := range q.Answers {
						q.Answers[m].ID = answerIDs.claim(q.Answers[m].ID)
					}
				}
			}
		}
	}
}

type idSet map[string]bool

func newIDSet() idSet {
	return make(idSet)
}

func (s idSet) claim(id string) string {
	if !s[id] {
		s[id] = true
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if !s[candidate] {
			s[candidate] = true
			return candidate
		}
	}
}
