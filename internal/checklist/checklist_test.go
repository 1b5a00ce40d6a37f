package checklist

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePortrait() *Portrait {
	return &Portrait{
		ID:    "portret",
		Title: "Портрет",
		Sections: []Section{{
			ID:    "vneshnost",
			Title: "1. Внешность",
			Subsections: []Subsection{{
				ID:    "rost",
				Title: "1.1 Рост",
				QuestionGroups: []QuestionGroup{{
					ID:    "vospriyatie-rosta",
					Title: "Восприятие роста",
					Questions: []Question{{
						ID:         "kakoy-u-tebya-rost",
						Title:      "Какой у тебя рост?",
						AnswerType: AnswerSingle,
						Source:     SourceText,
						Answers: []Answer{
							{ID: "vysokiy", Value: Gendered{Male: "высокий", Female: "высокая"}},
							{ID: "nizkiy", Value: Gendered{Male: "низкий", Female: "низкая"}},
						},
					}},
				}},
			}},
		}},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(samplePortrait())
	assert.Equal(t, Summary{Sections: 1, Subsections: 1, Groups: 1, Questions: 1, Answers: 2}, s)
}

func TestSummarize_Nil(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummary_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := Summarize(samplePortrait()).WriteTo(&buf)
	require.NoError(t, err)
	want := "Sections: 1\nSubsections: 1\nQuestion groups: 1\nQuestions: 1\nAnswers: 2\n"
	assert.Equal(t, want, buf.String())
}

func TestPortrait_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(samplePortrait())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	sec := raw["sections"].([]any)[0].(map[string]any)
	sub := sec["subsections"].([]any)[0].(map[string]any)
	group := sub["questionGroups"].([]any)[0].(map[string]any)
	q := group["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, "single", q["answerType"])
	assert.Equal(t, "text", q["source"])

	a := q["answers"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "value", "exportedValue", "hint", "exercise"} {
		assert.Contains(t, a, key)
	}
	assert.Equal(t, "высокая", a["value"].(map[string]any)["female"])
}

func TestDedupeIDs(t *testing.T) {
	p := &Portrait{
		Sections: []Section{
			{ID: "a", Subsections: []Subsection{
				{ID: "x", QuestionGroups: []QuestionGroup{{ID: "g"}, {ID: "g"}, {ID: "g"}}},
				{ID: "x"},
			}},
			{ID: "a"},
			{ID: "a-2"},
		},
	}
	DedupeIDs(p)

	assert.Equal(t, "a", p.Sections[0].ID)
	assert.Equal(t, "a-2", p.Sections[1].ID)
	assert.Equal(t, "a-2-2", p.Sections[2].ID)
	assert.Equal(t, "x", p.Sections[0].Subsections[0].ID)
	assert.Equal(t, "x-2", p.Sections[0].Subsections[1].ID)

	groups := p.Sections[0].Subsections[0].QuestionGroups
	assert.Equal(t, []string{"g", "g-2", "g-3"}, []string{groups[0].ID, groups[1].ID, groups[2].ID})
}

func TestDedupeIDs_ScopeIsSiblings(t *testing.T) {
	// Equal IDs under different parents are left alone.
	p := &Portrait{
		Sections: []Section{
			{ID: "a", Subsections: []Subsection{{ID: "same"}}},
			{ID: "b", Subsections: []Subsection{{ID: "same"}}},
		},
	}
	DedupeIDs(p)
	assert.Equal(t, "same", p.Sections[0].Subsections[0].ID)
	assert.Equal(t, "same", p.Sections[1].Subsections[0].ID)
}
