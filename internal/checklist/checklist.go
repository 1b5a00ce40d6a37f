// Package checklist defines the Portrait tree produced by the converter.
package checklist

// AnswerType selects how many options a respondent may pick.
type AnswerType string

const (
	AnswerSingle   AnswerType = "single"
	AnswerMultiple AnswerType = "multiple"
)

// SourceText marks questions converted from a text document.
const SourceText = "text"

// Portrait is the root of a converted checklist document.
type Portrait struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is a top-level structural heading.
type Section struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection always holds at least one question group.
type Subsection struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	QuestionGroups []QuestionGroup `json:"questionGroups"`
}

type QuestionGroup struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Answers    []Answer   `json:"answers"`
	AnswerType AnswerType `json:"answerType"`
	Source     string     `json:"source"`
}

// Gendered holds the masculine and feminine rendering of a phrase.
type Gendered struct {
	Male   string `json:"male"`
	Female string `json:"female"`
}

type Answer struct {
	ID            string   `json:"id"`
	Value         Gendered `json:"value"`
	ExportedValue Gendered `json:"exportedValue"`
	Hint          string   `json:"hint"`
	Exercise      string   `json:"exercise"`
}
