package entity

import "strings"

// Shape of a generated quiz.
const (
	QuestionsPerQuiz   = 10
	ChoicesPerQuestion = 4
)

type Choice struct {
	Text    string   `json:"text" validate:"required"`
	NenType Category `json:"nen_type" validate:"required,nen_category"`
}

type Question struct {
	QuestionText string   `json:"question_text" validate:"required"`
	Choices      []Choice `json:"choices" validate:"len=4,dive"`
}

// Quiz is a generated question set. Seed and Themes record how the generation
// request was varied so the call can be audited.
type Quiz struct {
	Questions []Question `json:"questions" validate:"len=10,dive"`
	Seed      int64      `json:"seed"`
	Themes    []string   `json:"themes"`
}

// ThemeSelection is the ordered theme subset drawn for one request, together
// with the seed that produced it.
type ThemeSelection struct {
	Seed   int64    `json:"seed"`
	Themes []string `json:"themes"`
}

// Hint joins the selected themes into a single phrase.
func (s ThemeSelection) Hint() string {
	return strings.Join(s.Themes, "、")
}

// QuizRequest is what the external generator receives for a quiz.
type QuizRequest struct {
	Seed   int64
	Themes ThemeSelection
}
