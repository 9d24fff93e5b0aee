package client

import (
	"context"
	"nenmatch/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiQuizGenerator produces quizzes through Gemini structured output.
type GeminiQuizGenerator struct {
	models   contentGenerator
	settings modelSettings
}

func NewGeminiQuizGenerator(c *genai.Client, model string, temperature float32) *GeminiQuizGenerator {
	return &GeminiQuizGenerator{
		models:   c.Models,
		settings: modelSettings{model: model, temperature: temperature},
	}
}

func (g *GeminiQuizGenerator) GenerateQuiz(ctx context.Context, req entity.QuizRequest) (*entity.Quiz, error) {
	system, err := quizSystemPrompt(req)
	if err != nil {
		return nil, err
	}

	var quiz entity.Quiz
	ok, err := generateJSON(ctx, g.models, g.settings, system, quizUserPrompt, quizSchema(), req.Seed, &quiz)
	if err != nil || !ok {
		return nil, err
	}
	return &quiz, nil
}

func quizSchema() *genai.Schema {
	choice := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":     {Type: genai.TypeString, Description: "選択肢のテキスト"},
			"nen_type": {Type: genai.TypeString, Enum: categoryEnum(), Description: "この選択肢が示す念系統"},
		},
		Required: []string{"text", "nen_type"},
	}
	question := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question_text": {Type: genai.TypeString},
			"choices": {
				Type:     genai.TypeArray,
				Items:    choice,
				MinItems: genai.Ptr[int64](entity.ChoicesPerQuestion),
				MaxItems: genai.Ptr[int64](entity.ChoicesPerQuestion),
			},
		},
		Required: []string{"question_text", "choices"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type:     genai.TypeArray,
				Items:    question,
				MinItems: genai.Ptr[int64](entity.QuestionsPerQuiz),
				MaxItems: genai.Ptr[int64](entity.QuestionsPerQuiz),
			},
		},
		Required: []string{"questions"},
	}
}
