package client

import (
	"context"
	"nenmatch/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiDiagnoser asks Gemini for a primary category, a specialist score and
// a short reason.
type GeminiDiagnoser struct {
	models   contentGenerator
	settings modelSettings
}

func NewGeminiDiagnoser(c *genai.Client, model string, temperature float32) *GeminiDiagnoser {
	return &GeminiDiagnoser{
		models:   c.Models,
		settings: modelSettings{model: model, temperature: temperature},
	}
}

func (d *GeminiDiagnoser) Diagnose(ctx context.Context, req entity.DiagnosisRequest) (*entity.PrimaryDiagnosis, error) {
	system, user, err := diagnosisPrompts(req.Input)
	if err != nil {
		return nil, err
	}

	var result entity.PrimaryDiagnosis
	ok, err := generateJSON(ctx, d.models, d.settings, system, user, diagnosisSchema(), req.Seed, &result)
	if err != nil || !ok {
		return nil, err
	}
	return &result, nil
}

func diagnosisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"primary": {
				Type:        genai.TypeString,
				Enum:        categoryEnum(),
				Description: "最も適性のある念系統",
			},
			"specialist_score": {
				Type:        genai.TypeInteger,
				Minimum:     genai.Ptr(0.0),
				Maximum:     genai.Ptr(100.0),
				Description: "特質系の適性（0-100）",
			},
			"reason": {Type: genai.TypeString, Description: "診断理由と性格分析"},
		},
		Required: []string{"primary", "specialist_score", "reason"},
	}
}
