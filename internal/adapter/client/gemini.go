package client

import (
	"context"
	"encoding/json"
	"fmt"
	"nenmatch/internal/domain/entity"

	"google.golang.org/genai"
)

// contentGenerator is the slice of *genai.Models the clients use.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGenAIClient builds a genai client. A non-empty projectID selects Vertex
// AI; otherwise the Gemini API is used with apiKey.
func NewGenAIClient(ctx context.Context, apiKey, projectID, location string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if projectID != "" {
		cfg = &genai.ClientConfig{
			Project:  projectID,
			Location: location,
			Backend:  genai.BackendVertexAI,
		}
	}
	return genai.NewClient(ctx, cfg)
}

// modelSettings is one model with its sampling temperature.
type modelSettings struct {
	model       string
	temperature float32
}

// generateJSON sends one structured-output request and decodes the reply
// into out. It reports false when the model returned no text at all.
func generateJSON(ctx context.Context, gen contentGenerator, ms modelSettings, system, user string, schema *genai.Schema, seed int64, out any) (bool, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(ms.temperature),
		Seed:              genai.Ptr(int32(seed)),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}

	resp, err := gen.GenerateContent(ctx, ms.model, genai.Text(user), config)
	if err != nil {
		return false, err
	}
	if resp == nil {
		return false, nil
	}
	text := resp.Text()
	if text == "" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return false, fmt.Errorf("%w: malformed JSON from %s: %v", entity.ErrNullResult, ms.model, err)
	}
	return true, nil
}

func categoryEnum() []string {
	out := make([]string, len(entity.Categories))
	for i, c := range entity.Categories {
		out[i] = string(c)
	}
	return out
}
