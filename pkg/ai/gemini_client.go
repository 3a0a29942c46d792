// pkg/ai/gemini_client.go

package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"lessonplan/pkg/apperr"
	"lessonplan/pkg/plan/types"
)

type gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini talks to the Gemini API through the official SDK.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32) (Client, error) {
	return newGemini(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}, model, temperature)
}

func newGemini(ctx context.Context, cc *genai.ClientConfig, model string, temperature float32) (Client, error) {
	if cc.APIKey == "" {
		return nil, apperr.Wrap(apperr.ErrConfiguration, "gemini", "API key is required", nil)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrConfiguration, "gemini", "create client", err)
	}
	return &gemini{client: client, model: model, temperature: temperature}, nil
}

func (g *gemini) Model() string { return g.model }

func (g *gemini) GenerateJSON(ctx context.Context, prompt string, schema *types.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenAISchema(schema),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}

func toGenAISchema(s *types.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Description: s.Description}
	switch s.Type {
	case types.KindObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenAISchema(p)
		}
		out.PropertyOrdering = append([]string(nil), s.Order...)
		out.Required = s.Required()
	case types.KindArray:
		out.Type = genai.TypeArray
		out.Items = toGenAISchema(s.Items)
	case types.KindInteger:
		out.Type = genai.TypeInteger
	default:
		out.Type = genai.TypeString
	}
	return out
}
