// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lessonplan/pkg/plan/types"
)

type openAI struct {
	endpoint    string
	key         string
	model       string
	temperature float32
	httpc       *http.Client
}

// NewOpenAI targets any OpenAI-compatible /v1/chat/completions endpoint that
// supports the json_schema response format.
func NewOpenAI(endpoint, key, model string, temperature float32) Client {
	return &openAI{
		endpoint:    strings.TrimRight(endpoint, "/"),
		key:         key,
		model:       model,
		temperature: temperature,
		httpc:       &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *openAI) Model() string { return c.model }

func (c *openAI) GenerateJSON(ctx context.Context, prompt string, schema *types.Schema) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": "Você extrai planos de aula estruturados. Responda SOMENTE com JSON válido."},
			{"role": "user", "content": prompt},
		},
		"temperature": c.temperature,
		"response_format": map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "lesson_plan",
				"strict": true,
				"schema": toJSONSchema(schema),
			},
		},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode openai envelope: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// toJSONSchema renders the strict-mode JSON Schema: every object closed and
// every property required.
func toJSONSchema(s *types.Schema) map[string]any {
	if s == nil {
		return map[string]any{"type": "object"}
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	switch s.Type {
	case types.KindObject:
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = toJSONSchema(p)
		}
		out["properties"] = props
		out["required"] = s.Required()
		out["additionalProperties"] = false
	case types.KindArray:
		out["items"] = toJSONSchema(s.Items)
	}
	return out
}
