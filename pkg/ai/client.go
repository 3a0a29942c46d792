// pkg/ai/client.go

package ai

import (
	"context"

	"lessonplan/config"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/plan/types"
)

// Client sends one prompt with its output schema to a completion service and
// returns the raw text, which should be JSON but is not trusted to be.
// Implementations do not retry.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, schema *types.Schema) (string, error)
	Model() string
}

// New selects the backend named by cfg.LLMProvider.
func New(ctx context.Context, cfg config.AppConfig) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTemperature)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTemperature), nil
	case config.ProviderMock:
		return NewMock(), nil
	}
	return nil, apperr.Wrap(apperr.ErrConfiguration, "ai", "unknown provider "+cfg.LLMProvider, nil)
}
