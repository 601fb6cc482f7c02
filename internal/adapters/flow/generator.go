package flow

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/adapterkit/mcp-adapters/internal/config"
)

// Generator produces the source code of a new flow component from a
// natural language description.
type Generator interface {
	Generate(ctx context.Context, name, description string) (string, error)
}

// OpenAIGenerator is a Generator backed by a chat completion API.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator from the search configuration,
// which carries the API credentials and model.
func NewOpenAIGenerator(cfg config.SearchConfig) *OpenAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Generate asks the backend for the Python source of a custom
// component.
func (g *OpenAIGenerator) Generate(ctx context.Context, name, description string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a custom Langflow component in Python named %s. "+
			"It must subclass Component and implement the described behavior. "+
			"Answer with only the code, no explanations.\n\nBehavior: %s",
		name, description)

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("component generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("component generation returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
