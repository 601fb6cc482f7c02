package search

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/adapterkit/mcp-adapters/internal/config"
)

// OpenAISearcher runs searches through an OpenAI-compatible chat
// completion API whose model has web access.
type OpenAISearcher struct {
	client openai.Client
	model  string
}

// NewOpenAISearcher creates a searcher from the search configuration.
func NewOpenAISearcher(cfg config.SearchConfig) *OpenAISearcher {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAISearcher{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Search asks the backend for up to maxResults web results on query.
func (s *OpenAISearcher) Search(ctx context.Context, query string, maxResults int) (string, error) {
	prompt := fmt.Sprintf(
		"Search the web and report the %d most relevant results for the following query. "+
			"For each result give the title, the source and a short summary.\n\nQuery: %s",
		maxResults, query)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("search returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
