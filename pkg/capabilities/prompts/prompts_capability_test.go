package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

func textPrompt(name string) *PromptWithRenderer {
	return NewPrompt(name, "test prompt",
		[]protocol.PromptArgument{{Name: "style", Description: "rendering style"}},
		func(ctx context.Context, args map[string]string) (*protocol.PromptsGetResult, error) {
			text := "rendered " + name
			if style := args["style"]; style != "" {
				text += " (" + style + ")"
			}
			return &protocol.PromptsGetResult{
				Messages: []protocol.PromptMessage{
					{Role: "user", Content: protocol.PromptContent{Type: "text", Text: text}},
				},
			}, nil
		})
}

func TestPromptsListOrder(t *testing.T) {
	c := NewPromptsCapability()
	require.NoError(t, c.RegisterPrompt(textPrompt("second")))
	require.NoError(t, c.RegisterPrompt(textPrompt("first")))

	result, err := c.HandlePromptsList(context.Background(), &protocol.PromptsListParams{})
	require.NoError(t, err)
	require.Len(t, result.Prompts, 2)
	assert.Equal(t, "second", result.Prompts[0].Name)
	assert.Equal(t, "first", result.Prompts[1].Name)
}

func TestPromptsGetRendersArguments(t *testing.T) {
	c := NewPromptsCapability()
	require.NoError(t, c.RegisterPrompt(textPrompt("summary")))

	result, err := c.HandlePromptsGet(context.Background(), &protocol.PromptsGetParams{
		Name:      "summary",
		Arguments: map[string]string{"style": "brief"},
	})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "rendered summary (brief)", result.Messages[0].Content.Text)
}

func TestPromptsGetUnknownName(t *testing.T) {
	c := NewPromptsCapability()

	_, err := c.HandlePromptsGet(context.Background(), &protocol.PromptsGetParams{Name: "nope"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.PromptNotFound))
}

func TestPromptsDuplicateRegistration(t *testing.T) {
	c := NewPromptsCapability()
	require.NoError(t, c.RegisterPrompt(textPrompt("summary")))
	assert.Error(t, c.RegisterPrompt(textPrompt("summary")))
}
