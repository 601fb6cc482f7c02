package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/adapterkit/mcp-adapters/pkg/capabilities/prompts"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// SummarizePrompt returns the summarize-notes prompt over store. The
// optional style argument switches between brief and detailed output.
func SummarizePrompt(store *Store) *prompts.PromptWithRenderer {
	return prompts.NewPrompt(
		"summarize-notes",
		"Summarize all current notes",
		[]protocol.PromptArgument{
			{Name: "style", Description: "Summary style: brief or detailed"},
		},
		func(ctx context.Context, args map[string]string) (*protocol.PromptsGetResult, error) {
			style := args["style"]
			detail := "Give a short one-line summary."
			if style == "detailed" {
				detail = "Give a detailed summary covering every note."
			}

			var sb strings.Builder
			sb.WriteString("Here are the current notes to summarize. ")
			sb.WriteString(detail)
			sb.WriteString("\n")
			for _, note := range store.All() {
				sb.WriteString(fmt.Sprintf("\n- %s: %s", note.Name, note.Content))
				if len(note.Tags) > 0 {
					sb.WriteString(" [" + strings.Join(note.Tags, ", ") + "]")
				}
			}

			return &protocol.PromptsGetResult{
				Description: "Summarize the current notes",
				Messages: []protocol.PromptMessage{
					{
						Role:    "user",
						Content: protocol.PromptContent{Type: "text", Text: sb.String()},
					},
				},
			}, nil
		})
}
