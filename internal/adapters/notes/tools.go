package notes

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/adapterkit/mcp-adapters/internal/adapters/transcript"
	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

const transcriptPreviewLen = 500

// Tools returns the note tool set. The fetcher backs the transcript
// tool; fetched transcripts are saved as notes.
func Tools(store *Store, fetcher transcript.Fetcher) []*tools.ToolWithHandler {
	return []*tools.ToolWithHandler{
		addNoteTool(store),
		randomizeNoteTool(store),
		wordCountTool(store),
		tagNoteTool(store),
		transcriptTool(store, fetcher),
	}
}

func addNoteTool(store *Store) *tools.ToolWithHandler {
	return tools.NewTool(
		"add-note",
		"Add a new note or replace an existing one",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"name":    protocol.StringSchema("Name of the note"),
			"content": protocol.StringSchema("Content of the note"),
		}, []string{"name", "content"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "name", "")
			content := tools.StringArg(args, "content", "")

			store.Put(name, content)
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Added note '%s' with content: %s", name, content)), nil
		})
}

func randomizeNoteTool(store *Store) *tools.ToolWithHandler {
	return tools.NewTool(
		"randomize-note",
		"Transform a note's content: shuffle its words, reverse it, or change its case",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"name": protocol.StringSchema("Name of the note to transform"),
			"mode": protocol.StringEnumSchema("Transformation to apply",
				"shuffle", "reverse", "uppercase", "lowercase").WithDefault("shuffle"),
		}, []string{"name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "name", "")
			mode := tools.StringArg(args, "mode", "shuffle")

			note, exists := store.Get(name)
			if !exists {
				return nil, errors.Newf(errors.ToolExecution, "note not found: %s", name)
			}

			transformed := transform(note.Content, mode)
			store.Put(name, transformed)
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Note '%s' %sd: %s", name, mode, transformed)), nil
		})
}

func transform(content, mode string) string {
	switch mode {
	case "reverse":
		runes := []rune(content)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes)
	case "uppercase":
		return strings.ToUpper(content)
	case "lowercase":
		return strings.ToLower(content)
	default:
		words := strings.Fields(content)
		rand.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
		return strings.Join(words, " ")
	}
}

func wordCountTool(store *Store) *tools.ToolWithHandler {
	return tools.NewTool(
		"word-count",
		"Count the words in a note",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"name": protocol.StringSchema("Name of the note to count"),
		}, []string{"name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "name", "")

			note, exists := store.Get(name)
			if !exists {
				return nil, errors.Newf(errors.ToolExecution, "note not found: %s", name)
			}

			count := len(strings.Fields(note.Content))
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Note '%s' contains %d words", name, count)), nil
		})
}

func tagNoteTool(store *Store) *tools.ToolWithHandler {
	return tools.NewTool(
		"tag-note",
		"Attach tags to a note",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"name": protocol.StringSchema("Name of the note to tag"),
			"tags": protocol.ArraySchema(protocol.StringSchema("A tag")),
		}, []string{"name", "tags"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "name", "")
			tagList := tools.StringSliceArg(args, "tags")

			note, exists := store.Tag(name, tagList)
			if !exists {
				return nil, errors.Newf(errors.ToolExecution, "note not found: %s", name)
			}

			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Note '%s' tagged: %s", name, strings.Join(note.Tags, ", "))), nil
		})
}

func transcriptTool(store *Store, fetcher transcript.Fetcher) *tools.ToolWithHandler {
	return tools.NewTool(
		"get-youtube-transcript",
		"Fetch the transcript of a YouTube video and save it as a note",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"video_id": protocol.StringSchema("The YouTube video ID"),
			"language": protocol.StringSchema("Caption language code").WithDefault("en"),
		}, []string{"video_id"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			videoID := tools.StringArg(args, "video_id", "")
			language := tools.StringArg(args, "language", "")

			text, err := fetcher.Fetch(ctx, videoID, language)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "fetching transcript").WithCause(err)
			}

			noteName := "transcript_" + videoID
			store.Put(noteName, text)

			// Truncate on rune boundaries, captions are often non-ASCII.
			preview := text
			if runes := []rune(text); len(runes) > transcriptPreviewLen {
				preview = string(runes[:transcriptPreviewLen]) + "..."
			}
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Transcript saved as note '%s'.\n\n%s", noteName, preview)), nil
		})
}
