package notes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
)

type fakeFetcher struct {
	text string
	fail bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, videoID, language string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("no transcript available for video %s in language %s", videoID, language)
	}
	return f.text, nil
}

func noteRegistry(t *testing.T, store *Store, fetcher *fakeFetcher) *tools.ToolRegistry {
	t.Helper()
	if fetcher == nil {
		fetcher = &fakeFetcher{text: "transcript text"}
	}
	registry := tools.NewToolRegistry()
	for _, tool := range Tools(store, fetcher) {
		require.NoError(t, registry.Register(tool))
	}
	return registry
}

func TestAddNote(t *testing.T) {
	store := NewStore()
	registry := noteRegistry(t, store, nil)

	result, err := registry.Dispatch(context.Background(), "add-note", map[string]interface{}{
		"name":    "todo",
		"content": "buy milk",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "todo")
	assert.Contains(t, result.Content[0].Text, "buy milk")

	note, exists := store.Get("todo")
	require.True(t, exists)
	assert.Equal(t, "buy milk", note.Content)

	// The note is now listable as a resource.
	resources, err := store.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "note://todo", resources[0].URI)
}

func TestAddNoteMissingContent(t *testing.T) {
	store := NewStore()
	registry := noteRegistry(t, store, nil)

	result, err := registry.Dispatch(context.Background(), "add-note", map[string]interface{}{
		"name": "todo",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "content")
	assert.Equal(t, 0, store.Len(), "nothing stored when validation fails")
}

func TestRandomizeNoteShuffleKeepsWords(t *testing.T) {
	store := NewStore()
	store.Put("poem", "the quick brown fox jumps")
	registry := noteRegistry(t, store, nil)

	result, err := registry.Dispatch(context.Background(), "randomize-note", map[string]interface{}{
		"name": "poem",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	note, _ := store.Get("poem")
	got := strings.Fields(note.Content)
	want := strings.Fields("the quick brown fox jumps")
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestRandomizeNoteModes(t *testing.T) {
	store := NewStore()
	registry := noteRegistry(t, store, nil)

	store.Put("n", "Hello World")
	_, err := registry.Dispatch(context.Background(), "randomize-note", map[string]interface{}{
		"name": "n", "mode": "reverse",
	})
	require.NoError(t, err)
	note, _ := store.Get("n")
	assert.Equal(t, "dlroW olleH", note.Content)

	store.Put("n", "Hello World")
	_, err = registry.Dispatch(context.Background(), "randomize-note", map[string]interface{}{
		"name": "n", "mode": "uppercase",
	})
	require.NoError(t, err)
	note, _ = store.Get("n")
	assert.Equal(t, "HELLO WORLD", note.Content)

	_, err = registry.Dispatch(context.Background(), "randomize-note", map[string]interface{}{
		"name": "n", "mode": "lowercase",
	})
	require.NoError(t, err)
	note, _ = store.Get("n")
	assert.Equal(t, "hello world", note.Content)
}

func TestRandomizeNoteInvalidMode(t *testing.T) {
	store := NewStore()
	store.Put("n", "text")
	registry := noteRegistry(t, store, nil)

	result, err := registry.Dispatch(context.Background(), "randomize-note", map[string]interface{}{
		"name": "n", "mode": "scramble",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "text", mustGet(t, store, "n").Content, "invalid mode must not modify the note")
}

func TestWordCount(t *testing.T) {
	store := NewStore()
	store.Put("n", "one two  three\nfour")
	registry := noteRegistry(t, store, nil)

	result, err := registry.Dispatch(context.Background(), "word-count", map[string]interface{}{
		"name": "n",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "4 words")
}

func TestWordCountMissingNote(t *testing.T) {
	registry := noteRegistry(t, NewStore(), nil)

	result, err := registry.Dispatch(context.Background(), "word-count", map[string]interface{}{
		"name": "missing",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "note not found")
}

func TestTagNote(t *testing.T) {
	store := NewStore()
	store.Put("n", "text")
	registry := noteRegistry(t, store, nil)

	result, err := registry.Dispatch(context.Background(), "tag-note", map[string]interface{}{
		"name": "n",
		"tags": []interface{}{"work", "urgent", "work"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	note, _ := store.Get("n")
	assert.Equal(t, []string{"work", "urgent"}, note.Tags)
}

func TestGetYoutubeTranscript(t *testing.T) {
	store := NewStore()
	long := strings.Repeat("word ", 200)
	registry := noteRegistry(t, store, &fakeFetcher{text: long})

	result, err := registry.Dispatch(context.Background(), "get-youtube-transcript", map[string]interface{}{
		"video_id": "abc123",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "transcript_abc123")
	assert.Contains(t, result.Content[0].Text, "...")

	note, exists := store.Get("transcript_abc123")
	require.True(t, exists)
	assert.Equal(t, long, note.Content)
}

func TestGetYoutubeTranscriptPreviewRuneBoundary(t *testing.T) {
	store := NewStore()
	long := strings.Repeat("世", transcriptPreviewLen+100)
	registry := noteRegistry(t, store, &fakeFetcher{text: long})

	result, err := registry.Dispatch(context.Background(), "get-youtube-transcript", map[string]interface{}{
		"video_id": "abc123",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].Text
	assert.True(t, utf8.ValidString(text), "preview must not split a rune")
	assert.Contains(t, text, strings.Repeat("世", transcriptPreviewLen)+"...")
}

func TestGetYoutubeTranscriptFailure(t *testing.T) {
	store := NewStore()
	registry := noteRegistry(t, store, &fakeFetcher{fail: true})

	result, err := registry.Dispatch(context.Background(), "get-youtube-transcript", map[string]interface{}{
		"video_id": "abc123",
		"language": "de",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "no transcript available")
	assert.Equal(t, 0, store.Len())
}

func TestSummarizePrompt(t *testing.T) {
	store := NewStore()
	store.Put("a", "alpha content")
	store.Put("b", "bravo content")
	store.Tag("a", []string{"greek"})

	prompt := SummarizePrompt(store)

	result, err := prompt.Render(context.Background(), map[string]string{"style": "detailed"})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	text := result.Messages[0].Content.Text
	assert.Contains(t, text, "detailed summary")
	assert.Contains(t, text, "alpha content")
	assert.Contains(t, text, "bravo content")
	assert.Contains(t, text, "[greek]")
}

func mustGet(t *testing.T, store *Store, name string) *Note {
	t.Helper()
	note, exists := store.Get(name)
	require.True(t, exists)
	return note
}
