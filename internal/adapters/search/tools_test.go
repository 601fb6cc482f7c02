package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

type fakeSearcher struct {
	lastQuery string
	lastLimit int
	fail      bool
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) (string, error) {
	if f.fail {
		return "", fmt.Errorf("backend down")
	}
	f.lastQuery = query
	f.lastLimit = maxResults
	return fmt.Sprintf("results for %q", query), nil
}

func dispatchSearch(t *testing.T, searcher Searcher, store *ResultStore, args map[string]interface{}) *protocol.ToolsCallResult {
	t.Helper()
	registry := tools.NewToolRegistry()
	for _, tool := range Tools(searcher, store) {
		require.NoError(t, registry.Register(tool))
	}
	result, err := registry.Dispatch(context.Background(), "web-search", args)
	require.NoError(t, err)
	return result
}

func TestWebSearchSavesResult(t *testing.T) {
	searcher := &fakeSearcher{}
	store := NewResultStore()

	result := dispatchSearch(t, searcher, store, map[string]interface{}{
		"query": "golang generics",
		"name":  "generics",
	})
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "search://generics")
	assert.Equal(t, "golang generics", searcher.lastQuery)
	assert.Equal(t, 5, searcher.lastLimit, "max_results defaults to 5")

	saved, exists := store.Get("generics")
	require.True(t, exists)
	assert.Contains(t, saved.Content, "golang generics")
}

func TestWebSearchExplicitMaxResults(t *testing.T) {
	searcher := &fakeSearcher{}

	result := dispatchSearch(t, searcher, NewResultStore(), map[string]interface{}{
		"query":       "golang generics",
		"name":        "generics",
		"max_results": 8.0,
	})
	require.False(t, result.IsError)
	assert.Equal(t, 8, searcher.lastLimit)
}

func TestWebSearchMaxResultsOutOfRange(t *testing.T) {
	searcher := &fakeSearcher{}

	result := dispatchSearch(t, searcher, NewResultStore(), map[string]interface{}{
		"query":       "golang generics",
		"name":        "generics",
		"max_results": 11.0,
	})
	assert.True(t, result.IsError)
	assert.Empty(t, searcher.lastQuery, "backend must not be called on invalid arguments")
}

func TestWebSearchMissingName(t *testing.T) {
	result := dispatchSearch(t, &fakeSearcher{}, NewResultStore(), map[string]interface{}{
		"query": "golang generics",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "name")
}

func TestWebSearchBackendFailure(t *testing.T) {
	store := NewResultStore()
	result := dispatchSearch(t, &fakeSearcher{fail: true}, store, map[string]interface{}{
		"query": "golang generics",
		"name":  "generics",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "web search failed")

	_, exists := store.Get("generics")
	assert.False(t, exists, "failed searches must not be saved")
}

func TestResultStoreResources(t *testing.T) {
	store := NewResultStore()
	store.Save(&Result{Name: "first", Query: "q1", Content: "c1"})
	store.Save(&Result{Name: "second", Query: "q2", Content: "c2"})

	resources, err := store.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "search://first", resources[0].URI)
	assert.Equal(t, "search://second", resources[1].URI)

	contents, err := store.ReadResource(context.Background(), "search://second")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "c2", contents[0].Text)

	_, err = store.ReadResource(context.Background(), "search://missing")
	assert.Error(t, err)
}

func TestResultStoreOverwriteKeepsOrder(t *testing.T) {
	store := NewResultStore()
	store.Save(&Result{Name: "a", Query: "q1", Content: "old"})
	store.Save(&Result{Name: "b", Query: "q2", Content: "c"})
	store.Save(&Result{Name: "a", Query: "q3", Content: "new"})

	resources, err := store.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "search://a", resources[0].URI)

	saved, _ := store.Get("a")
	assert.Equal(t, "new", saved.Content)
}
