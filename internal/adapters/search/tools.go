package search

import (
	"context"
	"fmt"
	"time"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

const (
	defaultMaxResults = 5
	minResults        = 1
	maxResults        = 10
)

// Tools returns the web search tool set. Completed searches land in
// store and become readable resources.
func Tools(searcher Searcher, store *ResultStore) []*tools.ToolWithHandler {
	return []*tools.ToolWithHandler{
		webSearchTool(searcher, store),
	}
}

func webSearchTool(searcher Searcher, store *ResultStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"web-search",
		"Search the web and save the answer as a named resource",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"query":       protocol.StringSchema("The search query"),
			"name":        protocol.StringSchema("Name to save the result under"),
			"max_results": protocol.BoundedIntegerSchema("Number of results to return", minResults, maxResults).WithDefault(defaultMaxResults),
		}, []string{"query", "name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			query := tools.StringArg(args, "query", "")
			name := tools.StringArg(args, "name", "")
			limit := tools.IntArg(args, "max_results", defaultMaxResults)

			content, err := searcher.Search(ctx, query, limit)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "web search failed").WithCause(err)
			}

			store.Save(&Result{
				Name:      name,
				Query:     query,
				Content:   content,
				CreatedAt: time.Now(),
			})

			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Search complete. Result saved as %s%s.\n\n%s", resultURIPrefix, name, content)), nil
		})
}
