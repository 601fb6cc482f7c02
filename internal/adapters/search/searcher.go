// Package search adapts a web-search capable LLM backend to the tool
// interface. Completed searches are kept as readable resources.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// Searcher runs one web search and returns the answer text.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (string, error)
}

// Result is one saved search result.
type Result struct {
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const resultURIPrefix = "search://"

// ResultStore keeps completed searches and serves them as resources,
// listed in the order they were saved.
type ResultStore struct {
	mutex   sync.RWMutex
	results map[string]*Result
	order   []string
}

// NewResultStore creates an empty result store.
func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]*Result)}
}

// Save stores a search result under its name, replacing any previous
// result with the same name.
func (s *ResultStore) Save(result *Result) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.results[result.Name]; !exists {
		s.order = append(s.order, result.Name)
	}
	s.results[result.Name] = result
}

// Get returns a saved result by name.
func (s *ResultStore) Get(name string) (*Result, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	result, exists := s.results[name]
	return result, exists
}

// ListResources lists one resource per saved search.
func (s *ResultStore) ListResources(ctx context.Context) ([]protocol.Resource, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	resources := make([]protocol.Resource, 0, len(s.order))
	for _, name := range s.order {
		result := s.results[name]
		resources = append(resources, protocol.Resource{
			URI:         resultURIPrefix + name,
			Name:        name,
			Description: "Search result for: " + result.Query,
			MimeType:    "text/plain",
		})
	}
	return resources, nil
}

// ReadResource returns the content of one saved search.
func (s *ResultStore) ReadResource(ctx context.Context, uri string) ([]protocol.ResourceContents, error) {
	if !strings.HasPrefix(uri, resultURIPrefix) {
		return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", uri)
	}
	name := strings.TrimPrefix(uri, resultURIPrefix)

	result, exists := s.Get(name)
	if !exists {
		return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", uri)
	}

	return []protocol.ResourceContents{{
		URI:      uri,
		MimeType: "text/plain",
		Text:     result.Content,
	}}, nil
}
