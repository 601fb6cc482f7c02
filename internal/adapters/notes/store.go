// Package notes implements an in-memory note pad with transformation
// tools, note resources and a summarization prompt.
package notes

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// Note is one named note.
type Note struct {
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

const noteURIPrefix = "note://"

// Store keeps notes in memory, listed in insertion order.
type Store struct {
	mutex sync.RWMutex
	notes map[string]*Note
	order []string
}

// NewStore creates an empty note store.
func NewStore() *Store {
	return &Store{notes: make(map[string]*Note)}
}

// Put creates or replaces a note, keeping existing tags on replace.
func (s *Store) Put(name, content string) *Note {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	note, exists := s.notes[name]
	if !exists {
		note = &Note{Name: name}
		s.notes[name] = note
		s.order = append(s.order, name)
	}
	note.Content = content
	note.UpdatedAt = time.Now()
	return note
}

// Get returns a note by name.
func (s *Store) Get(name string) (*Note, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	note, exists := s.notes[name]
	return note, exists
}

// Tag appends tags to a note, skipping duplicates.
func (s *Store) Tag(name string, tags []string) (*Note, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	note, exists := s.notes[name]
	if !exists {
		return nil, false
	}

	for _, tag := range tags {
		duplicate := false
		for _, existing := range note.Tags {
			if existing == tag {
				duplicate = true
				break
			}
		}
		if !duplicate {
			note.Tags = append(note.Tags, tag)
		}
	}
	note.UpdatedAt = time.Now()
	return note, true
}

// All returns the notes in insertion order.
func (s *Store) All() []*Note {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	all := make([]*Note, 0, len(s.order))
	for _, name := range s.order {
		all = append(all, s.notes[name])
	}
	return all
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.order)
}

// ListResources lists one resource per note.
func (s *Store) ListResources(ctx context.Context) ([]protocol.Resource, error) {
	resources := make([]protocol.Resource, 0, s.Len())
	for _, note := range s.All() {
		resources = append(resources, protocol.Resource{
			URI:         noteURIPrefix + note.Name,
			Name:        note.Name,
			Description: "Note: " + note.Name,
			MimeType:    "text/plain",
		})
	}
	return resources, nil
}

// ReadResource returns the content of one note.
func (s *Store) ReadResource(ctx context.Context, uri string) ([]protocol.ResourceContents, error) {
	if !strings.HasPrefix(uri, noteURIPrefix) {
		return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", uri)
	}

	note, exists := s.Get(strings.TrimPrefix(uri, noteURIPrefix))
	if !exists {
		return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", uri)
	}

	return []protocol.ResourceContents{{
		URI:      uri,
		MimeType: "text/plain",
		Text:     note.Content,
	}}, nil
}
