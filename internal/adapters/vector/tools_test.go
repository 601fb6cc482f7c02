package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// fakeCollections is an in-memory Collections for tests.
type fakeCollections struct {
	collections map[string]*CollectionInfo
}

func newFakeCollections() *fakeCollections {
	return &fakeCollections{collections: make(map[string]*CollectionInfo)}
}

func (f *fakeCollections) Create(ctx context.Context, name string, vectorSize uint64, distance string) error {
	f.collections[name] = &CollectionInfo{
		Name:       name,
		VectorSize: vectorSize,
		Distance:   distance,
		Status:     "green",
	}
	return nil
}

func (f *fakeCollections) Exists(ctx context.Context, name string) (bool, error) {
	_, exists := f.collections[name]
	return exists, nil
}

func (f *fakeCollections) Info(ctx context.Context, name string) (*CollectionInfo, error) {
	return f.collections[name], nil
}

func (f *fakeCollections) Delete(ctx context.Context, name string) error {
	delete(f.collections, name)
	return nil
}

func (f *fakeCollections) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	return names, nil
}

func dispatchVector(t *testing.T, backend Collections, name string, args map[string]interface{}) *protocol.ToolsCallResult {
	t.Helper()
	registry := tools.NewToolRegistry()
	for _, tool := range Tools(backend) {
		require.NoError(t, registry.Register(tool))
	}
	result, err := registry.Dispatch(context.Background(), name, args)
	require.NoError(t, err)
	return result
}

func TestWriteCollectionDefaults(t *testing.T) {
	backend := newFakeCollections()

	result := dispatchVector(t, backend, "qdrant-write-collection", map[string]interface{}{
		"collection_name": "embeddings",
	})
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "384")
	assert.Contains(t, result.Content[0].Text, "Cosine")

	info := backend.collections["embeddings"]
	require.NotNil(t, info)
	assert.Equal(t, uint64(384), info.VectorSize)
	assert.Equal(t, "Cosine", info.Distance)
}

func TestWriteCollectionExplicitParams(t *testing.T) {
	backend := newFakeCollections()

	result := dispatchVector(t, backend, "qdrant-write-collection", map[string]interface{}{
		"collection_name": "embeddings",
		"vector_size":     768.0,
		"distance":        "Dot",
	})
	require.False(t, result.IsError)

	info := backend.collections["embeddings"]
	assert.Equal(t, uint64(768), info.VectorSize)
	assert.Equal(t, "Dot", info.Distance)
}

func TestWriteCollectionInvalidDistance(t *testing.T) {
	result := dispatchVector(t, newFakeCollections(), "qdrant-write-collection", map[string]interface{}{
		"collection_name": "embeddings",
		"distance":        "Manhattan",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Manhattan")
}

func TestWriteCollectionAlreadyExists(t *testing.T) {
	backend := newFakeCollections()
	require.NoError(t, backend.Create(context.Background(), "embeddings", 384, "Cosine"))

	result := dispatchVector(t, backend, "qdrant-write-collection", map[string]interface{}{
		"collection_name": "embeddings",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "already exists")
}

func TestReadCollection(t *testing.T) {
	backend := newFakeCollections()
	require.NoError(t, backend.Create(context.Background(), "embeddings", 768, "Euclidean"))

	result := dispatchVector(t, backend, "qdrant-read-collection", map[string]interface{}{
		"collection_name": "embeddings",
	})
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "768")
	assert.Contains(t, result.Content[0].Text, "Euclidean")
}

func TestReadCollectionNotFound(t *testing.T) {
	result := dispatchVector(t, newFakeCollections(), "qdrant-read-collection", map[string]interface{}{
		"collection_name": "missing",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "collection not found")
}

func TestDeleteCollection(t *testing.T) {
	backend := newFakeCollections()
	require.NoError(t, backend.Create(context.Background(), "embeddings", 384, "Cosine"))

	result := dispatchVector(t, backend, "qdrant-delete-collection", map[string]interface{}{
		"collection_name": "embeddings",
	})
	assert.False(t, result.IsError)
	assert.NotContains(t, backend.collections, "embeddings")
}

func TestDeleteCollectionMissingIsNotError(t *testing.T) {
	result := dispatchVector(t, newFakeCollections(), "qdrant-delete-collection", map[string]interface{}{
		"collection_name": "missing",
	})
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Nothing to delete")
}

func TestListCollections(t *testing.T) {
	backend := newFakeCollections()

	result := dispatchVector(t, backend, "qdrant-list-collections", map[string]interface{}{})
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "No collections found")

	require.NoError(t, backend.Create(context.Background(), "embeddings", 384, "Cosine"))
	result = dispatchVector(t, backend, "qdrant-list-collections", map[string]interface{}{})
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "embeddings")
}
