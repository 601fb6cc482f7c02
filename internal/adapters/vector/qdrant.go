package vector

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/adapterkit/mcp-adapters/internal/config"
)

// QdrantCollections is a Collections implementation backed by a Qdrant
// instance over gRPC.
type QdrantCollections struct {
	client *qdrant.Client
}

// NewQdrantCollections connects to the configured Qdrant instance.
func NewQdrantCollections(cfg config.VectorConfig) (*QdrantCollections, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to vector database: %w", err)
	}
	return &QdrantCollections{client: client}, nil
}

func distanceFromName(name string) (qdrant.Distance, error) {
	switch name {
	case "Cosine":
		return qdrant.Distance_Cosine, nil
	case "Euclidean":
		return qdrant.Distance_Euclid, nil
	case "Dot":
		return qdrant.Distance_Dot, nil
	default:
		return qdrant.Distance_UnknownDistance, fmt.Errorf("unsupported distance: %s", name)
	}
}

func distanceName(distance qdrant.Distance) string {
	switch distance {
	case qdrant.Distance_Cosine:
		return "Cosine"
	case qdrant.Distance_Euclid:
		return "Euclidean"
	case qdrant.Distance_Dot:
		return "Dot"
	default:
		return distance.String()
	}
}

// Create creates a collection with a single unnamed vector space.
func (q *QdrantCollections) Create(ctx context.Context, name string, vectorSize uint64, distance string) error {
	dist, err := distanceFromName(distance)
	if err != nil {
		return err
	}

	return q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: dist,
		}),
	})
}

// Exists checks for the presence of a collection.
func (q *QdrantCollections) Exists(ctx context.Context, name string) (bool, error) {
	return q.client.CollectionExists(ctx, name)
}

// Info returns the configuration and point count of a collection.
func (q *QdrantCollections) Info(ctx context.Context, name string) (*CollectionInfo, error) {
	info, err := q.client.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &CollectionInfo{
		Name:   name,
		Status: info.GetStatus().String(),
	}
	if count := info.GetPointsCount(); count != 0 {
		result.PointsCount = count
	}
	if params := info.GetConfig().GetParams().GetVectorsConfig().GetParams(); params != nil {
		result.VectorSize = params.GetSize()
		result.Distance = distanceName(params.GetDistance())
	}
	return result, nil
}

// Delete removes a collection.
func (q *QdrantCollections) Delete(ctx context.Context, name string) error {
	return q.client.DeleteCollection(ctx, name)
}

// List returns the names of all collections.
func (q *QdrantCollections) List(ctx context.Context) ([]string, error) {
	return q.client.ListCollections(ctx)
}
