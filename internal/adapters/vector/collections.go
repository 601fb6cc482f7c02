// Package vector adapts a vector database's collection management to
// the tool interface.
package vector

import "context"

// CollectionInfo describes one collection.
type CollectionInfo struct {
	Name        string `json:"name"`
	VectorSize  uint64 `json:"vector_size"`
	Distance    string `json:"distance"`
	PointsCount uint64 `json:"points_count"`
	Status      string `json:"status"`
}

// Collections is the backend contract the vector tools run against.
type Collections interface {
	Create(ctx context.Context, name string, vectorSize uint64, distance string) error
	Exists(ctx context.Context, name string) (bool, error)
	Info(ctx context.Context, name string) (*CollectionInfo, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}
