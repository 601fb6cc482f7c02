// Package storage adapts an S3-compatible object store to the tool
// interface.
package storage

import (
	"context"
	"time"
)

// BucketInfo describes one bucket.
type BucketInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"creation_date"`
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
}

// ObjectStore is the backend contract the storage tools run against.
type ObjectStore interface {
	ListBuckets(ctx context.Context) ([]BucketInfo, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
	RemoveBucket(ctx context.Context, bucket string) error

	ListObjects(ctx context.Context, bucket, prefix string, recursive bool) ([]ObjectInfo, error)
	StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)
	PutFile(ctx context.Context, bucket, key, filePath string) (int64, error)
	GetFile(ctx context.Context, bucket, key, filePath string) error
	RemoveObject(ctx context.Context, bucket, key string) error
}
