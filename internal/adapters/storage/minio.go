package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/adapterkit/mcp-adapters/internal/config"
)

// MinioStore is an ObjectStore backed by a MinIO or S3-compatible
// endpoint.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore connects to the configured endpoint.
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}
	return &MinioStore{client: client}, nil
}

// ListBuckets lists the buckets visible to the configured credentials.
func (s *MinioStore) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]BucketInfo, 0, len(buckets))
	for _, b := range buckets {
		infos = append(infos, BucketInfo{Name: b.Name, CreatedAt: b.CreationDate})
	}
	return infos, nil
}

// BucketExists checks for the presence of a bucket.
func (s *MinioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return s.client.BucketExists(ctx, bucket)
}

// MakeBucket creates a bucket.
func (s *MinioStore) MakeBucket(ctx context.Context, bucket string) error {
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

// RemoveBucket removes an empty bucket.
func (s *MinioStore) RemoveBucket(ctx context.Context, bucket string) error {
	return s.client.RemoveBucket(ctx, bucket)
}

// ListObjects lists the objects of a bucket under a prefix.
func (s *MinioStore) ListObjects(ctx context.Context, bucket, prefix string, recursive bool) ([]ObjectInfo, error) {
	var infos []ObjectInfo
	for object := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: recursive,
	}) {
		if object.Err != nil {
			return nil, object.Err
		}
		infos = append(infos, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ETag:         object.ETag,
			ContentType:  object.ContentType,
		})
	}
	return infos, nil
}

// StatObject returns metadata for one object.
func (s *MinioStore) StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	stat, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, err
	}
	return &ObjectInfo{
		Key:          stat.Key,
		Size:         stat.Size,
		LastModified: stat.LastModified,
		ETag:         stat.ETag,
		ContentType:  stat.ContentType,
	}, nil
}

// PutFile uploads a local file as an object.
func (s *MinioStore) PutFile(ctx context.Context, bucket, key, filePath string) (int64, error) {
	info, err := s.client.FPutObject(ctx, bucket, key, filePath, minio.PutObjectOptions{})
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// GetFile downloads an object to a local file.
func (s *MinioStore) GetFile(ctx context.Context, bucket, key, filePath string) error {
	return s.client.FGetObject(ctx, bucket, key, filePath, minio.GetObjectOptions{})
}

// RemoveObject removes one object.
func (s *MinioStore) RemoveObject(ctx context.Context, bucket, key string) error {
	return s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}
