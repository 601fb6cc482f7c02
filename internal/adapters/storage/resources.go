package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

const bucketURIPrefix = "s3://"

// BucketResourceProvider exposes buckets as readable resources. Reading
// a bucket resource returns its object listing as JSON.
type BucketResourceProvider struct {
	store ObjectStore
}

// NewBucketResourceProvider creates a provider over store.
func NewBucketResourceProvider(store ObjectStore) *BucketResourceProvider {
	return &BucketResourceProvider{store: store}
}

// ListResources lists one resource per bucket.
func (p *BucketResourceProvider) ListResources(ctx context.Context) ([]protocol.Resource, error) {
	buckets, err := p.store.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}

	resources := make([]protocol.Resource, 0, len(buckets))
	for _, bucket := range buckets {
		resources = append(resources, protocol.Resource{
			URI:         bucketURIPrefix + bucket.Name,
			Name:        bucket.Name,
			Description: "Object listing of bucket " + bucket.Name,
			MimeType:    "application/json",
		})
	}
	return resources, nil
}

// ReadResource returns the object listing of one bucket.
func (p *BucketResourceProvider) ReadResource(ctx context.Context, uri string) ([]protocol.ResourceContents, error) {
	if !strings.HasPrefix(uri, bucketURIPrefix) {
		return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", uri)
	}
	bucket := strings.TrimPrefix(uri, bucketURIPrefix)

	exists, err := p.store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", uri)
	}

	objects, err := p.store.ListObjects(ctx, bucket, "", true)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return nil, err
	}

	return []protocol.ResourceContents{{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}}, nil
}
