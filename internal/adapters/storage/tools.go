package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// Tools returns the object storage tool set backed by store, in the
// order they are exposed to clients.
func Tools(store ObjectStore) []*tools.ToolWithHandler {
	return []*tools.ToolWithHandler{
		listBucketsTool(store),
		readBucketTool(store),
		bucketSizeTool(store),
		makeBucketTool(store),
		removeBucketTool(store),
		listObjectsTool(store),
		fputObjectTool(store),
		fgetObjectTool(store),
	}
}

func jsonResult(value interface{}) (*protocol.ToolsCallResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, errors.New(errors.ToolExecution, "encoding result").WithCause(err)
	}
	return tools.NewSuccessToolResult(string(data)), nil
}

func listBucketsTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"list_buckets",
		"List all buckets in the object store",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{}, nil),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			buckets, err := store.ListBuckets(ctx)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "listing buckets").WithCause(err)
			}
			return jsonResult(buckets)
		})
}

func readBucketTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"read_bucket",
		"List the object keys contained in a bucket",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Name of the bucket to read"),
		}, []string{"bucket_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")

			exists, err := store.BucketExists(ctx, bucket)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "checking bucket").WithCause(err)
			}
			if !exists {
				return nil, errors.Newf(errors.ToolExecution, "bucket %s does not exist", bucket)
			}

			objects, err := store.ListObjects(ctx, bucket, "", true)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "listing objects").WithCause(err)
			}

			keys := make([]string, 0, len(objects))
			for _, object := range objects {
				keys = append(keys, object.Key)
			}
			return jsonResult(map[string]interface{}{
				"bucket":  bucket,
				"objects": keys,
			})
		})
}

func bucketSizeTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"bucket_size",
		"Compute the total size and object count of a bucket",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Name of the bucket to measure"),
		}, []string{"bucket_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")

			objects, err := store.ListObjects(ctx, bucket, "", true)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "listing objects").WithCause(err)
			}

			var total int64
			for _, object := range objects {
				total += object.Size
			}
			return jsonResult(map[string]interface{}{
				"bucket":       bucket,
				"object_count": len(objects),
				"total_bytes":  total,
			})
		})
}

func makeBucketTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"make_bucket",
		"Create a new bucket",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Name of the bucket to create"),
		}, []string{"bucket_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")

			exists, err := store.BucketExists(ctx, bucket)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "checking bucket").WithCause(err)
			}
			if exists {
				return nil, errors.Newf(errors.ToolExecution, "bucket %s already exists", bucket)
			}

			if err := store.MakeBucket(ctx, bucket); err != nil {
				return nil, errors.New(errors.ToolExecution, "creating bucket").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf("Bucket %s created", bucket)), nil
		})
}

func removeBucketTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"remove_bucket",
		"Remove an empty bucket",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Name of the bucket to remove"),
		}, []string{"bucket_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")

			exists, err := store.BucketExists(ctx, bucket)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "checking bucket").WithCause(err)
			}
			if !exists {
				return nil, errors.Newf(errors.ToolExecution, "bucket %s does not exist", bucket)
			}

			if err := store.RemoveBucket(ctx, bucket); err != nil {
				return nil, errors.New(errors.ToolExecution, "removing bucket").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf("Bucket %s removed", bucket)), nil
		})
}

func listObjectsTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"list_objects",
		"List objects in a bucket, optionally filtered by prefix",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Name of the bucket to list"),
			"prefix":      protocol.StringSchema("Only list objects whose key starts with this prefix"),
			"recursive":   protocol.BooleanSchema("Descend into nested prefixes").WithDefault(true),
		}, []string{"bucket_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")
			prefix := tools.StringArg(args, "prefix", "")
			recursive := tools.BoolArg(args, "recursive", true)

			objects, err := store.ListObjects(ctx, bucket, prefix, recursive)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "listing objects").WithCause(err)
			}
			return jsonResult(objects)
		})
}

func fputObjectTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"fput_object",
		"Upload a local file to a bucket",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Destination bucket"),
			"object_name": protocol.StringSchema("Key to store the object under, defaults to the file name"),
			"file_path":   protocol.StringSchema("Path of the local file to upload"),
		}, []string{"bucket_name", "file_path"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")
			path := tools.StringArg(args, "file_path", "")
			key := tools.StringArg(args, "object_name", filepath.Base(path))

			size, err := store.PutFile(ctx, bucket, key, path)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "uploading object").WithCause(err)
			}
			return tools.NewSuccessToolResult(
				fmt.Sprintf("Uploaded %s to %s/%s (%d bytes)", path, bucket, key, size)), nil
		})
}

func fgetObjectTool(store ObjectStore) *tools.ToolWithHandler {
	return tools.NewTool(
		"fget_object",
		"Download an object to a local file",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"bucket_name": protocol.StringSchema("Source bucket"),
			"object_name": protocol.StringSchema("Key of the object to download"),
			"file_path":   protocol.StringSchema("Path to write the downloaded file to"),
		}, []string{"bucket_name", "object_name", "file_path"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			bucket := tools.StringArg(args, "bucket_name", "")
			key := tools.StringArg(args, "object_name", "")
			path := tools.StringArg(args, "file_path", "")

			if err := store.GetFile(ctx, bucket, key, path); err != nil {
				return nil, errors.New(errors.ToolExecution, "downloading object").WithCause(err)
			}
			return tools.NewSuccessToolResult(
				fmt.Sprintf("Downloaded %s/%s to %s", bucket, key, path)), nil
		})
}
