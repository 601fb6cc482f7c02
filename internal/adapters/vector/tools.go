package vector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

const defaultVectorSize = 384

// Tools returns the vector collection tool set backed by collections.
func Tools(collections Collections) []*tools.ToolWithHandler {
	return []*tools.ToolWithHandler{
		writeCollectionTool(collections),
		readCollectionTool(collections),
		deleteCollectionTool(collections),
		listCollectionsTool(collections),
	}
}

func writeCollectionTool(collections Collections) *tools.ToolWithHandler {
	return tools.NewTool(
		"qdrant-write-collection",
		"Create a vector collection with the given size and distance metric",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"collection_name": protocol.StringSchema("Name of the collection to create"),
			"vector_size":     protocol.IntegerSchema("Dimensionality of the vectors").WithDefault(defaultVectorSize),
			"distance":        protocol.StringEnumSchema("Distance metric", "Cosine", "Euclidean", "Dot").WithDefault("Cosine"),
		}, []string{"collection_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "collection_name", "")
			size := tools.IntArg(args, "vector_size", defaultVectorSize)
			distance := tools.StringArg(args, "distance", "Cosine")

			exists, err := collections.Exists(ctx, name)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "checking collection").WithCause(err)
			}
			if exists {
				return nil, errors.Newf(errors.ToolExecution, "collection %s already exists", name)
			}

			if err := collections.Create(ctx, name, uint64(size), distance); err != nil {
				return nil, errors.New(errors.ToolExecution, "creating collection").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Collection %s created with vector size %d and %s distance", name, size, distance)), nil
		})
}

func readCollectionTool(collections Collections) *tools.ToolWithHandler {
	return tools.NewTool(
		"qdrant-read-collection",
		"Read the configuration and point count of a collection",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"collection_name": protocol.StringSchema("Name of the collection to read"),
		}, []string{"collection_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "collection_name", "")

			exists, err := collections.Exists(ctx, name)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "checking collection").WithCause(err)
			}
			if !exists {
				return nil, errors.Newf(errors.ToolExecution, "collection not found: %s", name)
			}

			info, err := collections.Info(ctx, name)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "reading collection").WithCause(err)
			}

			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "encoding result").WithCause(err)
			}
			return tools.NewSuccessToolResult(string(data)), nil
		})
}

func deleteCollectionTool(collections Collections) *tools.ToolWithHandler {
	return tools.NewTool(
		"qdrant-delete-collection",
		"Delete a collection if it exists",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"collection_name": protocol.StringSchema("Name of the collection to delete"),
		}, []string{"collection_name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "collection_name", "")

			exists, err := collections.Exists(ctx, name)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "checking collection").WithCause(err)
			}
			if !exists {
				// Deleting a missing collection is not a failure.
				return tools.NewSuccessToolResult(fmt.Sprintf(
					"Collection %s does not exist. Nothing to delete.", name)), nil
			}

			if err := collections.Delete(ctx, name); err != nil {
				return nil, errors.New(errors.ToolExecution, "deleting collection").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf("Collection %s deleted", name)), nil
		})
}

func listCollectionsTool(collections Collections) *tools.ToolWithHandler {
	return tools.NewTool(
		"qdrant-list-collections",
		"List all vector collections",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{}, nil),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			names, err := collections.List(ctx)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "listing collections").WithCause(err)
			}

			if len(names) == 0 {
				return tools.NewSuccessToolResult("No collections found"), nil
			}

			data, err := json.MarshalIndent(names, "", "  ")
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "encoding result").WithCause(err)
			}
			return tools.NewSuccessToolResult(string(data)), nil
		})
}
