package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

const defaultNodePosition = 100

// Tools returns the flow engine tool set. The generator backs the
// generate-component tool and may be nil to disable it.
func Tools(engine Engine, generator Generator, outputDir string) []*tools.ToolWithHandler {
	list := []*tools.ToolWithHandler{
		listFlowsTool(engine),
		createFlowTool(engine),
		deleteFlowTool(engine),
		uploadComponentTool(engine),
		addComponentTool(engine),
	}
	if generator != nil {
		list = append(list, generateComponentTool(generator, outputDir))
	}
	return list
}

func listFlowsTool(engine Engine) *tools.ToolWithHandler {
	return tools.NewTool(
		"list-flows",
		"List flows, optionally filtered by name",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"filter_name": protocol.StringSchema("Only list flows whose name contains this text"),
		}, nil),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			filter := tools.StringArg(args, "filter_name", "")

			flows, err := engine.ListFlows(ctx)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "listing flows").WithCause(err)
			}

			matched := make([]map[string]string, 0, len(flows))
			for _, flow := range flows {
				if filter != "" && !strings.Contains(strings.ToLower(flow.Name), strings.ToLower(filter)) {
					continue
				}
				matched = append(matched, map[string]string{
					"id":          flow.ID,
					"name":        flow.Name,
					"description": flow.Description,
				})
			}

			data, err := json.MarshalIndent(matched, "", "  ")
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "encoding result").WithCause(err)
			}
			return tools.NewSuccessToolResult(string(data)), nil
		})
}

func createFlowTool(engine Engine) *tools.ToolWithHandler {
	return tools.NewTool(
		"create-flow",
		"Create a new empty flow",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"name":        protocol.StringSchema("Name of the flow"),
			"description": protocol.StringSchema("Description of the flow"),
		}, []string{"name"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			created, err := engine.CreateFlow(ctx, &Flow{
				Name:        tools.StringArg(args, "name", ""),
				Description: tools.StringArg(args, "description", ""),
				Data: map[string]interface{}{
					"nodes": []interface{}{},
					"edges": []interface{}{},
				},
			})
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "creating flow").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Flow %s created with id %s", created.Name, created.ID)), nil
		})
}

func deleteFlowTool(engine Engine) *tools.ToolWithHandler {
	return tools.NewTool(
		"delete-flow",
		"Delete a flow by its id",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"flow_id": protocol.StringSchema("Id of the flow to delete"),
		}, []string{"flow_id"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			id := tools.StringArg(args, "flow_id", "")
			if err := engine.DeleteFlow(ctx, id); err != nil {
				return nil, errors.New(errors.ToolExecution, "deleting flow").WithCause(err)
			}
			return tools.NewSuccessToolResult("Flow " + id + " deleted"), nil
		})
}

func uploadComponentTool(engine Engine) *tools.ToolWithHandler {
	return tools.NewTool(
		"upload-saved-component",
		"Upload a saved component file to the flow engine",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"file_path": protocol.StringSchema("Path of the saved component JSON file"),
		}, []string{"file_path"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			path := tools.StringArg(args, "file_path", "")

			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "reading component file").WithCause(err)
			}

			var component Flow
			if err := json.Unmarshal(data, &component); err != nil {
				return nil, errors.New(errors.ToolExecution, "parsing component file").WithCause(err)
			}
			if component.Name == "" {
				component.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			component.ID = ""
			component.IsComponent = true

			created, err := engine.CreateFlow(ctx, &component)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "uploading component").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Component %s uploaded with id %s", created.Name, created.ID)), nil
		})
}

func addComponentTool(engine Engine) *tools.ToolWithHandler {
	return tools.NewTool(
		"add-component-to-flow",
		"Add a component node to an existing flow",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"flow_id":        protocol.StringSchema("Id of the flow to modify"),
			"component_type": protocol.StringSchema("Type of the component node to add"),
			"x":              protocol.NumberSchema("Horizontal position of the node").WithDefault(defaultNodePosition),
			"y":              protocol.NumberSchema("Vertical position of the node").WithDefault(defaultNodePosition),
		}, []string{"flow_id", "component_type"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			flowID := tools.StringArg(args, "flow_id", "")
			componentType := tools.StringArg(args, "component_type", "")
			x := tools.FloatArg(args, "x", defaultNodePosition)
			y := tools.FloatArg(args, "y", defaultNodePosition)

			flow, err := engine.GetFlow(ctx, flowID)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "fetching flow").WithCause(err)
			}

			nodeID := fmt.Sprintf("%s-%s", componentType, uuid.New().String()[:6])
			node := map[string]interface{}{
				"id":       nodeID,
				"type":     "genericNode",
				"position": map[string]interface{}{"x": x, "y": y},
				"data": map[string]interface{}{
					"id":   nodeID,
					"type": componentType,
				},
			}

			data := flow.Data
			if data == nil {
				data = map[string]interface{}{}
			}
			nodes, _ := data["nodes"].([]interface{})
			data["nodes"] = append(nodes, node)

			if err := engine.UpdateFlowData(ctx, flowID, data); err != nil {
				return nil, errors.New(errors.ToolExecution, "updating flow").WithCause(err)
			}
			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Added %s node %s to flow %s at (%g, %g)", componentType, nodeID, flowID, x, y)), nil
		})
}

func generateComponentTool(generator Generator, outputDir string) *tools.ToolWithHandler {
	return tools.NewTool(
		"generate-component",
		"Generate a new component from a description and write it to disk",
		protocol.ObjectSchema(map[string]*protocol.JSONSchema{
			"name":        protocol.StringSchema("Name of the component to generate"),
			"description": protocol.StringSchema("What the component should do"),
		}, []string{"name", "description"}),
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			name := tools.StringArg(args, "name", "")
			description := tools.StringArg(args, "description", "")

			code, err := generator.Generate(ctx, name, description)
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "generating component").WithCause(err)
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return nil, errors.New(errors.ToolExecution, "creating output directory").WithCause(err)
			}

			codePath := filepath.Join(outputDir, name+".py")
			if err := os.WriteFile(codePath, []byte(code), 0o644); err != nil {
				return nil, errors.New(errors.ToolExecution, "writing component code").WithCause(err)
			}

			meta, err := json.MarshalIndent(map[string]string{
				"name":        name,
				"description": description,
				"code_file":   name + ".py",
			}, "", "  ")
			if err != nil {
				return nil, errors.New(errors.ToolExecution, "encoding component metadata").WithCause(err)
			}
			metaPath := filepath.Join(outputDir, name+".json")
			if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
				return nil, errors.New(errors.ToolExecution, "writing component metadata").WithCause(err)
			}

			return tools.NewSuccessToolResult(fmt.Sprintf(
				"Component %s generated: %s, %s", name, codePath, metaPath)), nil
		})
}
