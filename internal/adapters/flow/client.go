// Package flow adapts a Langflow-compatible flow engine to the tool
// interface.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adapterkit/mcp-adapters/internal/config"
)

// Flow is one flow or saved component in the engine.
type Flow struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	IsComponent bool                   `json:"is_component,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Engine is the backend contract the flow tools run against.
type Engine interface {
	ListFlows(ctx context.Context) ([]Flow, error)
	GetFlow(ctx context.Context, id string) (*Flow, error)
	CreateFlow(ctx context.Context, flow *Flow) (*Flow, error)
	UpdateFlowData(ctx context.Context, id string, data map[string]interface{}) error
	DeleteFlow(ctx context.Context, id string) error
}

// Client is an Engine over the flow engine's REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client from the flow configuration.
func NewClient(cfg config.FlowConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("flow engine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("flow engine returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// ListFlows lists all flows.
func (c *Client) ListFlows(ctx context.Context) ([]Flow, error) {
	var flows []Flow
	if err := c.do(ctx, http.MethodGet, "/api/v1/flows/", nil, &flows); err != nil {
		return nil, err
	}
	return flows, nil
}

// GetFlow fetches one flow by ID.
func (c *Client) GetFlow(ctx context.Context, id string) (*Flow, error) {
	var flow Flow
	if err := c.do(ctx, http.MethodGet, "/api/v1/flows/"+id, nil, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// CreateFlow creates a flow or saved component.
func (c *Client) CreateFlow(ctx context.Context, flow *Flow) (*Flow, error) {
	var created Flow
	if err := c.do(ctx, http.MethodPost, "/api/v1/flows/", flow, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFlowData replaces the graph data of a flow.
func (c *Client) UpdateFlowData(ctx context.Context, id string, data map[string]interface{}) error {
	return c.do(ctx, http.MethodPatch, "/api/v1/flows/"+id, map[string]interface{}{"data": data}, nil)
}

// DeleteFlow deletes a flow by ID.
func (c *Client) DeleteFlow(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/flows/"+id, nil, nil)
}
