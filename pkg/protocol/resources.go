package protocol

// Resource is the wire-level resource descriptor sent to clients.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourcesListParams represents the parameters for a resources/list request.
type ResourcesListParams struct {
	Cursor string `json:"cursor,omitempty"`
}

// ResourcesListResult represents the result of a resources/list request.
type ResourcesListResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// ResourcesReadParams represents the parameters for a resources/read request.
type ResourcesReadParams struct {
	URI string `json:"uri"`
}

// ResourceContents is one payload block of a resources/read result.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ResourcesReadResult represents the result of a resources/read request.
type ResourcesReadResult struct {
	Contents []ResourceContents `json:"contents"`
}

// ResourcesListChangedParams represents the parameters for a
// resources/list_changed notification.
type ResourcesListChangedParams struct{}
