package icepanel

import (
	"context"
	"encoding/json"
	"fmt"
)

// SubresourcePath identifies one of the diagram sub-resource endpoints the
// API has exposed diagram content under at various times.
type SubresourcePath string

// Diagram sub-resource endpoints, in the order the resolver probes them.
const (
	SubresourceContent       SubresourcePath = "/content"
	SubresourceObjects       SubresourcePath = "/objects"
	SubresourceElements      SubresourcePath = "/elements"
	SubresourceRelationships SubresourcePath = "/relationships"
)

// ListDiagrams returns the headers of every diagram in the landscape version.
func (c *Client) ListDiagrams(ctx context.Context) ([]DiagramHeader, error) {
	var resp struct {
		Diagrams []DiagramHeader `json:"diagrams"`
	}
	if err := c.Get(ctx, "/diagrams", &resp); err != nil {
		return nil, err
	}
	return resp.Diagrams, nil
}

// FindDiagram resolves a diagram name to its id.
// Returns [ErrNotFound] if no diagram carries the name.
func (c *Client) FindDiagram(ctx context.Context, name string) (string, error) {
	diagrams, err := c.ListDiagrams(ctx)
	if err != nil {
		return "", err
	}
	for _, d := range diagrams {
		if d.Name == name {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("%w: diagram %q", ErrNotFound, name)
}

// DiagramPayload fetches the primary diagram resource and returns the raw
// response body. The payload's shape varies across API versions; the resolve
// package owns the logic of digging objects and relationships out of it.
func (c *Client) DiagramPayload(ctx context.Context, diagramID string) (json.RawMessage, error) {
	return c.GetRaw(ctx, "/diagrams/"+diagramID)
}

// DiagramSubresource fetches one of the diagram sub-resource endpoints and
// returns the raw response body.
func (c *Client) DiagramSubresource(ctx context.Context, diagramID string, sub SubresourcePath) (json.RawMessage, error) {
	return c.GetRaw(ctx, "/diagrams/"+diagramID+string(sub))
}
