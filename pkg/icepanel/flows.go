package icepanel

import (
	"context"
	"fmt"
)

// ListFlows returns the headers of every flow in the landscape version.
func (c *Client) ListFlows(ctx context.Context) ([]FlowHeader, error) {
	var resp struct {
		Flows []FlowHeader `json:"flows"`
	}
	if err := c.Get(ctx, "/flows", &resp); err != nil {
		return nil, err
	}
	return resp.Flows, nil
}

// FindFlow resolves a flow name to its id.
// Returns [ErrNotFound] if no flow carries the name.
func (c *Client) FindFlow(ctx context.Context, name string) (string, error) {
	flows, err := c.ListFlows(ctx)
	if err != nil {
		return "", err
	}
	for _, f := range flows {
		if f.Name == name {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("%w: flow %q", ErrNotFound, name)
}

// GetFlow fetches one flow with its steps.
// A response without the expected flow wrapper returns [ErrUnexpectedShape].
func (c *Client) GetFlow(ctx context.Context, flowID string) (*Flow, error) {
	var resp struct {
		Flow *Flow `json:"flow"`
	}
	if err := c.Get(ctx, "/flows/"+flowID, &resp); err != nil {
		return nil, err
	}
	if resp.Flow == nil {
		return nil, fmt.Errorf("%w: flow %s", ErrUnexpectedShape, flowID)
	}
	return resp.Flow, nil
}
