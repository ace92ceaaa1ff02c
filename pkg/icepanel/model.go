package icepanel

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetModelObject fetches one model object by id.
//
// The endpoint has returned both a bare object and a modelObject-wrapped
// one; both shapes are accepted. A 200 whose body carries neither shape
// returns [ErrUnexpectedShape] so the caller can substitute a placeholder.
func (c *Client) GetModelObject(ctx context.Context, modelObjectID string) (ModelObject, error) {
	raw, err := c.GetRaw(ctx, "/model/objects/"+modelObjectID)
	if err != nil {
		return ModelObject{}, err
	}

	var wrapped struct {
		ModelObject *ModelObject `json:"modelObject"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.ModelObject != nil {
		return *wrapped.ModelObject, nil
	}

	var obj ModelObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ModelObject{}, fmt.Errorf("%w: model object %s: %v", ErrUnexpectedShape, modelObjectID, err)
	}
	if obj.ID == "" {
		return ModelObject{}, fmt.Errorf("%w: model object %s: no id in response", ErrUnexpectedShape, modelObjectID)
	}
	return obj, nil
}

// ListModelConnections fetches the full diagram-independent set of
// model-level connections.
func (c *Client) ListModelConnections(ctx context.Context) ([]Connection, error) {
	var resp struct {
		ModelConnections []Connection `json:"modelConnections"`
	}
	if err := c.Get(ctx, "/model/connections", &resp); err != nil {
		return nil, err
	}
	return resp.ModelConnections, nil
}
