package resolve

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// DiagramData is the normalized result of resolving one diagram: its
// objects keyed by diagram-scoped id, and its relationships as a flat list.
// Both collections are always non-nil; either may be empty.
type DiagramData struct {
	Objects       *icepanel.ObjectMap
	Relationships []icepanel.Relationship
}

// Resolver produces DiagramData for diagram ids.
//
// The API has shipped diagram content in at least four places: on the
// diagram resource itself, under a diagramContent wrapper in the same
// response, and on dedicated sub-resource endpoints. The Resolver probes
// those locations in a fixed priority order, adopting the first non-empty
// objects candidate and the first non-empty relationships candidate
// independently, and stops as soon as it has both.
//
// Results, including empty ones, are cached by diagram id; a diagram is
// never fetched twice within one run.
type Resolver struct {
	client   *icepanel.Client
	logger   *log.Logger
	store    *Store
	diagrams map[string]*DiagramData
}

// NewResolver creates a Resolver with a fresh Store.
func NewResolver(client *icepanel.Client, logger *log.Logger) *Resolver {
	return &Resolver{
		client:   client,
		logger:   logger,
		store:    NewStore(client, logger),
		diagrams: make(map[string]*DiagramData),
	}
}

// Store returns the model-object store shared by this resolver.
func (r *Resolver) Store() *Store { return r.store }

// payload is a decoded JSON object whose values stay raw until a strategy
// asks for them.
type payload map[string]json.RawMessage

func parsePayload(raw json.RawMessage) payload {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return p
}

// at drills into nested payload objects. An empty path returns p's raw form.
func (p payload) at(path ...string) (json.RawMessage, bool) {
	if p == nil {
		return nil, false
	}
	if len(path) == 0 {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, false
		}
		return data, true
	}
	raw, ok := p[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return raw, true
	}
	return parsePayload(raw).at(path[1:]...)
}

// objectsAt decodes the value at path into an object map.
// It reports success only for a non-empty result.
func objectsAt(p payload, path ...string) (*icepanel.ObjectMap, bool) {
	raw, ok := p.at(path...)
	if !ok {
		return nil, false
	}
	m := icepanel.NewObjectMap()
	if err := json.Unmarshal(raw, m); err != nil || m.Len() == 0 {
		return nil, false
	}
	return m, true
}

// relationshipsAt decodes the value at path into a relationship list,
// accepting both the array and keyed-map shapes.
// It reports success only for a non-empty result.
func relationshipsAt(p payload, path ...string) ([]icepanel.Relationship, bool) {
	raw, ok := p.at(path...)
	if !ok {
		return nil, false
	}
	var l icepanel.RelationshipList
	if err := json.Unmarshal(raw, &l); err != nil || len(l) == 0 {
		return nil, false
	}
	return l, true
}

// subresourceProbe describes where one sub-resource endpoint keeps its
// objects. Relationships are probed the same way for every endpoint.
type subresourceProbe struct {
	path       icepanel.SubresourcePath
	objectKeys [][]string
}

// subresourceProbes is the fixed probe order for diagrams whose primary
// payload is missing objects or relationships.
var subresourceProbes = []subresourceProbe{
	{icepanel.SubresourceContent, [][]string{{"diagramContent", "objects"}}},
	{icepanel.SubresourceObjects, [][]string{{"objects"}, {}}},
	{icepanel.SubresourceElements, [][]string{{"elements"}}},
	{icepanel.SubresourceRelationships, nil},
}

// relationshipKeys is where relationships hide inside any diagram response.
var relationshipKeys = [][]string{
	{"diagramContent", "relationships"},
	{"relationships"},
}

// Resolve returns the objects and relationships of a diagram.
//
// The returned DiagramData is never nil, even on error: a failed primary
// fetch yields empty collections alongside the error, and the empty result
// is cached so the diagram is not fetched again. If no objects can be found
// in any location a warning is logged and the cached result stays empty.
func (r *Resolver) Resolve(ctx context.Context, diagramID string) (*DiagramData, error) {
	if data, ok := r.diagrams[diagramID]; ok {
		return data, nil
	}

	data := &DiagramData{Objects: icepanel.NewObjectMap()}
	r.diagrams[diagramID] = data

	r.logger.Debugf("fetching diagram %s", diagramID)
	raw, err := r.client.DiagramPayload(ctx, diagramID)
	if err != nil {
		r.logger.Warnf("failed to fetch diagram %s: %v", diagramID, err)
		return data, err
	}

	root := parsePayload(raw)

	// Primary payload, then the content wrapper in the same response.
	for _, path := range [][]string{{"diagram", "objects"}, {"diagramContent", "objects"}} {
		if m, ok := objectsAt(root, path...); ok {
			data.Objects = m
			break
		}
	}
	for _, path := range [][]string{{"diagram", "relationships"}, {"diagramContent", "relationships"}} {
		if rels, ok := relationshipsAt(root, path...); ok {
			data.Relationships = rels
			break
		}
	}

	if data.Objects.Len() == 0 || len(data.Relationships) == 0 {
		r.probeSubresources(ctx, diagramID, data)
	}

	if data.Objects.Len() == 0 {
		r.logger.Warnf("could not locate diagram objects for %s", diagramID)
	}
	return data, nil
}

// probeSubresources walks the sub-resource endpoints in order, adopting an
// objects candidate and a relationships candidate independently, and stops
// once both are filled. Endpoint errors are soft: the next endpoint is
// tried.
func (r *Resolver) probeSubresources(ctx context.Context, diagramID string, data *DiagramData) {
	for _, probe := range subresourceProbes {
		if data.Objects.Len() > 0 && len(data.Relationships) > 0 {
			return
		}

		r.logger.Debugf("probing sub-resource %s for diagram %s", probe.path, diagramID)
		raw, err := r.client.DiagramSubresource(ctx, diagramID, probe.path)
		if err != nil {
			r.logger.Debugf("sub-resource %s: %v", probe.path, err)
			continue
		}

		// The relationships endpoint may return a bare array.
		if probe.path == icepanel.SubresourceRelationships && len(data.Relationships) == 0 {
			var l icepanel.RelationshipList
			if err := json.Unmarshal(raw, &l); err == nil && len(l) > 0 {
				data.Relationships = l
				r.logger.Debugf("found %d relationships in %s body", len(l), probe.path)
			}
		}

		body := parsePayload(raw)
		if body == nil {
			continue
		}

		if len(data.Relationships) == 0 {
			for _, path := range relationshipKeys {
				if rels, ok := relationshipsAt(body, path...); ok {
					data.Relationships = rels
					r.logger.Debugf("found %d relationships in %s under %v", len(rels), probe.path, path)
					break
				}
			}
		}

		if data.Objects.Len() == 0 {
			for _, path := range probe.objectKeys {
				if m, ok := objectsAt(body, path...); ok {
					data.Objects = m
					r.logger.Debugf("found %d objects in %s", m.Len(), probe.path)
					break
				}
			}
		}
	}
}

// DiagramObject looks up a single object within a diagram, resolving the
// diagram on first use. Misses are logged and reported through the second
// return value; they never abort the caller.
func (r *Resolver) DiagramObject(ctx context.Context, diagramID, objectID string) (icepanel.DiagramObject, bool) {
	if objectID == "" {
		return icepanel.DiagramObject{}, false
	}
	data, err := r.Resolve(ctx, diagramID)
	if err != nil {
		return icepanel.DiagramObject{}, false
	}
	obj, ok := data.Objects.Get(objectID)
	if !ok {
		r.logger.Warnf("object %s not found in diagram %s", objectID, diagramID)
	}
	return obj, ok
}
