package icepanel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ModelObject is a diagram-independent architecture entity (system,
// container, component). Placeholder marks objects the API could not
// deliver; the exporter substitutes them for failed lookups instead of
// aborting, so callers can distinguish a resolved object from a synthesized
// one.
type ModelObject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId,omitempty"`

	Placeholder bool `json:"-"`
}

// DiagramObject is a visual placement of a model object, or a pure visual
// group, within one diagram. Its ID is diagram-scoped and distinct from the
// model object id it may point at.
type DiagramObject struct {
	ID       string          `json:"id"`
	ModelID  string          `json:"modelId,omitempty"`
	ParentID string          `json:"parentId,omitempty"`
	Name     string          `json:"name,omitempty"`
	Type     string          `json:"type,omitempty"`
	Style    json.RawMessage `json:"style,omitempty"`
}

// HasStyle reports whether the object carries a style attribute. An unnamed
// object with a style is treated as a structural boundary worth rendering.
func (o DiagramObject) HasStyle() bool {
	return len(o.Style) > 0 && !bytes.Equal(o.Style, []byte("null"))
}

// ObjectMap is a collection of diagram objects keyed by diagram-scoped id.
// Unlike a plain map it preserves the key order of the JSON document it was
// decoded from, which pins every "first match wins" lookup downstream to a
// deterministic order.
type ObjectMap struct {
	ids     []string
	objects map[string]DiagramObject
}

// NewObjectMap creates an empty ObjectMap.
func NewObjectMap() *ObjectMap {
	return &ObjectMap{objects: make(map[string]DiagramObject)}
}

// Set inserts or replaces an object. New ids are appended to the iteration
// order; replacing keeps the original position.
func (m *ObjectMap) Set(id string, o DiagramObject) {
	if m.objects == nil {
		m.objects = make(map[string]DiagramObject)
	}
	if _, ok := m.objects[id]; !ok {
		m.ids = append(m.ids, id)
	}
	if o.ID == "" {
		o.ID = id
	}
	m.objects[id] = o
}

// Get returns the object for a diagram-scoped id.
func (m *ObjectMap) Get(id string) (DiagramObject, bool) {
	if m == nil || m.objects == nil {
		return DiagramObject{}, false
	}
	o, ok := m.objects[id]
	return o, ok
}

// Has reports whether id is present.
func (m *ObjectMap) Has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// IDs returns the diagram-scoped ids in document order.
// The returned slice must not be modified.
func (m *ObjectMap) IDs() []string {
	if m == nil {
		return nil
	}
	return m.ids
}

// Len returns the number of objects.
func (m *ObjectMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// UnmarshalJSON decodes a JSON object of id -> DiagramObject while recording
// the document order of the keys. A JSON null decodes to an empty map.
func (m *ObjectMap) UnmarshalJSON(data []byte) error {
	m.ids = nil
	m.objects = make(map[string]DiagramObject)

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("object map: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var obj DiagramObject
		if err := dec.Decode(&obj); err != nil {
			return fmt.Errorf("object map: decode %q: %w", key, err)
		}
		m.Set(key, obj)
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the map as a plain JSON object.
func (m *ObjectMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]DiagramObject, len(m.ids))
	for id, o := range m.objects {
		out[id] = o
	}
	return json.Marshal(out)
}

// Relationship is a directed edge between two diagram objects, identified by
// their diagram-scoped ids. Label and Name are alternative places the API
// puts the display text; ModelID points at the model-level connection when
// one is known.
type Relationship struct {
	ID       string `json:"id,omitempty"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Label    string `json:"label,omitempty"`
	Name     string `json:"name,omitempty"`
	ModelID  string `json:"modelId,omitempty"`
}

// DisplayLabel returns the edge text: Label when set, otherwise Name.
func (r Relationship) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// RelationshipList decodes from either a JSON array of relationships or a
// keyed JSON object whose values are relationships. The keyed form is
// flattened to its values, sorted by key so the result is deterministic.
type RelationshipList []Relationship

// UnmarshalJSON accepts both list and map shapes. Null decodes to nil.
func (l *RelationshipList) UnmarshalJSON(data []byte) error {
	*l = nil
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rels []Relationship
		if err := json.Unmarshal(trimmed, &rels); err != nil {
			return err
		}
		*l = rels
		return nil
	}

	var keyed map[string]Relationship
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rel := keyed[k]
		if rel.ID == "" {
			rel.ID = k
		}
		*l = append(*l, rel)
	}
	return nil
}

// Connection is a model-level relationship between two model objects,
// independent of any diagram. The API has used two naming schemes for the
// endpoints; From and To paper over both.
type Connection struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OriginID      string `json:"originId"`
	SourceID      string `json:"sourceId"`
	TargetID      string `json:"targetId"`
	DestinationID string `json:"destinationId"`

	// Diagrams lists the diagram ids this connection is explicitly visible
	// in. An empty map does not mean hidden everywhere; see resolve.Inferencer.
	Diagrams map[string]json.RawMessage `json:"diagrams"`
}

// From returns the origin model object id under either naming scheme.
func (c Connection) From() string {
	if c.OriginID != "" {
		return c.OriginID
	}
	return c.SourceID
}

// To returns the destination model object id under either naming scheme.
func (c Connection) To() string {
	if c.TargetID != "" {
		return c.TargetID
	}
	return c.DestinationID
}

// VisibleIn reports whether the connection explicitly lists diagramID.
func (c Connection) VisibleIn(diagramID string) bool {
	_, ok := c.Diagrams[diagramID]
	return ok
}

// Flow is an ordered sequence of interactions between the objects of one
// diagram.
type Flow struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	DiagramID string              `json:"diagramId"`
	Steps     map[string]FlowStep `json:"steps"`
}

// FlowStep is one interaction in a flow. An empty TargetID signals a
// self-interaction of the origin object.
type FlowStep struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Description string `json:"description"`
	OriginID    string `json:"originId"`
	TargetID    string `json:"targetId"`
}

// SortedSteps returns the flow's steps ordered by ascending index, ties
// broken by step id so rendering stays deterministic. Step ids missing from
// the step body are filled from the map key.
func (f *Flow) SortedSteps() []FlowStep {
	steps := make([]FlowStep, 0, len(f.Steps))
	for key, s := range f.Steps {
		if s.ID == "" {
			s.ID = key
		}
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Index != steps[j].Index {
			return steps[i].Index < steps[j].Index
		}
		return steps[i].ID < steps[j].ID
	})
	return steps
}

// FlowHeader is a flow list entry.
type FlowHeader struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DiagramID string `json:"diagramId"`
}

// DiagramHeader is a diagram list entry.
type DiagramHeader struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
