package export

import (
	"context"
	"fmt"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/mermaid"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/resolve"
)

// Diagram resolves a diagram by name and builds its flowchart.
// Returns [icepanel.ErrNotFound] when no diagram carries the name.
func (e *Exporter) Diagram(ctx context.Context, name string) (*mermaid.Flowchart, error) {
	id, err := e.client.FindDiagram(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.DiagramByID(ctx, id, name)
}

// DiagramByID builds the flowchart for a known diagram id. The name only
// titles the chart; it is not used for lookups.
func (e *Exporter) DiagramByID(ctx context.Context, diagramID, name string) (*mermaid.Flowchart, error) {
	data, err := e.resolver.Resolve(ctx, diagramID)
	if err != nil {
		return nil, fmt.Errorf("fetch diagram data: %w", err)
	}

	relationships := data.Relationships
	if len(relationships) == 0 {
		relationships = e.inferencer.Infer(ctx, diagramID, data.Objects)
	}
	e.logger.Debugf("diagram %s: %d objects, %d relationships", diagramID, data.Objects.Len(), len(relationships))

	b := &hierarchyBuilder{
		store:      e.resolver.Store(),
		objects:    data.Objects,
		chart:      mermaid.NewFlowchart(name),
		diagramFor: make(map[string]string),
		visiting:   make(map[string]bool),
	}
	b.build(ctx)
	b.addLinks(ctx, relationships)
	return b.chart, nil
}

// hierarchyBuilder converts the flat object map of one diagram into the
// flowchart's rooted forest, synthesizing missing parent group nodes on
// demand so that every node's parent is materialized before the node
// itself.
type hierarchyBuilder struct {
	store      *resolve.Store
	objects    *icepanel.ObjectMap
	chart      *mermaid.Flowchart
	diagramFor map[string]string
	visiting   map[string]bool
}

func (b *hierarchyBuilder) build(ctx context.Context) {
	// First-in-document-order reverse map from model id to diagram id,
	// used to translate model-level structural parents back into this
	// diagram's scope.
	for _, id := range b.objects.IDs() {
		obj, _ := b.objects.Get(id)
		if obj.ModelID != "" {
			if _, ok := b.diagramFor[obj.ModelID]; !ok {
				b.diagramFor[obj.ModelID] = id
			}
		}
	}

	// Pure groups first: a group is more likely to be a needed parent for
	// a later model-backed object. Ordering within each class follows the
	// document, and ensureNode covers any parent the ordering misses.
	for _, id := range b.objects.IDs() {
		if obj, _ := b.objects.Get(id); obj.ModelID == "" {
			b.addGroup(obj)
		}
	}
	for _, id := range b.objects.IDs() {
		if obj, _ := b.objects.Get(id); obj.ModelID != "" {
			b.addModelBacked(ctx, obj)
		}
	}
}

func (b *hierarchyBuilder) addModelBacked(ctx context.Context, obj icepanel.DiagramObject) {
	model := b.store.Get(ctx, obj.ModelID)

	parentID := obj.ParentID
	if parentID == "" && model.ParentID != "" {
		// No placement parent: fall back to the model object's structural
		// parent, if some object in this diagram carries it.
		if diagramID, ok := b.diagramFor[model.ParentID]; ok {
			parentID = diagramID
		}
	}

	b.ensureNode(parentID)
	b.chart.AddNode(obj.ID, model.Name, parentID)
}

func (b *hierarchyBuilder) addGroup(obj icepanel.DiagramObject) {
	name := obj.Name
	if name == "" {
		// An unnamed object is only worth rendering when it looks like a
		// structural boundary.
		if obj.Type == "boundary" || obj.HasStyle() {
			name = "Group"
		} else {
			return
		}
	}

	b.ensureNode(obj.ParentID)
	if !b.chart.HasNode(obj.ID) {
		b.chart.AddNode(obj.ID, name, obj.ParentID)
	}
}

// ensureNode materializes the node for id, recursively materializing its
// ancestors first. Ids that are empty, already present, or unknown to the
// diagram are left alone.
func (b *hierarchyBuilder) ensureNode(id string) {
	if id == "" || b.chart.HasNode(id) || b.visiting[id] {
		return
	}
	obj, ok := b.objects.Get(id)
	if !ok {
		return
	}

	b.visiting[id] = true
	b.ensureNode(obj.ParentID)
	delete(b.visiting, id)

	name := obj.Name
	if name == "" {
		name = "Group"
	}
	b.chart.AddNode(id, name, obj.ParentID)
}

// addLinks records one link per relationship whose endpoints both resolved
// to a diagram object or an already-materialized node. A relationship with
// no display text falls back to the name of its model-level connection.
func (b *hierarchyBuilder) addLinks(ctx context.Context, relationships []icepanel.Relationship) {
	for _, rel := range relationships {
		label := rel.DisplayLabel()
		if label == "" && rel.ModelID != "" {
			label = b.store.Get(ctx, rel.ModelID).Name
		}

		if b.knows(rel.SourceID) && b.knows(rel.TargetID) {
			b.chart.AddLink(rel.SourceID, rel.TargetID, label)
		}
	}
}

func (b *hierarchyBuilder) knows(id string) bool {
	return b.objects.Has(id) || b.chart.HasNode(id)
}
