package resolve

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// Inferencer derives relationships for a diagram from the global
// model-connections resource. It is used only when a diagram that is being
// fully rendered resolved to zero relationships; single-object lookups never
// trigger inference.
type Inferencer struct {
	client *icepanel.Client
	logger *log.Logger
}

// NewInferencer creates an Inferencer backed by client.
func NewInferencer(client *icepanel.Client, logger *log.Logger) *Inferencer {
	return &Inferencer{client: client, logger: logger}
}

// Infer fetches all model-level connections and synthesizes a relationship
// for every connection whose endpoints are both placed in the diagram.
//
// A connection that explicitly lists diagramID in its visibility map is
// always accepted. Connections without the flag are accepted too, on the
// heuristic that a C4 diagram implies an edge between two present elements
// unless the service hides it from the flagged set. This can over-include
// edges a diagram intentionally hides; it is a documented trade-off, not a
// guarantee.
//
// The model-to-diagram reverse lookup takes the first diagram object in
// document order whose modelId matches, so duplicate placements of one
// model object resolve deterministically.
func (i *Inferencer) Infer(ctx context.Context, diagramID string, objects *icepanel.ObjectMap) []icepanel.Relationship {
	conns, err := i.client.ListModelConnections(ctx)
	if err != nil {
		i.logger.Warnf("failed to fetch model connections: %v", err)
		return nil
	}
	i.logger.Debugf("considering %d model connections for diagram %s", len(conns), diagramID)

	// First-seen-in-document-order reverse lookup.
	diagramFor := make(map[string]string)
	for _, id := range objects.IDs() {
		obj, _ := objects.Get(id)
		if obj.ModelID == "" {
			continue
		}
		if _, ok := diagramFor[obj.ModelID]; !ok {
			diagramFor[obj.ModelID] = id
		}
	}

	var rels []icepanel.Relationship
	for _, conn := range conns {
		src, srcOK := diagramFor[conn.From()]
		dst, dstOK := diagramFor[conn.To()]
		if !srcOK || !dstOK {
			continue
		}
		rels = append(rels, icepanel.Relationship{
			SourceID: src,
			TargetID: dst,
			Label:    conn.Name,
			ModelID:  conn.ID,
		})
	}

	i.logger.Debugf("inferred %d relationships for diagram %s", len(rels), diagramID)
	return rels
}
