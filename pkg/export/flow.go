package export

import (
	"context"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/mermaid"
)

// Flow resolves a flow by name and builds its sequence diagram.
// Returns [icepanel.ErrNotFound] when no flow carries the name.
//
// Steps are walked in ascending index order. A step whose origin object
// cannot be resolved in the flow's diagram is skipped with a logged reason;
// a step whose target cannot be resolved degrades to a self-interaction of
// its origin. Participants are the model objects behind the diagram
// objects, deduplicated in first-seen order.
func (e *Exporter) Flow(ctx context.Context, name string) (*mermaid.Sequence, error) {
	id, err := e.client.FindFlow(ctx, name)
	if err != nil {
		return nil, err
	}
	flow, err := e.client.GetFlow(ctx, id)
	if err != nil {
		return nil, err
	}

	seq := mermaid.NewSequence(flow.Name)
	store := e.resolver.Store()

	for _, step := range flow.SortedSteps() {
		origin, ok := e.resolver.DiagramObject(ctx, flow.DiagramID, step.OriginID)
		if !ok {
			e.logger.Warnf("skipping step %s: origin object %s could not be found", step.ID, step.OriginID)
			continue
		}
		originModel := store.Get(ctx, origin.ModelID)
		seq.AddParticipant(mermaid.Participant{ID: originModel.ID, Name: originModel.Name})

		targetID := ""
		if step.TargetID != "" {
			if target, ok := e.resolver.DiagramObject(ctx, flow.DiagramID, step.TargetID); ok {
				targetModel := store.Get(ctx, target.ModelID)
				seq.AddParticipant(mermaid.Participant{ID: targetModel.ID, Name: targetModel.Name})
				targetID = targetModel.ID
			}
		}

		seq.AddStep(mermaid.Step{
			ID:          step.ID,
			Type:        step.Type,
			Description: step.Description,
			OriginID:    originModel.ID,
			TargetID:    targetID,
		})
	}

	return seq, nil
}
