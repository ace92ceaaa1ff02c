package resolve

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// Store memoizes model-object lookups by id for the lifetime of one run.
// Entries are written once and never invalidated; that is safe because the
// exporter runs once per invocation and does not observe live model updates.
type Store struct {
	client  *icepanel.Client
	logger  *log.Logger
	objects map[string]icepanel.ModelObject
}

// NewStore creates an empty Store backed by client.
func NewStore(client *icepanel.Client, logger *log.Logger) *Store {
	return &Store{
		client:  client,
		logger:  logger,
		objects: make(map[string]icepanel.ModelObject),
	}
}

// Get returns the model object for id, fetching it on first use.
//
// Get never fails: an empty id returns a placeholder without a network
// call, and a fetch that errors or comes back shapeless is logged and
// replaced by a placeholder so downstream rendering always has a name.
// Placeholders for failed fetches are cached like real objects, so a broken
// id costs one request per run.
func (s *Store) Get(ctx context.Context, id string) icepanel.ModelObject {
	if id == "" {
		return icepanel.ModelObject{Name: "Unknown", Type: "unknown", Placeholder: true}
	}
	if obj, ok := s.objects[id]; ok {
		return obj
	}

	obj, err := s.client.GetModelObject(ctx, id)
	if err != nil {
		s.logger.Warnf("failed to fetch model object %s: %v", id, err)
		obj = icepanel.ModelObject{ID: id, Name: "Unknown Model Object", Type: "unknown", Placeholder: true}
	}
	s.objects[id] = obj
	return obj
}

// Len reports how many model objects have been cached so far.
func (s *Store) Len() int { return len(s.objects) }
