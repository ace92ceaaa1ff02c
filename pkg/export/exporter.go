package export

import (
	"github.com/charmbracelet/log"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/resolve"
)

// Exporter bundles the resolver components needed to build diagrams and
// flows for one invocation.
type Exporter struct {
	client     *icepanel.Client
	logger     *log.Logger
	resolver   *resolve.Resolver
	inferencer *resolve.Inferencer
}

// New creates an Exporter with fresh, empty caches.
func New(client *icepanel.Client, logger *log.Logger) *Exporter {
	return &Exporter{
		client:     client,
		logger:     logger,
		resolver:   resolve.NewResolver(client, logger),
		inferencer: resolve.NewInferencer(client, logger),
	}
}

// Resolver exposes the exporter's resolver, mainly for tests.
func (e *Exporter) Resolver() *resolve.Resolver { return e.resolver }

// Client exposes the underlying API client for listing operations.
func (e *Exporter) Client() *icepanel.Client { return e.client }
