package export

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/cache"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// fakeAPI serves canned JSON bodies keyed by path relative to the
// landscape/version base.
type fakeAPI struct {
	routes map[string]string
}

const basePath = "/landscapes/land1/versions/v1"

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := f.routes[r.URL.Path[len(basePath):]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	io.WriteString(w, body)
}

func newTestExporter(t *testing.T, routes map[string]string) *Exporter {
	t.Helper()
	server := httptest.NewServer(&fakeAPI{routes: routes})
	t.Cleanup(server.Close)

	client := icepanel.New(icepanel.Config{
		APIKey:      "k",
		LandscapeID: "land1",
		VersionID:   "v1",
		BaseURL:     server.URL,
		Cache:       cache.NewMemoryCache(),
	})
	client.SetHTTPClient(server.Client())
	return New(client, log.New(io.Discard))
}
