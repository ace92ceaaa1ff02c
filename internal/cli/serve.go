package cli

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/export"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// serveCommand creates the serve command running a local preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local browser preview of diagrams and flows",
		Long: `Serve a local browser preview of diagrams and flows.

The index page lists every diagram and flow in the landscape version.
Each entry links to a page that renders the generated Mermaid text in the
browser; the raw .mmd text is available under /raw.

Every page load re-resolves against the API, so the preview always shows
the current landscape state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable API response caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv := &previewServer{
		cli:     c,
		cfg:     cfg,
		noCache: noCache,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", srv.handleIndex)
	r.Get("/diagrams/{name}", srv.handleDiagram)
	r.Get("/diagrams/{name}/raw", srv.handleDiagramRaw)
	r.Get("/flows/{name}", srv.handleFlow)
	r.Get("/flows/{name}/raw", srv.handleFlowRaw)

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	printSuccess("Preview server running")
	printFile("http://" + addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// previewServer handles preview requests. Each request builds a fresh
// exporter so resolved state never outlives one page load.
type previewServer struct {
	cli     *CLI
	cfg     Config
	noCache bool
}

func (s *previewServer) exporter() (*export.Exporter, error) {
	return s.cli.newExporter(s.cfg, s.noCache)
}

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	exp, err := s.exporter()
	if err != nil {
		httpError(w, err)
		return
	}

	diagrams, err := exp.Client().ListDiagrams(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	flows, err := exp.Client().ListFlows(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}

	data := indexData{Diagrams: diagrams, Flows: flows}
	if err := indexTemplate.Execute(w, data); err != nil {
		loggerFromContext(r.Context()).Warnf("render index: %v", err)
	}
}

func (s *previewServer) handleDiagram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exp, err := s.exporter()
	if err != nil {
		httpError(w, err)
		return
	}

	chart, err := exp.Diagram(r.Context(), name)
	if err != nil {
		httpError(w, err)
		return
	}
	s.renderPage(w, r, name, chart.Generate())
}

func (s *previewServer) handleDiagramRaw(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exp, err := s.exporter()
	if err != nil {
		httpError(w, err)
		return
	}

	chart, err := exp.Diagram(r.Context(), name)
	if err != nil {
		httpError(w, err)
		return
	}
	writeRaw(w, chart.Generate())
}

func (s *previewServer) handleFlow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exp, err := s.exporter()
	if err != nil {
		httpError(w, err)
		return
	}

	seq, err := exp.Flow(r.Context(), name)
	if err != nil {
		httpError(w, err)
		return
	}
	s.renderPage(w, r, name, seq.Generate())
}

func (s *previewServer) handleFlowRaw(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exp, err := s.exporter()
	if err != nil {
		httpError(w, err)
		return
	}

	seq, err := exp.Flow(r.Context(), name)
	if err != nil {
		httpError(w, err)
		return
	}
	writeRaw(w, seq.Generate())
}

func (s *previewServer) renderPage(w http.ResponseWriter, r *http.Request, name, mermaidText string) {
	data := pageData{Name: name, Mermaid: mermaidText}
	if err := pageTemplate.Execute(w, data); err != nil {
		loggerFromContext(r.Context()).Warnf("render page %s: %v", name, err)
	}
}

func httpError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, icepanel.ErrNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

func writeRaw(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

type indexData struct {
	Diagrams []icepanel.DiagramHeader
	Flows    []icepanel.FlowHeader
}

type pageData struct {
	Name    string
	Mermaid string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>icepanel-diagrams</title></head>
<body>
<h1>Diagrams</h1>
<ul>
{{range .Diagrams}}<li><a href="/diagrams/{{.Name}}">{{.Name}}</a> <small>{{.Type}}</small></li>
{{else}}<li><em>none</em></li>
{{end}}</ul>
<h1>Flows</h1>
<ul>
{{range .Flows}}<li><a href="/flows/{{.Name}}">{{.Name}}</a></li>
{{else}}<li><em>none</em></li>
{{end}}</ul>
</body>
</html>
`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
<p><a href="/">index</a></p>
<pre class="mermaid">{{.Mermaid}}</pre>
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
</body>
</html>
`))
