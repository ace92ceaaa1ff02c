// Package cli implements the icepanel-diagrams command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/buildinfo"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/cache"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/export"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "icepanel-diagrams"

	// apiCacheTTL bounds how long an API response is reused within a run.
	apiCacheTTL = 15 * time.Minute
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Export IcePanel diagrams and flows as Mermaid",
		Long:         `icepanel-diagrams reconstructs diagrams and flows from an IcePanel landscape and emits them as Mermaid flowchart and sequence diagram text, optionally converted to SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/"+appName+"/config.toml)")

	// Register all subcommands
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.flowCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Exporter Factory
// =============================================================================

// newExporter builds an API client and exporter from the resolved config.
// Each invocation gets a fresh exporter so resolved state never leaks
// between runs.
func (c *CLI) newExporter(cfg Config, noCache bool) (*export.Exporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var backend cache.Cache = cache.NewNullCache()
	if !noCache {
		backend = cache.NewMemoryCache()
	}

	client := icepanel.New(icepanel.Config{
		APIKey:      cfg.APIKey,
		LandscapeID: cfg.LandscapeID,
		VersionID:   cfg.VersionID,
		BaseURL:     cfg.BaseURL,
		Cache:       backend,
		CacheTTL:    apiCacheTTL,
	})
	return export.New(client, c.Logger), nil
}
