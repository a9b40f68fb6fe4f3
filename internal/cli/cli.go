// Package cli implements the apinav command-line interface.
//
// # Commands
//
//   - toc: print the table of contents of a document
//   - graph: render the relationship graph around a node
//   - inbound: list the nodes that reference a node
//   - build: write every artifact of a document to a directory
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//
// Documents are read from a file (.json, .yaml, .yml), from stdin ("-") or
// from an http(s) URL.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/buildinfo"
	"github.com/matzehuels/apinav/pkg/cache"
	"github.com/matzehuels/apinav/pkg/config"
	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/httputil"
	apio "github.com/matzehuels/apinav/pkg/io"
	"github.com/matzehuels/apinav/pkg/navigator"
	"github.com/matzehuels/apinav/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdinArg reads the document from standard input.
const stdinArg = "-"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	config     *config.Config
	stdin      io.Reader
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), stdin: os.Stdin}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "apinav",
		Short:        "apinav builds navigation views of API descriptions",
		Long:         `apinav turns a resolved API description into a table of contents, a relationship graph and an index of inbound references.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/apinav/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.tocCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.inboundCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if c.config != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	nav, err := navigator.New(c.config.Server.MemoSize)
	if err != nil {
		ch.Close()
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CachePrefix())
	return pipeline.NewRunner(ch, keyer, nav, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	return c.config.OpenCache(ctx)
}

// baseOptions returns pipeline options seeded from the configuration.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		HideSchemas:  c.config.Tree.HideSchemas,
		HideInternal: c.config.Tree.HideInternal,
		TTL:          c.config.Cache.TTL.Duration,
	}
}

// =============================================================================
// Documents
// =============================================================================

// loadDocument reads a document from a path, stdin or an http(s) URL.
// Remote documents go through the runner's cache.
func (c *CLI) loadDocument(ctx context.Context, runner *pipeline.Runner, arg string) (*apidoc.Document, error) {
	switch {
	case arg == stdinArg:
		// YAML is a superset of JSON, so either encoding decodes.
		return apio.ReadDocument(c.stdin, apio.FormatYAML)

	case httputil.IsURL(arg):
		format := apio.FormatJSON
		if u, err := url.Parse(arg); err == nil {
			if f, err := apio.FormatForPath(path.Base(u.Path)); err == nil {
				format = f
			}
		}
		data, err := httputil.NewFetcher(nil, runner.Cache, 0).Fetch(ctx, arg)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("fetched document", "url", arg, "bytes", len(data))
		return apio.ReadDocument(bytes.NewReader(data), format)

	default:
		return apio.ImportDocument(arg)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// writeArtifact writes data to path, or to w when path is empty or "-".
func writeArtifact(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
