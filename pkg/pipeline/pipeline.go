// Package pipeline turns an API description document into navigation
// artifacts.
//
// The pipeline is shared by the CLI and the HTTP server so both produce the
// same bytes for the same inputs. A run has three stages:
//
//  1. Resolve: hash the document and resolve the root and subject nodes
//  2. Compute: build the table of contents, relationship graph and inbound
//     index concurrently (memoized through a [navigator.Navigator])
//  3. Render: encode every requested output in every supported format,
//     reading and writing the artifact cache
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Outputs: []string{pipeline.OutputGraph},
//	    Formats: []string{pipeline.FormatSVG},
//	    Root:    "user-model",
//	})
//	svg := result.Artifacts["graph.svg"]
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/apinav/pkg/cache"
	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/core/inbound"
	"github.com/matzehuels/apinav/pkg/core/toc"
	"github.com/matzehuels/apinav/pkg/core/visgraph"
	"github.com/matzehuels/apinav/pkg/errors"
)

// =============================================================================
// Outputs and Formats
// =============================================================================

// Outputs.
const (
	OutputTOC     = "toc"
	OutputGraph   = "graph"
	OutputInbound = "inbound"
)

// Formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// AllOutputs lists every output in pipeline order.
var AllOutputs = []string{OutputTOC, OutputGraph, OutputInbound}

// AllFormats lists every format.
var AllFormats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG}

// outputFormats lists the formats each output can be rendered in.
var outputFormats = map[string][]string{
	OutputTOC:     {FormatJSON},
	OutputGraph:   {FormatJSON, FormatDOT, FormatSVG, FormatPNG},
	OutputInbound: {FormatJSON},
}

// Supports reports whether output can be rendered as format.
func Supports(output, format string) bool {
	return slices.Contains(outputFormats[output], format)
}

// FormatsFor returns the formats supported by output.
func FormatsFor(output string) []string {
	return slices.Clone(outputFormats[output])
}

// ArtifactName returns the artifact name "<output>.<format>".
func ArtifactName(output, format string) string {
	return output + "." + format
}

// ValidateOutput checks that output is known.
func ValidateOutput(output string) error {
	if _, ok := outputFormats[output]; !ok {
		return errors.New(errors.ErrCodeInvalidOutput, "invalid output: %q (must be one of: toc, graph, inbound)", output)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	Outputs      []string `json:"outputs,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	HideSchemas  bool     `json:"hide_schemas,omitempty"`
	HideInternal bool     `json:"hide_internal,omitempty"`
	// Root is the graph root; defaults to the service.
	Root string `json:"root,omitempty"`
	// Subject is the node whose inbound references are indexed; defaults
	// to Root.
	Subject string `json:"subject,omitempty"`
	// Detailed adds uris and levels to DOT node labels.
	Detailed bool `json:"detailed,omitempty"`
	// Refresh bypasses cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	// TTL is the artifact cache lifetime (not serialized).
	TTL time.Duration `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Outputs) == 0 {
		o.Outputs = slices.Clone(AllOutputs)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, out := range o.Outputs {
		if err := ValidateOutput(out); err != nil {
			return err
		}
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, AllFormats...); err != nil {
			return err
		}
	}
	for _, id := range []string{o.Root, o.Subject} {
		if id == "" {
			continue
		}
		if err := errors.ValidateNodeID(id); err != nil {
			return err
		}
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLArtifact
	}
	o.validated = true
	return nil
}

// Wants reports whether output was requested.
func (o *Options) Wants(output string) bool {
	return slices.Contains(o.Outputs, output)
}

// TreeConfig returns the table-of-contents filter settings.
func (o *Options) TreeConfig() toc.Config {
	return toc.Config{HideSchemas: o.HideSchemas, HideInternal: o.HideInternal}
}

// ArtifactKeyOpts returns the cache key options of one artifact. Only the
// options that affect the given output are included, so for example a tree
// does not get a new key when the graph root changes.
func (o Options) ArtifactKeyOpts(output, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Output: output, Format: format}
	switch output {
	case OutputTOC:
		k.HideSchemas = o.HideSchemas
		k.HideInternal = o.HideInternal
	case OutputGraph:
		k.Root = o.Root
		if format == FormatDOT || format == FormatSVG || format == FormatPNG {
			k.Detailed = o.Detailed
		}
	case OutputInbound:
		k.Subject = o.Subject
		if k.Subject == "" {
			k.Subject = o.Root
		}
	}
	return k
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run. Computed structures are
// shared with the memo and must not be modified.
type Result struct {
	// DocHash is the SHA-256 of the document's JSON encoding.
	DocHash string

	Root    apidoc.Node
	Subject apidoc.Node

	// Tree, FirstSlug and SchemaCount are set when the toc output was
	// requested.
	Tree        []toc.Item
	FirstSlug   string
	SchemaCount int

	// Graph is set when the graph output was requested.
	Graph *visgraph.Graph

	// Inbound is set when the inbound output was requested.
	Inbound *inbound.Index

	// Artifacts maps "<output>.<format>" to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	InboundCount int
	ComputeTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks artifact cache usage.
type CacheInfo struct {
	Hits   int
	Misses int
}

// AllCached reports whether every artifact came from the cache.
func (c CacheInfo) AllCached() bool {
	return c.Hits > 0 && c.Misses == 0
}
