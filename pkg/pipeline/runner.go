package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/apinav/pkg/cache"
	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/core/toc"
	"github.com/matzehuels/apinav/pkg/errors"
	"github.com/matzehuels/apinav/pkg/navigator"
	"github.com/matzehuels/apinav/pkg/observability"
)

// renderConcurrency bounds the number of artifacts rendered at once.
// Graphviz layouts are CPU bound.
const renderConcurrency = 4

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so artifacts are computed one way.
//
// The Runner does not store results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Navigator *navigator.Navigator
	Logger    *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
// If nav is nil, a Navigator with the default size is created.
func NewRunner(c cache.Cache, keyer cache.Keyer, nav *navigator.Navigator, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if nav == nil {
		// New only fails for non-positive sizes.
		nav, _ = navigator.New(navigator.DefaultSize)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Navigator: nav,
		Logger:    logger,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the resolve → compute → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *apidoc.Document, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no document")
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Outputs)
	defer func() {
		nodes := 0
		if result != nil {
			nodes = result.Stats.NodeCount
		}
		hooks.OnBuildComplete(ctx, opts.Outputs, nodes, time.Since(start), err)
	}()

	// Stage 1: Resolve
	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "hash document")
	}
	root, subject, err := resolve(doc, opts)
	if err != nil {
		return nil, err
	}

	result = &Result{
		DocHash:   docHash,
		Root:      root,
		Subject:   subject,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = 1 + len(doc.Service.Children)
	result.Stats.EdgeCount = len(doc.Edges)

	// Stage 2: Compute
	computeStart := time.Now()
	if err := r.compute(ctx, doc, opts, result); err != nil {
		return nil, err
	}
	result.Stats.ComputeTime = time.Since(computeStart)

	r.Logger.Info("computed views",
		"outputs", opts.Outputs,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ComputeTime)

	// Stage 3: Render
	renderStart := time.Now()
	if err := r.render(ctx, opts, result); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"artifacts", len(result.Artifacts),
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// resolve looks up the root and subject nodes. The root defaults to the
// service and the subject to the root.
func resolve(doc *apidoc.Document, opts Options) (root, subject apidoc.Node, err error) {
	root = doc.Service.Node()
	if opts.Root != "" {
		n, ok := doc.FindNode(opts.Root)
		if !ok {
			return root, subject, errors.New(errors.ErrCodeNodeNotFound, "root node %q not found", opts.Root)
		}
		root = n
	}
	subject = root
	if opts.Subject != "" {
		n, ok := doc.FindNode(opts.Subject)
		if !ok {
			return root, subject, errors.New(errors.ErrCodeNodeNotFound, "subject node %q not found", opts.Subject)
		}
		subject = n
	}
	return root, subject, nil
}

// compute builds the requested views concurrently.
func (r *Runner) compute(ctx context.Context, doc *apidoc.Document, opts Options, result *Result) error {
	g, gctx := errgroup.WithContext(ctx)

	if opts.Wants(OutputTOC) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := opts.TreeConfig()
			result.Tree = r.Navigator.Tree(doc.Service, cfg)
			result.FirstSlug, _ = toc.FirstSlug(result.Tree)
			result.SchemaCount = len(toc.Schemas(doc.Service, cfg))
			return nil
		})
	}
	if opts.Wants(OutputGraph) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vg := r.Navigator.Graph(result.Root, doc.Edges)
			result.Graph = &vg
			return nil
		})
	}
	if opts.Wants(OutputInbound) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ix := r.Navigator.Inbound(doc.EdgesTo(result.Subject.ID))
			result.Inbound = &ix
			result.Stats.InboundCount = ix.Len()
			return nil
		})
	}
	return g.Wait()
}

// render encodes every supported output/format pair, reading and writing
// the artifact cache.
func (r *Runner) render(ctx context.Context, opts Options, result *Result) error {
	type job struct{ output, format string }
	var jobs []job
	for _, out := range opts.Outputs {
		for _, f := range opts.Formats {
			if !Supports(out, f) {
				r.Logger.Debug("skipping unsupported artifact", "output", out, "format", f)
				continue
			}
			jobs = append(jobs, job{out, f})
		}
	}
	if len(jobs) == 0 {
		return errors.New(errors.ErrCodeUnsupported, "formats %v produce no artifacts for outputs %v", opts.Formats, opts.Outputs)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderConcurrency)
	for _, j := range jobs {
		g.Go(func() error {
			data, hit, err := r.artifact(gctx, j.output, j.format, opts, result)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			result.Artifacts[ArtifactName(j.output, j.format)] = data
			if hit {
				result.CacheInfo.Hits++
			} else {
				result.CacheInfo.Misses++
			}
			return nil
		})
	}
	return g.Wait()
}

// artifact returns one rendered artifact and whether it came from the cache.
func (r *Runner) artifact(ctx context.Context, output, format string, opts Options, result *Result) ([]byte, bool, error) {
	name := ArtifactName(output, format)
	key := r.Keyer.ArtifactKey(result.DocHash, opts.ArtifactKeyOpts(output, format))
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Debug("cache read failed", "artifact", name, "error", err)
		case hit:
			hooks.OnCacheHit(ctx, name)
			return data, true, nil
		}
	}
	hooks.OnCacheMiss(ctx, name)

	start := time.Now()
	data, err := Render(ctx, output, format, result, opts)
	observability.Pipeline().OnRender(ctx, output, format, time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", name, err)
	}

	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		r.Logger.Warn("cache write failed", "artifact", name, "error", err)
	} else {
		hooks.OnCacheSet(ctx, name, len(data))
	}
	return data, false, nil
}
