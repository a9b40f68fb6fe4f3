// Package navigator memoizes the pure navigation builders.
//
// The table of contents, the relationship graph and the inbound index are
// pure functions of their inputs, so a [Navigator] caches each result in a
// bounded LRU keyed by a SHA-256 of the JSON-encoded inputs. Structurally
// equal inputs share one entry regardless of slice identity.
//
// Cached values are shared between callers and must be treated as
// read-only.
package navigator

import (
	"github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/apinav/pkg/cache"
	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/core/inbound"
	"github.com/matzehuels/apinav/pkg/core/toc"
	"github.com/matzehuels/apinav/pkg/core/visgraph"
)

// DefaultSize is the number of entries kept per view when New is given a
// non-positive size.
const DefaultSize = 256

// Navigator is safe for concurrent use.
type Navigator struct {
	trees   *lru.Cache[string, []toc.Item]
	graphs  *lru.Cache[string, visgraph.Graph]
	inbound *lru.Cache[string, inbound.Index]
}

// Stats reports the number of memoized entries per view.
type Stats struct {
	Trees   int `json:"trees"`
	Graphs  int `json:"graphs"`
	Inbound int `json:"inbound"`
}

// New creates a Navigator keeping up to size entries per view.
func New(size int) (*Navigator, error) {
	if size <= 0 {
		size = DefaultSize
	}
	trees, err := lru.New[string, []toc.Item](size)
	if err != nil {
		return nil, err
	}
	graphs, err := lru.New[string, visgraph.Graph](size)
	if err != nil {
		return nil, err
	}
	in, err := lru.New[string, inbound.Index](size)
	if err != nil {
		return nil, err
	}
	return &Navigator{trees: trees, graphs: graphs, inbound: in}, nil
}

// Tree returns toc.Build(svc, cfg), memoized.
func (n *Navigator) Tree(svc apidoc.Service, cfg toc.Config) []toc.Item {
	return memo(n.trees, "toc", func() []toc.Item { return toc.Build(svc, cfg) }, svc, cfg)
}

// Graph returns visgraph.Assemble(root, edges), memoized.
func (n *Navigator) Graph(root apidoc.Node, edges []apidoc.Edge) visgraph.Graph {
	return memo(n.graphs, "graph", func() visgraph.Graph { return visgraph.Assemble(root, edges) }, root, edges)
}

// Inbound returns inbound.Build(edges), memoized.
func (n *Navigator) Inbound(edges []apidoc.Edge) inbound.Index {
	return memo(n.inbound, "inbound", func() inbound.Index { return inbound.Build(edges) }, edges)
}

// Stats returns the current entry counts.
func (n *Navigator) Stats() Stats {
	return Stats{Trees: n.trees.Len(), Graphs: n.graphs.Len(), Inbound: n.inbound.Len()}
}

// Purge drops every memoized entry.
func (n *Navigator) Purge() {
	n.trees.Purge()
	n.graphs.Purge()
	n.inbound.Purge()
}

// memo looks up the hash of inputs in c and computes on a miss. Inputs that
// cannot be encoded bypass the memo.
func memo[V any](c *lru.Cache[string, V], view string, compute func() V, inputs ...any) V {
	key, err := cache.HashJSON(append([]any{view}, inputs...))
	if err != nil {
		return compute()
	}
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Add(key, v)
	return v
}
