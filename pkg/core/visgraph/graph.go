// Package visgraph assembles a deduplicated node/edge set for a relationship
// graph canvas.
//
// [Assemble] starts from a root node and walks the given edges left to right.
// The first time an endpoint is seen it becomes a node at the edge's depth;
// later sightings never move or relabel it. This yields breadth-first levels
// when the caller supplies edges in breadth-first order and is otherwise an
// approximation, not a shortest-path computation.
//
// Endpoints of graph-irrelevant kinds (see [apidoc.IsGraphIrrelevant]) are
// never materialized as nodes, but every edge is kept, parallel edges
// included. Edges may therefore reference ids missing from the node list.
package visgraph

import (
	"slices"
	"strings"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
)

// Colours used by graph canvases.
const (
	RootColor = "#ef932b"
	EdgeColor = "#c3cdd4"
)

// Graph is the assembled node/edge set.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a graph vertex. Level is its layout depth (0 for the root).
type Node struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Title string      `json:"title"`
	Level int         `json:"level"`
	Icon  apidoc.Icon `json:"icon"`
}

// Edge is a directed graph edge. Title is the source-side path of the
// reference.
type Edge struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// Assemble builds the graph around root. Nodes are sorted by label (stable);
// edges keep their input order.
func Assemble(root apidoc.Node, edges []apidoc.Edge) Graph {
	rootIcon := apidoc.IconFor(root.Type)
	rootIcon.Color = RootColor

	g := Graph{
		Nodes: []Node{{
			ID:    root.ID,
			Label: root.Name,
			Title: root.URI,
			Level: 0,
			Icon:  rootIcon,
		}},
		Edges: make([]Edge, 0, len(edges)),
	}
	seen := map[string]bool{root.ID: true}

	visit := func(ep apidoc.Endpoint, depth int) {
		if seen[ep.ID] || apidoc.IsGraphIrrelevant(ep.Type) {
			return
		}
		seen[ep.ID] = true
		g.Nodes = append(g.Nodes, Node{
			ID:    ep.ID,
			Label: ep.Name,
			Title: ep.URI,
			Level: depth,
			Icon:  apidoc.IconFor(ep.Type),
		})
	}

	for _, e := range edges {
		visit(e.From, e.Depth)
		visit(e.To, e.Depth)
		g.Edges = append(g.Edges, Edge{
			ID:    e.ID,
			From:  e.From.ID,
			To:    e.To.ID,
			Title: e.From.Path,
			Color: EdgeColor,
		})
	}

	slices.SortStableFunc(g.Nodes, func(a, b Node) int {
		return strings.Compare(a.Label, b.Label)
	})
	return g
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// MaxLevel returns the deepest node level, or 0 for a root-only graph.
func (g Graph) MaxLevel() int {
	max := 0
	for _, n := range g.Nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max
}
