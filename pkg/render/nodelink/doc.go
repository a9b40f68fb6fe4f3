// Package nodelink renders relationship graphs as node-link diagrams.
//
// # Usage
//
// Convert a [visgraph.Graph] to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Layout
//
// The generated DOT uses left-to-right layout (rankdir=LR). Nodes of the same
// level share a rank, so the root sits in the first column and each hop moves
// one column to the right. Node fill colours come from the node icon (the
// root is highlighted); edges carry the edge colour and the reference path as
// tooltip.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly. No system Graphviz installation is needed.
//
// [visgraph.Graph]: github.com/matzehuels/apinav/pkg/core/visgraph.Graph
package nodelink
