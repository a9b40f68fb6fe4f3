// Package pkg holds the apinav libraries.
//
// # Layout
//
//  1. [core] - pure navigation logic: the document model (core/apidoc), the
//     table of contents (core/toc), the inbound index (core/inbound) and the
//     relationship graph (core/visgraph)
//  2. [navigator] - LRU memoization of the core builders
//  3. [pipeline] - resolve, compute and render with artifact caching
//  4. [render/nodelink] - Graphviz DOT, SVG and PNG output
//  5. [cache], [config], [io], [httputil], [errors], [observability] -
//     infrastructure shared by the CLI and the HTTP [server]
//
// # Data Flow
//
//	document (JSON/YAML file, stdin or URL)
//	         ↓
//	    [io] decode
//	         ↓
//	    [pipeline] Runner.Execute
//	         ↓  (navigator → core/toc, core/visgraph, core/inbound)
//	    artifacts: toc.json, graph.{json,dot,svg,png}, inbound.json
//
// # Quick Start
//
//	doc, _ := io.ImportDocument("petstore.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, _ := runner.Execute(ctx, doc, pipeline.Options{Root: "pet-model"})
//	fmt.Println(result.FirstSlug, len(result.Graph.Nodes))
//
// The core packages never log, never fail and do no I/O; everything that
// touches the outside world lives above them.
package pkg
