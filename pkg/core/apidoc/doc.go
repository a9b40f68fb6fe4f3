// Package apidoc defines the resolved API description model consumed by the
// navigation and graph builders.
//
// # Overview
//
// An API description arrives already parsed and resolved: a [Service] root that
// declares its canonical tag order and owns its child [Node] values
// (operations, schemas, articles), plus a flat list of cross-reference [Edge]
// values between nodes. Nothing in this package fetches or validates the
// underlying document.
//
// # Classification
//
// Node kinds are plain strings ([Kind]) so that unknown kinds survive a round
// trip. The classifier functions never fail:
//
//   - [KindOf] folds any node type into one of the canonical kinds, with
//     [KindOther] as the catch-all.
//   - [IsInternal] reads the kind-specific internal marker (operations use
//     data.internal, schemas and articles use data.x-internal, services are
//     never internal).
//   - [IsGraphIrrelevant] reports kinds that have no visual representation in
//     the relationship graph. Only explicitly listed kinds are irrelevant.
//
// Display helpers ([PrettyName], [IconFor]) are shared by the inbound
// dependency panel and the graph assembler.
package apidoc
