// Package toc builds the navigation table of contents for an API description.
//
// # Overview
//
// [Build] turns a resolved [apidoc.Service] into an ordered list of [Item]
// values ready for a sidebar:
//
//	Overview                 (Leaf, slug "/")
//	Endpoints                (Divider)
//	  GET /health            (Leaf, ungrouped operations first)
//	  Billing                (Group, declared tag order)
//	    List invoices        (Leaf)
//	    Admin                (Group, sub-tag)
//	      Void invoice       (Leaf)
//	  Shipping               (Group, undeclared tags last)
//
// # Grouping
//
// [GroupByTag] groups operations by their primary tag, case-insensitively.
// Groups whose tag the service declares come first, in declaration order;
// the rest follow in the order they were first seen. A group's title uses the
// service's casing when the service declares the tag, otherwise the casing of
// the first operation that introduced it.
//
// Inside a group, an operation with a sub-tag (Tags[1]) is nested under a
// sub-group titled with the raw sub-tag. A sub-group sits where its first
// member was encountered; sub-groups and direct leaves interleave.
//
// # Filtering
//
// [Config.HideInternal] drops internal operations; groups left without items
// are omitted. Schemas are never listed in the tree. [Schemas] returns the
// schema set that survives filtering, for callers that surface it elsewhere.
//
// All functions are pure. Calling them twice with equal inputs yields equal
// outputs.
package toc
