package toc

import "github.com/matzehuels/apinav/pkg/core/apidoc"

// Config controls which nodes are visible in the tree.
type Config struct {
	HideSchemas  bool `json:"hide_schemas" toml:"hide_schemas"`
	HideInternal bool `json:"hide_internal" toml:"hide_internal"`
}

func (c Config) hides(n apidoc.Node) bool {
	return c.HideInternal && apidoc.IsInternal(n)
}

// Build assembles the table of contents of svc.
//
// The tree always starts with the [Overview] leaf. When svc has operations,
// an Endpoints divider follows, then the ungrouped operations, then one
// [Group] per tag group with at least one visible operation. Schemas are not
// part of the tree; see [Schemas].
func Build(svc apidoc.Service, cfg Config) []Item {
	tree := []Item{Overview()}

	if len(svc.ChildrenOfKind(apidoc.KindOperation)) == 0 {
		return tree
	}
	tree = append(tree, Divider{Title: EndpointsTitle})

	grouping := GroupByTag(svc)
	for _, n := range grouping.Ungrouped {
		if cfg.hides(n) {
			continue
		}
		tree = append(tree, leafOf(n))
	}

	for _, g := range grouping.Groups {
		items := groupItems(g, cfg)
		if len(items) == 0 {
			continue
		}
		tree = append(tree, Group{Title: g.Title, Items: items})
	}
	return tree
}

// Schemas returns the schema nodes of svc that remain visible under cfg.
// They are computed for availability checks and never appended by [Build].
func Schemas(svc apidoc.Service, cfg Config) []apidoc.Node {
	if cfg.HideSchemas {
		return nil
	}
	var out []apidoc.Node
	for _, n := range svc.ChildrenOfKind(apidoc.KindModel) {
		if cfg.hides(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// groupItems lays out the visible members of g. Members with a sub-tag go
// into a sub-group placed where the first member of that sub-tag appeared.
func groupItems(g TagGroup, cfg Config) []Item {
	var (
		items []Item
		subs  = make(map[string]int) // sub-tag -> index in items
	)
	for _, n := range g.Items {
		if cfg.hides(n) {
			continue
		}
		leaf := leafOf(n)

		sub, ok := n.SubTag()
		if !ok {
			items = append(items, leaf)
			continue
		}
		if i, found := subs[sub]; found {
			sg := items[i].(Group)
			sg.Items = append(sg.Items, leaf)
			items[i] = sg
			continue
		}
		subs[sub] = len(items)
		items = append(items, Group{Title: sub, Items: []Item{leaf}})
	}
	return items
}

func leafOf(n apidoc.Node) Leaf {
	return Leaf{
		ID:    n.URI,
		Slug:  n.URI,
		Title: n.Name,
		Type:  string(n.Type),
		Meta:  n.Data.Method,
	}
}
