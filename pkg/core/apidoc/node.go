package apidoc

// =============================================================================
// Kinds
// =============================================================================

// Kind is the type tag of a node in the API description.
type Kind string

// Canonical node kinds.
const (
	KindService   Kind = "http_service"
	KindOperation Kind = "http_operation"
	KindModel     Kind = "model"
	KindArticle   Kind = "article"
	KindOther     Kind = "other"
)

// Grouping-only kinds. They appear on edge endpoints but never as graph nodes.
const (
	KindTableOfContents Kind = "table_of_contents"
	KindGeneric         Kind = "generic"
)

// =============================================================================
// Node
// =============================================================================

// Data holds the kind-specific fields of a node. Operations use Method,
// Internal and Deprecated; schemas and articles mark themselves internal
// through XInternal.
type Data struct {
	Method     string `json:"method,omitempty" yaml:"method,omitempty" bson:"method,omitempty"`
	Internal   bool   `json:"internal,omitempty" yaml:"internal,omitempty" bson:"internal,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty" bson:"deprecated,omitempty"`
	XInternal  bool   `json:"x-internal,omitempty" yaml:"x-internal,omitempty" bson:"x_internal,omitempty"`
}

// Node is a single element of the API description.
//
// Tags[0] is the primary tag used for grouping in navigation, Tags[1] (if
// present) the sub-tag.
type Node struct {
	ID   string   `json:"id" yaml:"id" bson:"id"`
	Type Kind     `json:"type" yaml:"type" bson:"type"`
	URI  string   `json:"uri" yaml:"uri" bson:"uri"`
	Name string   `json:"name" yaml:"name" bson:"name"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" bson:"tags,omitempty"`
	Data Data     `json:"data,omitempty" yaml:"data,omitempty" bson:"data,omitempty"`
}

// PrimaryTag returns Tags[0], or "" when the node has no tags.
func (n Node) PrimaryTag() string {
	if len(n.Tags) == 0 {
		return ""
	}
	return n.Tags[0]
}

// SubTag returns Tags[1] and whether it is defined.
// A defined sub-tag may be the empty string.
func (n Node) SubTag() (string, bool) {
	if len(n.Tags) < 2 {
		return "", false
	}
	return n.Tags[1], true
}

// =============================================================================
// Service
// =============================================================================

// Service is the root container of an API description. Its Tags define the
// canonical ordering of tag groups in navigation.
type Service struct {
	ID       string   `json:"id" yaml:"id" bson:"id"`
	URI      string   `json:"uri" yaml:"uri" bson:"uri"`
	Name     string   `json:"name" yaml:"name" bson:"name"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty" bson:"tags,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// Node returns the service itself as a node of kind [KindService].
func (s Service) Node() Node {
	return Node{
		ID:   s.ID,
		Type: KindService,
		URI:  s.URI,
		Name: s.Name,
		Tags: s.Tags,
	}
}

// ChildrenOfKind returns the children whose canonical kind is k, in
// declaration order.
func (s Service) ChildrenOfKind(k Kind) []Node {
	var out []Node
	for _, n := range s.Children {
		if KindOf(n) == k {
			out = append(out, n)
		}
	}
	return out
}

// =============================================================================
// Edges
// =============================================================================

// Endpoint is one side of an [Edge]: a snapshot of the referenced node.
// Path and Version are only meaningful on the source side.
type Endpoint struct {
	ID      string `json:"id" yaml:"id" bson:"id"`
	Type    Kind   `json:"type" yaml:"type" bson:"type"`
	Name    string `json:"name" yaml:"name" bson:"name"`
	URI     string `json:"uri" yaml:"uri" bson:"uri"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" bson:"path,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty" bson:"version,omitempty"`
}

// Node returns the endpoint as a node carrying its identity fields.
func (e Endpoint) Node() Node {
	return Node{ID: e.ID, Type: e.Type, URI: e.URI, Name: e.Name}
}

// Edge is a directed cross-reference between two nodes. Depth is a layout
// hint counting edge hops from the node the edges were resolved for.
type Edge struct {
	ID    string   `json:"id" yaml:"id" bson:"id"`
	From  Endpoint `json:"from" yaml:"from" bson:"from"`
	To    Endpoint `json:"to" yaml:"to" bson:"to"`
	Depth int      `json:"depth" yaml:"depth" bson:"depth"`
}

// =============================================================================
// Document
// =============================================================================

// Document bundles a service with the resolved edges between its nodes.
type Document struct {
	Service Service `json:"service" yaml:"service" bson:"service"`
	Edges   []Edge  `json:"edges,omitempty" yaml:"edges,omitempty" bson:"edges,omitempty"`
}

// FindNode looks up a node by ID. The service itself, its children and every
// edge endpoint are searched in that order; the first match wins.
func (d *Document) FindNode(id string) (Node, bool) {
	if id == "" {
		return Node{}, false
	}
	if d.Service.ID == id {
		return d.Service.Node(), true
	}
	for _, n := range d.Service.Children {
		if n.ID == id {
			return n, true
		}
	}
	for _, e := range d.Edges {
		if e.From.ID == id {
			return e.From.Node(), true
		}
		if e.To.ID == id {
			return e.To.Node(), true
		}
	}
	return Node{}, false
}

// EdgesTo returns the edges whose target is id, in input order.
func (d *Document) EdgesTo(id string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.To.ID == id {
			out = append(out, e)
		}
	}
	return out
}
