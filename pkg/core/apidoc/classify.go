package apidoc

// KindOf returns the canonical kind of n. Types outside the canonical set
// (including the empty string) map to [KindOther].
func KindOf(n Node) Kind {
	return Canonical(n.Type)
}

// Canonical folds an arbitrary kind into the canonical set.
func Canonical(k Kind) Kind {
	switch k {
	case KindService, KindOperation, KindModel, KindArticle:
		return k
	default:
		return KindOther
	}
}

// IsInternal reports whether n is marked internal. Operations carry the flag
// as data.internal, services are never internal, and every other kind uses
// data.x-internal.
func IsInternal(n Node) bool {
	switch n.Type {
	case KindOperation:
		return n.Data.Internal
	case KindService:
		return false
	default:
		return n.Data.XInternal
	}
}

// irrelevantKinds lists the kinds excluded from graph materialization.
var irrelevantKinds = map[Kind]bool{
	KindTableOfContents: true,
	KindGeneric:         true,
}

// IsGraphIrrelevant reports whether nodes of kind k are left out of the
// visual graph. Kinds not listed here, known or not, are relevant.
func IsGraphIrrelevant(k Kind) bool {
	return irrelevantKinds[k]
}

// =============================================================================
// Display
// =============================================================================

var prettyNames = map[Kind]string{
	KindService:   "API",
	KindOperation: "Endpoint",
	KindModel:     "Model",
	KindArticle:   "Article",
	KindOther:     "Other",
}

// PrettyName returns the singular display name of a kind.
func PrettyName(k Kind) string {
	return prettyNames[Canonical(k)]
}

// Icon is a glyph reference for graph canvases. Code is a Font Awesome code
// point; Color is empty unless the node is highlighted.
type Icon struct {
	Code  string `json:"code"`
	Color string `json:"color,omitempty"`
}

var iconCodes = map[Kind]string{
	KindService:   "\uf1b3", // cubes
	KindOperation: "\uf0ec", // exchange
	KindModel:     "\uf1c0", // database
	KindArticle:   "\uf15c", // file
	KindOther:     "\uf128", // question
}

// IconFor returns the icon of kind k without a colour.
func IconFor(k Kind) Icon {
	return Icon{Code: iconCodes[Canonical(k)]}
}
