package inbound

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
)

// bucketOrder is the presentation order of buckets.
var bucketOrder = []apidoc.Kind{
	apidoc.KindModel,
	apidoc.KindService,
	apidoc.KindOperation,
	apidoc.KindArticle,
	apidoc.KindOther,
}

// Entry is one inbound edge prepared for display.
type Entry struct {
	Edge     apidoc.Edge `json:"edge"`
	Subtitle string      `json:"subtitle"`
}

// Version returns the source version formatted as "v<version>", or "" when
// the source is unversioned ("" or "0.0").
func (e Entry) Version() string {
	v := e.Edge.From.Version
	if v == "" || v == "0.0" {
		return ""
	}
	return "v" + v
}

// Bucket holds the inbound edges whose source has a given kind.
type Bucket struct {
	Kind    apidoc.Kind `json:"kind"`
	Label   string      `json:"label"`
	Entries []Entry     `json:"entries"`
}

// Count returns the number of entries.
func (b Bucket) Count() int { return len(b.Entries) }

// Disabled reports whether the bucket has no entries.
func (b Bucket) Disabled() bool { return len(b.Entries) == 0 }

// Title returns the label with the entry count, e.g. "Models (3)".
// Empty buckets show the bare label.
func (b Bucket) Title() string {
	if b.Disabled() {
		return b.Label
	}
	return fmt.Sprintf("%s (%d)", b.Label, b.Count())
}

// Index is the bucketed view of a subject's inbound edges.
type Index struct {
	Buckets []Bucket `json:"buckets"`
	// Default is the bucket to show first: the kind of the first input edge.
	// It is empty when there are no edges.
	Default apidoc.Kind `json:"default,omitempty"`
}

// Bucket returns the bucket for kind k. Non-canonical kinds resolve to the
// Others bucket.
func (ix Index) Bucket(k apidoc.Kind) (Bucket, bool) {
	k = apidoc.Canonical(k)
	for _, b := range ix.Buckets {
		if b.Kind == k {
			return b, true
		}
	}
	return Bucket{}, false
}

// Len returns the total number of entries across buckets.
func (ix Index) Len() int {
	n := 0
	for _, b := range ix.Buckets {
		n += b.Count()
	}
	return n
}

// Build indexes edges, which are expected to share the same target.
func Build(edges []apidoc.Edge) Index {
	var (
		ix     Index
		byKind = make(map[apidoc.Kind][]apidoc.Edge)
	)
	for _, e := range edges {
		k := apidoc.Canonical(e.From.Type)
		if ix.Default == "" {
			ix.Default = k
		}
		byKind[k] = append(byKind[k], e)
	}

	for _, k := range bucketOrder {
		sorted := slices.Clone(byKind[k])
		slices.SortStableFunc(sorted, func(a, b apidoc.Edge) int {
			return strings.Compare(a.From.URI, b.From.URI)
		})

		entries := make([]Entry, 0, len(sorted))
		for _, e := range sorted {
			entries = append(entries, Entry{Edge: e, Subtitle: Subtitle(e.From)})
		}
		ix.Buckets = append(ix.Buckets, Bucket{
			Kind:    k,
			Label:   apidoc.PrettyName(k) + "s",
			Entries: entries,
		})
	}
	return ix
}
