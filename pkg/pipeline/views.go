package pipeline

import (
	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/core/inbound"
	"github.com/matzehuels/apinav/pkg/core/toc"
)

// TOCView is the JSON shape of the toc output.
type TOCView struct {
	Items       toc.Items `json:"items"`
	FirstSlug   string    `json:"first_slug,omitempty"`
	SchemaCount int       `json:"schema_count"`
}

// InboundView is the JSON shape of the inbound output. Derived bucket
// fields are spelled out so clients need not recompute them.
type InboundView struct {
	Subject string              `json:"subject"`
	Total   int                 `json:"total"`
	Default apidoc.Kind         `json:"default,omitempty"`
	Buckets []InboundBucketView `json:"buckets"`
}

// InboundBucketView is one bucket of an [InboundView].
type InboundBucketView struct {
	Kind     apidoc.Kind        `json:"kind"`
	Label    string             `json:"label"`
	Title    string             `json:"title"`
	Count    int                `json:"count"`
	Disabled bool               `json:"disabled"`
	Entries  []InboundEntryView `json:"entries"`
}

// InboundEntryView is one inbound reference.
type InboundEntryView struct {
	EdgeID   string      `json:"edge_id"`
	ID       string      `json:"id"`
	Type     apidoc.Kind `json:"type"`
	Name     string      `json:"name"`
	URI      string      `json:"uri"`
	Path     string      `json:"path,omitempty"`
	Subtitle string      `json:"subtitle"`
	Version  string      `json:"version,omitempty"`
	Depth    int         `json:"depth"`
}

// NewInboundView flattens ix for serialization.
func NewInboundView(subject string, ix inbound.Index) InboundView {
	v := InboundView{
		Subject: subject,
		Total:   ix.Len(),
		Default: ix.Default,
		Buckets: make([]InboundBucketView, 0, len(ix.Buckets)),
	}
	for _, b := range ix.Buckets {
		bv := InboundBucketView{
			Kind:     b.Kind,
			Label:    b.Label,
			Title:    b.Title(),
			Count:    b.Count(),
			Disabled: b.Disabled(),
			Entries:  make([]InboundEntryView, 0, len(b.Entries)),
		}
		for _, e := range b.Entries {
			from := e.Edge.From
			bv.Entries = append(bv.Entries, InboundEntryView{
				EdgeID:   e.Edge.ID,
				ID:       from.ID,
				Type:     from.Type,
				Name:     from.Name,
				URI:      from.URI,
				Path:     from.Path,
				Subtitle: e.Subtitle,
				Version:  e.Version(),
				Depth:    e.Edge.Depth,
			})
		}
		v.Buckets = append(v.Buckets, bv)
	}
	return v
}
