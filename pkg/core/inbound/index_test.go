package inbound

import (
	"slices"
	"testing"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
)

func edge(id string, kind apidoc.Kind, uri string) apidoc.Edge {
	return apidoc.Edge{
		ID:   id,
		From: apidoc.Endpoint{ID: "src-" + id, Type: kind, Name: id, URI: uri},
		To:   apidoc.Endpoint{ID: "subject", Type: apidoc.KindModel, Name: "Subject", URI: "/schemas/Subject"},
	}
}

func entryIDs(b Bucket) []string {
	var out []string
	for _, e := range b.Entries {
		out = append(out, e.Edge.ID)
	}
	return out
}

func TestBuild_BucketOrder(t *testing.T) {
	ix := Build(nil)

	var kinds []apidoc.Kind
	for _, b := range ix.Buckets {
		kinds = append(kinds, b.Kind)
	}
	if !slices.Equal(kinds, bucketOrder) {
		t.Errorf("bucket kinds = %v, want %v", kinds, bucketOrder)
	}
	for _, b := range ix.Buckets {
		if !b.Disabled() {
			t.Errorf("bucket %s should be disabled", b.Kind)
		}
	}
	if ix.Default != "" {
		t.Errorf("Default = %q, want empty", ix.Default)
	}
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
}

func TestBuild_SortedByURI(t *testing.T) {
	ix := Build([]apidoc.Edge{
		edge("c", apidoc.KindModel, "/schemas/C"),
		edge("a", apidoc.KindModel, "/schemas/A"),
		edge("b1", apidoc.KindModel, "/schemas/B"),
		edge("b2", apidoc.KindModel, "/schemas/B"),
		edge("Z", apidoc.KindModel, "/schemas/Z"),
		edge("lower", apidoc.KindModel, "/schemas/a"),
	})

	models, _ := ix.Bucket(apidoc.KindModel)
	want := []string{"a", "b1", "b2", "c", "Z", "lower"}
	if got := entryIDs(models); !slices.Equal(got, want) {
		t.Errorf("model entries = %v, want %v", got, want)
	}
	if models.Title() != "Models (6)" {
		t.Errorf("Title() = %q, want %q", models.Title(), "Models (6)")
	}
}

func TestBuild_UnknownKindsGoToOther(t *testing.T) {
	ix := Build([]apidoc.Edge{
		edge("x", "websocket", "/x"),
		edge("toc", apidoc.KindTableOfContents, "/toc"),
		edge("m", apidoc.KindModel, "/m"),
	})

	if ix.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ix.Len())
	}
	other, ok := ix.Bucket("websocket")
	if !ok || other.Kind != apidoc.KindOther {
		t.Fatalf("Bucket(websocket) = %+v, %v, want Others bucket", other, ok)
	}
	if got := entryIDs(other); !slices.Equal(got, []string{"toc", "x"}) {
		t.Errorf("other entries = %v, want [toc x]", got)
	}
	if other.Label != "Others" {
		t.Errorf("Label = %q, want Others", other.Label)
	}
	if ix.Default != apidoc.KindOther {
		t.Errorf("Default = %q, want first edge kind %q", ix.Default, apidoc.KindOther)
	}
}

func TestBuild_Labels(t *testing.T) {
	ix := Build([]apidoc.Edge{edge("op", apidoc.KindOperation, "/api/paths/~1a/get")})

	want := map[apidoc.Kind]string{
		apidoc.KindModel:     "Models",
		apidoc.KindService:   "APIs",
		apidoc.KindOperation: "Endpoints (1)",
		apidoc.KindArticle:   "Articles",
		apidoc.KindOther:     "Others",
	}
	for _, b := range ix.Buckets {
		if b.Title() != want[b.Kind] {
			t.Errorf("bucket %s Title() = %q, want %q", b.Kind, b.Title(), want[b.Kind])
		}
	}
	if ix.Default != apidoc.KindOperation {
		t.Errorf("Default = %q, want operation", ix.Default)
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	edges := []apidoc.Edge{
		edge("b", apidoc.KindModel, "/b"),
		edge("a", apidoc.KindModel, "/a"),
	}
	Build(edges)
	if edges[0].ID != "b" || edges[1].ID != "a" {
		t.Errorf("input reordered: %v, %v", edges[0].ID, edges[1].ID)
	}
}

func TestEntryVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"", ""},
		{"0.0", ""},
		{"1.2", "v1.2"},
	}
	for _, tt := range tests {
		e := Entry{Edge: apidoc.Edge{From: apidoc.Endpoint{Version: tt.version}}}
		if got := e.Version(); got != tt.want {
			t.Errorf("Version(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}
