package toc

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
)

func TestItems_JSONRoundTrip(t *testing.T) {
	svc := apidoc.Service{
		Tags: []string{"Users"},
		Children: []apidoc.Node{
			op("health"),
			op("list", "Users"),
			op("ban", "Users", "Admin"),
		},
	}
	tree := Items(Build(svc, Config{}))

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var got Items
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(got, tree) {
		t.Errorf("round trip =\n%+v\nwant\n%+v", got, tree)
	}
}

func TestItems_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Item
	}{
		{"leaf", `{"id":"/","slug":"/","title":"Overview","type":"overview","meta":""}`, Overview()},
		{"leaf by slug", `{"slug":"s","title":"T"}`, Leaf{Slug: "s", Title: "T"}},
		{"divider", `{"title":"Endpoints"}`, Divider{Title: EndpointsTitle}},
		{"empty group", `{"title":"Pets","items":[]}`, Group{Title: "Pets", Items: Items{}}},
		{"null group", `{"title":"Pets","items":null}`, Group{Title: "Pets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Items
			if err := json.Unmarshal([]byte("["+tt.in+"]"), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if len(got) != 1 || !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestItems_UnmarshalErrors(t *testing.T) {
	for _, in := range []string{`{"title":"x"}`, `[1]`, `["leaf"]`} {
		var got Items
		if err := json.Unmarshal([]byte(in), &got); err == nil {
			t.Errorf("Unmarshal(%s) = %+v, want error", in, got)
		}
	}
}

func TestItems_UnmarshalNull(t *testing.T) {
	got := Items{Overview()}
	if err := json.Unmarshal([]byte("null"), &got); err != nil {
		t.Fatalf("Unmarshal(null) error: %v", err)
	}
	if got != nil {
		t.Errorf("Unmarshal(null) = %+v, want nil", got)
	}
}
