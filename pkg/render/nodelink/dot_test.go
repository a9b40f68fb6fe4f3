package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/core/visgraph"
)

func sampleGraph() visgraph.Graph {
	root := apidoc.Node{ID: "pet", Type: apidoc.KindModel, Name: "Pet", URI: "/schemas/Pet"}
	return visgraph.Assemble(root, []apidoc.Edge{
		{
			ID:    "e1",
			From:  apidoc.Endpoint{ID: "list", Type: apidoc.KindOperation, Name: "List pets", URI: "/paths/~1pets/get", Path: "/responses/200"},
			To:    apidoc.Endpoint{ID: "pet", Type: apidoc.KindModel, Name: "Pet", URI: "/schemas/Pet"},
			Depth: 1,
		},
		{
			ID:    "e2",
			From:  apidoc.Endpoint{ID: "toc", Type: apidoc.KindTableOfContents, Name: "ToC", URI: "/toc"},
			To:    apidoc.Endpoint{ID: "pet", Type: apidoc.KindModel, Name: "Pet", URI: "/schemas/Pet"},
			Depth: 1,
		},
	})
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	for _, want := range []string{
		"digraph G",
		`"pet" [label="Pet"`,
		`"list" [label="List pets"`,
		`"list" -> "pet" [id="e1", color="#c3cdd4", tooltip="/responses/200"]`,
		`fillcolor="#ef932b"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Ranks(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	if !strings.Contains(dot, `{ rank=same; "pet"; }`) {
		t.Errorf("ToDOT() missing level 0 rank:\n%s", dot)
	}
	if !strings.Contains(dot, `{ rank=same; "list"; }`) {
		t.Errorf("ToDOT() missing level 1 rank:\n%s", dot)
	}
	if strings.Index(dot, `rank=same; "pet"`) > strings.Index(dot, `rank=same; "list"`) {
		t.Error("ToDOT() ranks should be ordered by level")
	}
}

func TestToDOT_Placeholder(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	if !strings.Contains(dot, `"toc" [label="toc", style="rounded,filled,dashed", fillcolor=lightgrey]`) {
		t.Errorf("ToDOT() missing placeholder for irrelevant endpoint:\n%s", dot)
	}
	if strings.Count(dot, `"toc" [`) != 1 {
		t.Error("ToDOT() placeholder declared more than once")
	}
}

func TestNodeAttrs_Detailed(t *testing.T) {
	n := visgraph.Node{ID: "m", Label: "Pet", Title: "/schemas/Pet", Level: 2}

	simple := nodeAttrs(n, false)
	if simple[0] != `label="Pet"` {
		t.Errorf("nodeAttrs() simple label = %s", simple[0])
	}

	detailed := nodeAttrs(n, true)
	if !strings.Contains(detailed[0], `/schemas/Pet`) || !strings.Contains(detailed[0], "level: 2") {
		t.Errorf("nodeAttrs() detailed label = %s", detailed[0])
	}
	for _, a := range detailed {
		if strings.HasPrefix(a, "fillcolor") {
			t.Errorf("node without icon colour should keep default fill: %v", detailed)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), `digraph G { a -> b; }`)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("RenderPNG() output is not a PNG")
	}
}
