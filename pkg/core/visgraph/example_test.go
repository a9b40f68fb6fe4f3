package visgraph_test

import (
	"fmt"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
	"github.com/matzehuels/apinav/pkg/core/visgraph"
)

func ExampleAssemble() {
	user := apidoc.Node{ID: "user", Type: apidoc.KindModel, Name: "User", URI: "/schemas/User"}
	op := apidoc.Endpoint{ID: "get", Type: apidoc.KindOperation, Name: "Get user", URI: "/paths/~1users/get", Path: "/responses/200"}
	toUser := apidoc.Endpoint{ID: "user", Type: apidoc.KindModel, Name: "User", URI: "/schemas/User"}

	g := visgraph.Assemble(user, []apidoc.Edge{{ID: "e1", From: op, To: toUser, Depth: 1}})
	for _, n := range g.Nodes {
		fmt.Printf("%s level=%d\n", n.Label, n.Level)
	}
	for _, e := range g.Edges {
		fmt.Printf("%s -> %s via %s\n", e.From, e.To, e.Title)
	}
	// Output:
	// Get user level=1
	// User level=0
	// get -> user via /responses/200
}
