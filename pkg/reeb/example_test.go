package reeb_test

import (
	"fmt"

	"github.com/matzehuels/topograph/pkg/reeb"
)

// A single triangle with increasing scalars has one minimum, one maximum,
// and a regular interior vertex that is collapsed into the arc.
func Example() {
	g := reeb.New()
	if err := g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0); err != nil {
		panic(err)
	}
	if err := g.CloseStream(); err != nil {
		panic(err)
	}

	doc, err := g.Document()
	if err != nil {
		panic(err)
	}
	for _, e := range doc.Edges {
		fmt.Printf("v%d -> v%d interior %v\n",
			doc.Nodes[e.From].VertexID, doc.Nodes[e.To].VertexID, e.VertexIDs)
	}
	fmt.Println("loops:", g.LoopCount())
	// Output:
	// v0 -> v2 interior [1]
	// loops: 0
}

// Simplification removes low-persistence branches: the shallow minimum at
// vertex 3 (persistence 0.05 of the span) is retracted into the main arc.
func Example_simplify() {
	g := reeb.New()
	_ = g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0)
	_ = g.StreamTriangle(3, 0.9, 1, 1.0, 2, 2.0)
	_ = g.CloseStream()

	removed, err := g.Simplify(0.05, nil)
	if err != nil {
		panic(err)
	}
	doc, _ := g.Document()
	fmt.Printf("removed %d arc(s), %d node(s) remain\n", removed, doc.NodeCount())
	// Output:
	// removed 1 arc(s), 2 node(s) remain
}
