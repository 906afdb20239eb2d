package reeb

import (
	"testing"

	"github.com/matzehuels/topograph/pkg/graph"
)

func TestSetImport(t *testing.T) {
	doc := graph.New()
	a := doc.AddNode(10, 0.0)
	b := doc.AddNode(11, 1.0)
	c := doc.AddNode(12, 2.0)
	doc.AddEdge(a, b, []int64{100, 101})
	doc.AddEdge(b, c, nil)
	doc.AddEdge(a, c, nil)

	g := New()
	if err := g.Set(doc); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !g.Closed() {
		t.Error("imported graph should be closed")
	}
	if g.NodeCount() != 3 || g.ArcCount() != 3 {
		t.Errorf("imported %d nodes / %d arcs, want 3/3", g.NodeCount(), g.ArcCount())
	}
	if g.LoopCount() != 1 {
		t.Errorf("loops = %d, want 1 (a->b->c plus a->c)", g.LoopCount())
	}

	out := mustDoc(t, g)
	if out.NodeCount() != 3 || out.EdgeCount() != 3 {
		t.Fatalf("republished %d nodes / %d edges, want 3/3", out.NodeCount(), out.EdgeCount())
	}
	// Interior ids survive the round trip in order.
	var withInterior *graph.Edge
	for i := range out.Edges {
		if len(out.Edges[i].VertexIDs) > 0 {
			withInterior = &out.Edges[i]
		}
	}
	if withInterior == nil || withInterior.VertexIDs[0] != 100 || withInterior.VertexIDs[1] != 101 {
		t.Errorf("interior ids lost in import: %+v", out.Edges)
	}

	// Simplification is legal after Set.
	if _, err := g.Simplify(1.0, nil); err != nil {
		t.Fatalf("Simplify after Set: %v", err)
	}
	if g.LoopCount() != 0 {
		t.Errorf("loops after simplify = %d, want 0", g.LoopCount())
	}
}

func TestSetRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		build func() *graph.Graph
	}{
		{
			name: "NonMonotoneEdge",
			build: func() *graph.Graph {
				d := graph.New()
				a := d.AddNode(0, 1.0)
				b := d.AddNode(1, 0.0)
				d.AddEdge(a, b, nil)
				return d
			},
		},
		{
			name: "DanglingEndpoint",
			build: func() *graph.Graph {
				d := graph.New()
				a := d.AddNode(0, 0.0)
				d.AddEdge(a, 99, nil)
				return d
			},
		},
		{
			name: "DuplicateVertexID",
			build: func() *graph.Graph {
				d := graph.New()
				d.AddNode(7, 0.0)
				d.AddNode(7, 1.0)
				return d
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if err := g.Set(tt.build()); err != ErrInvalidImport {
				t.Errorf("Set: err = %v, want ErrInvalidImport", err)
			}
			if g.Closed() || g.NodeCount() != 0 {
				t.Error("failed import must leave the instance untouched")
			}
		})
	}
}
