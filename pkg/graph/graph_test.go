package graph

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
)

func buildDiamond() *Graph {
	g := New()
	a := g.AddNode(0, 0.0)
	b := g.AddNode(1, 1.0)
	c := g.AddNode(2, 1.5)
	d := g.AddNode(3, 2.0)
	g.AddEdge(a, b, []int64{10})
	g.AddEdge(a, c, nil)
	g.AddEdge(b, d, nil)
	g.AddEdge(c, d, nil)
	return g
}

func TestMarshalGraph(t *testing.T) {
	tests := []struct {
		name      string
		build     func() *Graph
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:      "Empty",
			build:     New,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name: "Simple",
			build: func() *Graph {
				g := New()
				a := g.AddNode(0, 0.0)
				b := g.AddNode(5, 2.0)
				g.AddEdge(a, b, []int64{1, 2, 3})
				return g
			},
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g *Graph) {
				if g.Edges[0].VertexIDs[1] != 2 {
					t.Errorf("interior = %v", g.Edges[0].VertexIDs)
				}
				if g.Nodes[1].VertexID != 5 || g.Nodes[1].Scalar != 2.0 {
					t.Errorf("node = %+v", g.Nodes[1])
				}
			},
		},
		{
			name:      "Diamond",
			build:     buildDiamond,
			wantNodes: 4,
			wantEdges: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build()

			data, err := MarshalGraph(g)
			if err != nil {
				t.Fatalf("MarshalGraph: %v", err)
			}

			result, err := UnmarshalGraph(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if got := result.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := result.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestMarshalDeterministic(t *testing.T) {
	a, err := MarshalGraph(buildDiamond())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := MarshalGraph(buildDiamond())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical graphs marshal differently")
	}
}

func TestFileRoundTrip(t *testing.T) {
	g := buildDiamond()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	want, _ := MarshalGraph(g)
	got, _ := MarshalGraph(back)
	if !bytes.Equal(want, got) {
		t.Error("file round trip changed the graph")
	}
}

func TestBetti1(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
		want  int
	}{
		{name: "Empty", build: New, want: 0},
		{
			name: "Path",
			build: func() *Graph {
				g := New()
				a := g.AddNode(0, 0)
				b := g.AddNode(1, 1)
				g.AddEdge(a, b, nil)
				return g
			},
			want: 0,
		},
		{name: "Diamond", build: buildDiamond, want: 1},
		{
			name: "MultiEdge",
			build: func() *Graph {
				g := New()
				a := g.AddNode(0, 0)
				b := g.AddNode(1, 1)
				g.AddEdge(a, b, nil)
				g.AddEdge(a, b, []int64{5})
				return g
			},
			want: 1,
		},
		{
			name: "TwoComponents",
			build: func() *Graph {
				g := New()
				g.AddNode(0, 0)
				g.AddNode(1, 1)
				return g
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().Betti1(); got != tt.want {
				t.Errorf("Betti1 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	g := buildDiamond()
	g.Reset()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Error("Reset did not clear the graph")
	}
	if id := g.AddNode(9, 1.0); id != 0 {
		t.Errorf("first id after Reset = %d, want 0", id)
	}
}

func TestNormalize(t *testing.T) {
	g := New()
	// Built out of scalar order, with ids 0..2.
	a := g.AddNode(2, 5.0)
	b := g.AddNode(0, 0.0)
	c := g.AddNode(1, 2.0)
	g.AddEdge(b, c, nil)
	g.AddEdge(c, a, nil)
	g.Normalize()

	for i := 1; i < len(g.Nodes); i++ {
		if g.Nodes[i-1].Scalar > g.Nodes[i].Scalar {
			t.Fatalf("nodes not sorted by scalar: %+v", g.Nodes)
		}
		if g.Nodes[i].ID != int64(i) {
			t.Fatalf("ids not dense after Normalize: %+v", g.Nodes)
		}
	}
	for _, e := range g.Edges {
		if g.Nodes[e.From].Scalar > g.Nodes[e.To].Scalar {
			t.Errorf("edge %d->%d not remapped", e.From, e.To)
		}
	}
	// JSON shape is stable.
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"vertex_id"`)) {
		t.Errorf("unexpected wire format: %s", data)
	}
}
