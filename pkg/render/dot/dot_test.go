package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/topograph/pkg/graph"
)

func loopGraph() *graph.Graph {
	g := graph.New()
	a := g.AddNode(0, 0.0)
	b := g.AddNode(3, 1.0)
	c := g.AddNode(7, 2.0)
	g.AddEdge(a, b, []int64{1, 2})
	g.AddEdge(b, c, nil)
	g.AddEdge(a, c, nil)
	return g
}

func TestToDOT(t *testing.T) {
	src := ToDOT(loopGraph(), Options{})

	for _, want := range []string{
		"digraph reeb",
		"rankdir=BT",
		`0 [label="v0"]`,
		`1 [label="v3"]`,
		"0 -> 1;",
		"1 -> 2;",
		"0 -> 2;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("DOT output missing %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "label=\"2\"") {
		t.Error("sample counts should only appear in detailed mode")
	}
}

func TestToDOTDetailed(t *testing.T) {
	src := ToDOT(loopGraph(), Options{Detailed: true})
	if !strings.Contains(src, `label="2"`) {
		t.Errorf("detailed DOT should label edge sample counts:\n%s", src)
	}
	if !strings.Contains(src, "v0\\n0") {
		t.Errorf("detailed DOT should include scalars:\n%s", src)
	}
}

func TestRenderDotPassthrough(t *testing.T) {
	src := ToDOT(loopGraph(), Options{})
	out, err := Render(src, "dot")
	if err != nil {
		t.Fatalf("Render(dot): %v", err)
	}
	if string(out) != src {
		t.Error("dot format should pass through unchanged")
	}
	if _, err := Render(src, "pdf"); err == nil {
		t.Error("unsupported format should error")
	}
}
