package reeb

import (
	"bytes"
	"testing"

	"github.com/matzehuels/topograph/pkg/graph"
)

// mustTri streams a triangle and fails the test on error.
func mustTri(t *testing.T, g *Graph, v0 int64, s0 float64, v1 int64, s1 float64, v2 int64, s2 float64) {
	t.Helper()
	if err := g.StreamTriangle(v0, s0, v1, s1, v2, s2); err != nil {
		t.Fatalf("StreamTriangle(%d,%d,%d): %v", v0, v1, v2, err)
	}
}

// mustClose closes the stream and fails the test on error.
func mustClose(t *testing.T, g *Graph) {
	t.Helper()
	if err := g.CloseStream(); err != nil {
		t.Fatalf("CloseStream: %v", err)
	}
}

// mustDoc publishes and fails the test on error.
func mustDoc(t *testing.T, g *Graph) *graph.Graph {
	t.Helper()
	doc, err := g.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	return doc
}

// checkStructure verifies the structural invariants on the live store:
// monotone arcs, well-formed doubly-linked arc lists, and label chains
// that stay on their arc.
func checkStructure(t *testing.T, g *Graph) {
	t.Helper()
	for i := 1; i < len(g.arcs); i++ {
		a := arcID(i)
		if !g.arcAlive(a) {
			continue
		}
		ar := g.arc(a)
		if !g.less(ar.n0, ar.n1) {
			t.Errorf("arc %d not monotone: %d -> %d", a, ar.n0, ar.n1)
		}
		found := false
		for x := g.node(ar.n0).up; x != 0; x = g.arc(x).upNext {
			if x == a {
				found = true
			}
		}
		if !found {
			t.Errorf("arc %d missing from up list of its lower node", a)
		}
		found = false
		for x := g.node(ar.n1).down; x != 0; x = g.arc(x).downNext {
			if x == a {
				found = true
			}
		}
		if !found {
			t.Errorf("arc %d missing from down list of its upper node", a)
		}
		for l := ar.labelHead; l != 0; l = g.label(l).hNext {
			if g.label(l).arc != a {
				t.Errorf("label %d on arc %d claims arc %d", l, a, g.label(l).arc)
			}
		}
	}
}

func TestSingleTriangle(t *testing.T) {
	g := New()
	mustTri(t, g, 0, 0.0, 1, 1.0, 2, 2.0)
	checkStructure(t, g)
	mustClose(t, g)

	if got := g.LoopCount(); got != 0 {
		t.Errorf("loops = %d, want 0", got)
	}
	if got := g.LabelCount(); got != 0 {
		t.Errorf("labels after close = %d, want 0", got)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("nodes = %d, want 2 (interior vertex collapsed)", got)
	}
	if got := g.ArcCount(); got != 1 {
		t.Errorf("arcs = %d, want 1", got)
	}
	if got := g.ConnectedComponentCount(); got != 1 {
		t.Errorf("components = %d, want 1", got)
	}

	doc := mustDoc(t, g)
	if doc.NodeCount() != 2 || doc.EdgeCount() != 1 {
		t.Fatalf("published %d nodes / %d edges, want 2/1", doc.NodeCount(), doc.EdgeCount())
	}
	if doc.Nodes[0].VertexID != 0 || doc.Nodes[1].VertexID != 2 {
		t.Errorf("published vertices = %d,%d, want 0,2", doc.Nodes[0].VertexID, doc.Nodes[1].VertexID)
	}
	e := doc.Edges[0]
	if e.From != 0 || e.To != 1 {
		t.Errorf("edge = %d->%d, want 0->1", e.From, e.To)
	}
	if len(e.VertexIDs) != 1 || e.VertexIDs[0] != 1 {
		t.Errorf("interior = %v, want [1]", e.VertexIDs)
	}
}

func TestStreamIdempotent(t *testing.T) {
	build := func(repeat bool) []byte {
		g := New()
		mustTri(t, g, 0, 0.0, 1, 1.0, 2, 2.0)
		if repeat {
			mustTri(t, g, 0, 0.0, 1, 1.0, 2, 2.0)
		}
		mustClose(t, g)
		data, err := graph.MarshalGraph(mustDoc(t, g))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}
	if !bytes.Equal(build(false), build(true)) {
		t.Error("streaming the same simplex twice changed the published graph")
	}
}

func TestQuadArtifactLoop(t *testing.T) {
	// Two triangles over a flat diagonal (equal scalars on vertices 1 and
	// 2). The zip skips flat edges, so the arcs merge and re-split around
	// a zero-span cycle.
	g := New()
	mustTri(t, g, 0, 0.0, 1, 1.0, 2, 1.0)
	mustTri(t, g, 1, 1.0, 3, 2.0, 2, 1.0)
	checkStructure(t, g)
	mustClose(t, g)

	if got := g.LoopCount(); got != 1 {
		t.Fatalf("loops = %d, want 1", got)
	}
	doc := mustDoc(t, g)
	if got := doc.Betti1(); got != 1 {
		t.Errorf("published Betti1 = %d, want 1", got)
	}

	removed, err := g.Simplify(1.0, nil)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if removed < 1 {
		t.Errorf("removed = %d, want >= 1", removed)
	}
	if got := g.LoopCount(); got != 0 {
		t.Errorf("loops after simplify = %d, want 0", got)
	}

	doc = mustDoc(t, g)
	if doc.NodeCount() != 2 || doc.EdgeCount() != 1 {
		t.Fatalf("published %d nodes / %d edges, want 2/1", doc.NodeCount(), doc.EdgeCount())
	}
	if doc.Nodes[0].VertexID != 0 || doc.Nodes[1].VertexID != 3 {
		t.Errorf("published endpoints = %d,%d, want 0,3", doc.Nodes[0].VertexID, doc.Nodes[1].VertexID)
	}
}

func TestTetrahedron(t *testing.T) {
	g := New()
	if err := g.StreamTetrahedron(0, 0.0, 1, 1.0, 2, 2.0, 3, 3.0); err != nil {
		t.Fatalf("StreamTetrahedron: %v", err)
	}
	checkStructure(t, g)
	mustClose(t, g)

	if got := g.LoopCount(); got != 0 {
		t.Errorf("loops = %d, want 0", got)
	}
	doc := mustDoc(t, g)
	if doc.NodeCount() != 2 || doc.EdgeCount() != 1 {
		t.Fatalf("published %d nodes / %d edges, want 2/1 (linear graph)", doc.NodeCount(), doc.EdgeCount())
	}
	e := doc.Edges[0]
	if len(e.VertexIDs) != 2 || e.VertexIDs[0] != 1 || e.VertexIDs[1] != 2 {
		t.Errorf("interior = %v, want [1 2]", e.VertexIDs)
	}
}

func TestStreamOrderInvariance(t *testing.T) {
	// The annulus band: six triangles between an outer and an inner
	// triangle ring, scalar increasing across the ring.
	tris := [][3]int64{
		{3, 4, 0}, {4, 1, 0}, {4, 5, 1}, {5, 2, 1}, {5, 3, 2}, {3, 0, 2},
	}
	scalars := map[int64]float64{0: 0.0, 1: 4.6, 2: 10.0, 3: 4.0, 4: 4.4, 5: 5.0}

	build := func(order []int) []byte {
		g := New()
		for _, i := range order {
			tr := tris[i]
			mustTri(t, g, tr[0], scalars[tr[0]], tr[1], scalars[tr[1]], tr[2], scalars[tr[2]])
		}
		checkStructure(t, g)
		mustClose(t, g)
		data, err := graph.MarshalGraph(mustDoc(t, g))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	a := build([]int{0, 1, 2, 3, 4, 5})
	b := build([]int{5, 3, 1, 4, 2, 0})
	if !bytes.Equal(a, b) {
		t.Errorf("published graph depends on streaming order:\n%s\nvs\n%s", a, b)
	}
}

func TestStreamErrors(t *testing.T) {
	g := New()

	if err := g.StreamTriangle(0, 0, 0, 1, 2, 2); err != ErrNotSimplicial {
		t.Errorf("degenerate triangle: err = %v, want ErrNotSimplicial", err)
	}
	if err := g.StreamTetrahedron(0, 0, 1, 1, 2, 2, 2, 3); err != ErrNotSimplicial {
		t.Errorf("degenerate tetrahedron: err = %v, want ErrNotSimplicial", err)
	}

	mustTri(t, g, 0, 0.0, 1, 1.0, 2, 2.0)
	if err := g.StreamTriangle(0, 0.5, 1, 1.0, 2, 2.0); err != ErrScalarMismatch {
		t.Errorf("inconsistent scalar: err = %v, want ErrScalarMismatch", err)
	}
	// The failed call must not have changed the graph.
	if got := g.NodeCount(); got != 3 {
		t.Errorf("nodes after rejected stream = %d, want 3", got)
	}

	if _, err := g.Simplify(0.5, nil); err != ErrStreamOpen {
		t.Errorf("simplify before close: err = %v, want ErrStreamOpen", err)
	}
	if _, err := g.Document(); err != ErrStreamOpen {
		t.Errorf("publish before close: err = %v, want ErrStreamOpen", err)
	}

	mustClose(t, g)
	if err := g.StreamTriangle(3, 0, 4, 1, 5, 2); err != ErrStreamClosed {
		t.Errorf("stream after close: err = %v, want ErrStreamClosed", err)
	}
	if err := g.CloseStream(); err != ErrStreamClosed {
		t.Errorf("double close: err = %v, want ErrStreamClosed", err)
	}
}

func TestEmptyStream(t *testing.T) {
	g := New()
	mustClose(t, g)
	if g.NodeCount() != 0 || g.ArcCount() != 0 || g.LoopCount() != 0 {
		t.Errorf("empty stream: nodes=%d arcs=%d loops=%d, want all 0",
			g.NodeCount(), g.ArcCount(), g.LoopCount())
	}
	doc := mustDoc(t, g)
	if doc.NodeCount() != 0 || doc.EdgeCount() != 0 {
		t.Errorf("empty publish: %d nodes / %d edges", doc.NodeCount(), doc.EdgeCount())
	}
}

func TestDeepCopySnapshot(t *testing.T) {
	g := New()
	mustTri(t, g, 0, 0.0, 1, 1.0, 2, 2.0)

	nodesBefore, arcsBefore, labelsBefore := g.NodeCount(), g.ArcCount(), g.LabelCount()

	snap := g.DeepCopy()
	mustClose(t, snap)
	doc := mustDoc(t, snap)
	if doc.NodeCount() != 2 || doc.EdgeCount() != 1 {
		t.Errorf("snapshot publish: %d nodes / %d edges, want 2/1", doc.NodeCount(), doc.EdgeCount())
	}

	// Original stream is untouched and still open.
	if g.Closed() {
		t.Fatal("original was closed by snapshot close")
	}
	if g.NodeCount() != nodesBefore || g.ArcCount() != arcsBefore || g.LabelCount() != labelsBefore {
		t.Errorf("original changed: nodes %d->%d arcs %d->%d labels %d->%d",
			nodesBefore, g.NodeCount(), arcsBefore, g.ArcCount(), labelsBefore, g.LabelCount())
	}
	mustTri(t, g, 1, 1.0, 3, 3.0, 2, 2.0)
	mustClose(t, g)
	checkStructure(t, g)
}

func TestVertexSimplexCountElision(t *testing.T) {
	// Declaring per-vertex simplex counts finalizes interior vertices
	// mid-stream, collapsing them immediately.
	g := New()
	for vid, n := range map[int64]int{0: 1, 1: 1, 2: 1} {
		if err := g.SetVertexSimplexCount(vid, n); err != nil {
			t.Fatalf("SetVertexSimplexCount: %v", err)
		}
	}
	mustTri(t, g, 0, 0.0, 1, 1.0, 2, 2.0)
	// Vertex 1 was regular and fully streamed: gone before close.
	if got := g.NodeCount(); got != 2 {
		t.Errorf("nodes after declared stream = %d, want 2", got)
	}
	mustClose(t, g)
	doc := mustDoc(t, g)
	if doc.EdgeCount() != 1 || len(doc.Edges[0].VertexIDs) != 1 {
		t.Errorf("published = %d edges, interior %v", doc.EdgeCount(), doc.Edges[0].VertexIDs)
	}
}

func TestScalarRange(t *testing.T) {
	g := New()
	mustTri(t, g, 0, -1.5, 1, 1.0, 2, 7.25)
	min, max := g.ScalarRange()
	if min != -1.5 || max != 7.25 {
		t.Errorf("range = [%g, %g], want [-1.5, 7.25]", min, max)
	}
}
