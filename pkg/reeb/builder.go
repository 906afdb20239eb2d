package reeb

import "sort"

// Streaming entry points and the vertex registry. Simplices arrive as
// (vertex id, scalar) tuples; vertices are interned into nodes on first
// sight and finalized once no open simplex references them.

// touchVertex interns a mesh vertex, allocating its node on first sight.
// Scalar consistency is validated by the callers before anything is
// allocated, so touchVertex itself cannot fail.
func (g *Graph) touchVertex(vid int64, scalar float64) nodeID {
	if n, ok := g.vertexMap[vid]; ok {
		return n
	}
	n := g.newNode()
	nd := g.node(n)
	nd.vertexID = vid
	nd.value = scalar
	g.vertexMap[vid] = n
	g.touchRange(scalar)
	return n
}

// checkScalars rejects a simplex whose vertices disagree with previously
// streamed scalar values, before any state is touched.
func (g *Graph) checkScalars(vids []int64, scalars []float64) error {
	for i, vid := range vids {
		if n, ok := g.vertexMap[vid]; ok && g.node(n).value != scalars[i] {
			return ErrScalarMismatch
		}
	}
	return nil
}

// SetVertexSimplexCount declares how many not-yet-streamed simplices
// reference the vertex. Each streamed simplex decrements the count; when
// it reaches zero the vertex is finalized immediately, which is what
// allows regular interior vertices to be elided mid-stream. Vertices
// without a declaration stay open until CloseStream.
func (g *Graph) SetVertexSimplexCount(vid int64, count int) error {
	if g.closed {
		return ErrStreamClosed
	}
	if count <= 0 {
		delete(g.remaining, vid)
		return nil
	}
	g.remaining[vid] = count
	return nil
}

// noteStreamed records that one more simplex referencing vid has been
// streamed, finalizing the vertex when its declared count is exhausted.
func (g *Graph) noteStreamed(vid int64) {
	c, ok := g.remaining[vid]
	if !ok {
		return
	}
	c--
	if c > 0 {
		g.remaining[vid] = c
		return
	}
	delete(g.remaining, vid)
	g.endVertex(g.vertexMap[vid])
}

// endVertex finalizes a node. A node that is structurally regular at
// finalization is collapsed on the spot; anything else is a confirmed
// critical point and stays.
func (g *Graph) endVertex(n nodeID) {
	nd := g.node(n)
	nd.finalized = true
	if !nd.critical && g.isSimple(n) {
		g.vertexCollapse(n)
		return
	}
	nd.critical = true
}

// layEdge installs the mesh edge (lo, hi) for a path carrying tag. If the
// edge was streamed before, its tag's vertical chain spans the edge's
// current image in the graph and the walk follows it (a merged edge must
// not grow a parallel arc). Otherwise an existing direct arc is reused or
// a fresh one is created, and the edge is registered under tag. Returns
// the first arc of the span and the last label laid, for vertical
// chaining by the caller.
func (g *Graph) layEdge(lo, hi nodeID, tag uint64, prev labelID) (arcID, labelID) {
	key := edgeKey{lo, hi}
	if etag, ok := g.edgeTags[key]; ok {
		var first arcID
		for cur := lo; cur != hi; {
			el := g.findUpLabel(cur, etag)
			if el == 0 {
				panic("reeb: edge span chain is broken")
			}
			a := g.label(el).arc
			if first == 0 {
				first = a
			}
			prev = g.setLabel(a, tag, prev)
			cur = g.arc(a).n1
		}
		return first, prev
	}
	for a := g.node(lo).up; a != 0; a = g.arc(a).upNext {
		if g.arc(a).n1 == hi {
			if tag != 0 {
				g.edgeTags[key] = tag
			}
			return a, g.setLabel(a, tag, prev)
		}
	}
	a := g.newArc()
	ar := g.arc(a)
	ar.n0, ar.n1 = lo, hi
	g.addUpArc(lo, a)
	g.addDownArc(hi, a)
	if tag != 0 {
		g.edgeTags[key] = tag
	}
	return a, g.setLabel(a, tag, prev)
}

// addPath inserts a monotonic path through the given nodes, creating any
// missing arcs and labeling every traversed arc with tag. Re-issuing the
// same path with the same tag is a no-op. Returns the first arc.
func (g *Graph) addPath(path []nodeID, tag uint64) arcID {
	var first arcID
	var prev labelID
	for i := 0; i+1 < len(path); i++ {
		lo, hi := path[i], path[i+1]
		if g.less(hi, lo) {
			lo, hi = hi, lo
		}
		a, last := g.layEdge(lo, hi, tag, prev)
		prev = last
		if first == 0 {
			first = a
		}
	}
	return first
}

// addTriangle streams one triangle over already-interned nodes: the two
// monotonic boundary paths L->M->U and L->U are inserted under fresh tags
// and zipped, closing the triangle's interior.
func (g *Graph) addTriangle(a, b, c nodeID) {
	s := []nodeID{a, b, c}
	sort.Slice(s, func(i, j int) bool { return g.less(s[i], s[j]) })
	tagA := g.nextTag
	tagB := g.nextTag + 1
	g.nextTag += 2
	g.addPath(s, tagA)
	g.addPath([]nodeID{s[0], s[2]}, tagB)
	g.collapse(s[0], s[2], tagA, tagB)
}

// StreamTriangle adds one triangle of a surface mesh to the stream. The
// three vertex ids must be distinct and each vertex must keep the scalar
// value it was first streamed with. The stream must be finalized with
// CloseStream.
func (g *Graph) StreamTriangle(v0 int64, s0 float64, v1 int64, s1 float64, v2 int64, s2 float64) error {
	if g.closed {
		return ErrStreamClosed
	}
	if v0 == v1 || v0 == v2 || v1 == v2 {
		return ErrNotSimplicial
	}
	if err := g.checkScalars([]int64{v0, v1, v2}, []float64{s0, s1, s2}); err != nil {
		return err
	}
	n0 := g.touchVertex(v0, s0)
	n1 := g.touchVertex(v1, s1)
	n2 := g.touchVertex(v2, s2)
	g.addTriangle(n0, n1, n2)
	g.noteStreamed(v0)
	g.noteStreamed(v1)
	g.noteStreamed(v2)
	g.streamed++
	if g.hooks != nil {
		g.hooks.OnSimplex(g.streamed)
	}
	return nil
}

// StreamTetrahedron adds one tetrahedron of a volume mesh to the stream.
// With the vertices sorted as L < M1 < M2 < U, the four faces are
// processed as triangles in the order (L,M1,M2), (L,M1,U), (L,M2,U),
// (M1,M2,U); the zip is confluent, so the order only pins determinism.
func (g *Graph) StreamTetrahedron(v0 int64, s0 float64, v1 int64, s1 float64, v2 int64, s2 float64, v3 int64, s3 float64) error {
	if g.closed {
		return ErrStreamClosed
	}
	vids := []int64{v0, v1, v2, v3}
	for i := 0; i < len(vids); i++ {
		for j := i + 1; j < len(vids); j++ {
			if vids[i] == vids[j] {
				return ErrNotSimplicial
			}
		}
	}
	if err := g.checkScalars(vids, []float64{s0, s1, s2, s3}); err != nil {
		return err
	}
	s := []nodeID{
		g.touchVertex(v0, s0),
		g.touchVertex(v1, s1),
		g.touchVertex(v2, s2),
		g.touchVertex(v3, s3),
	}
	sort.Slice(s, func(i, j int) bool { return g.less(s[i], s[j]) })
	g.addTriangle(s[0], s[1], s[2])
	g.addTriangle(s[0], s[1], s[3])
	g.addTriangle(s[0], s[2], s[3])
	g.addTriangle(s[1], s[2], s[3])
	for _, vid := range vids {
		g.noteStreamed(vid)
	}
	g.streamed++
	if g.hooks != nil {
		g.hooks.OnSimplex(g.streamed)
	}
	return nil
}

// CloseStream finalizes the stream: every still-open vertex is finalized
// (in ascending scalar order, for determinism), all labels are flushed,
// and the loop table is computed. Streaming calls fail afterwards;
// Simplify and publishing become legal. If a sink is attached the graph
// is published.
func (g *Graph) CloseStream() error {
	if g.closed {
		return ErrStreamClosed
	}
	open := make([]nodeID, 0, len(g.vertexMap))
	for _, n := range g.vertexMap {
		if g.nodeAlive(n) && !g.node(n).finalized {
			open = append(open, n)
		}
	}
	sort.Slice(open, func(i, j int) bool { return g.less(open[i], open[j]) })
	for _, n := range open {
		g.endVertex(n)
	}
	g.flushLabels()
	g.edgeTags = nil
	g.remaining = nil
	g.findLoops()
	g.closed = true
	if g.hooks != nil {
		g.hooks.OnClose(g.nodeCount, g.arcCount, len(g.loopArcs))
	}
	return g.republish()
}
