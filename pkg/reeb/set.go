package reeb

import "github.com/matzehuels/topograph/pkg/graph"

// Set replaces the instance with a pre-built published graph, bypassing
// streaming. The import is validated rather than trusted: every edge must
// reference existing nodes and run from the lesser to the greater
// endpoint under the (scalar, vertex id) order, and mesh vertex ids must
// be unique; violations return ErrInvalidImport and leave the instance
// untouched. The instance comes out closed, with the loop table
// recomputed and every node critical. Interior vertex ids of imported
// edges keep their document order through interpolated scalars (the
// document does not carry interior scalars).
func (g *Graph) Set(doc *graph.Graph) error {
	byExt := make(map[int64]int, len(doc.Nodes))
	seen := make(map[int64]struct{}, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if _, dup := seen[n.VertexID]; dup {
			return ErrInvalidImport
		}
		seen[n.VertexID] = struct{}{}
		byExt[n.ID] = i
	}
	lessDoc := func(a, b graph.Node) bool {
		return a.Scalar < b.Scalar || (a.Scalar == b.Scalar && a.VertexID < b.VertexID)
	}
	for _, e := range doc.Edges {
		fi, okF := byExt[e.From]
		ti, okT := byExt[e.To]
		if !okF || !okT || !lessDoc(doc.Nodes[fi], doc.Nodes[ti]) {
			return ErrInvalidImport
		}
	}

	fresh := New()
	ext := make(map[int64]nodeID, len(doc.Nodes))
	for _, n := range doc.Nodes {
		id := fresh.touchVertex(n.VertexID, n.Scalar)
		nd := fresh.node(id)
		nd.finalized = true
		nd.critical = true
		ext[n.ID] = id
	}
	for _, e := range doc.Edges {
		lo, hi := ext[e.From], ext[e.To]
		a := fresh.newArc()
		ar := fresh.arc(a)
		ar.n0, ar.n1 = lo, hi
		fresh.addUpArc(lo, a)
		fresh.addDownArc(hi, a)
		loV := fresh.node(lo).value
		span := fresh.node(hi).value - loV
		for k, vid := range e.VertexIDs {
			frac := float64(k+1) / float64(len(e.VertexIDs)+1)
			ar.interior = append(ar.interior, sample{vertexID: vid, value: loV + span*frac})
		}
	}
	fresh.findLoops()
	fresh.closed = true

	sink, hooks, history := g.sink, g.hooks, g.historyOn
	*g = *fresh
	g.sink, g.hooks, g.historyOn = sink, hooks, history
	return g.republish()
}
