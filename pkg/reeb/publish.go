package reeb

import (
	"sort"

	"github.com/matzehuels/topograph/pkg/graph"
)

// Sink is the write-only directed-graph collaborator the publisher emits
// into. Reset clears any prior emission so republishing stays idempotent;
// AddNode returns the external id used to address the node in AddEdge.
// [graph.Graph] is the canonical implementation.
type Sink interface {
	Reset()
	AddNode(vertexID int64, scalar float64) int64
	AddEdge(from, to int64, vertexIDs []int64)
}

// publishedEdge is one maximal monotone chain between two emitted nodes.
type publishedEdge struct {
	from, to int64
	interior []sample
}

// publishInto re-emits the surviving graph into s: one external node per
// critical node in ascending (value, vertex id) order, one external edge
// per maximal monotone chain, carrying the chain's interior mesh vertices
// sorted by scalar. Regular interior nodes are suppressed and folded into
// the edge they sit on. Emission order is canonical, so identical graphs
// publish identically regardless of streaming order.
func (g *Graph) publishInto(s Sink) {
	s.Reset()

	ext := make(map[nodeID]int64)
	var emitted []nodeID
	for _, n := range g.liveNodesSorted() {
		if g.isRegular(n) {
			continue
		}
		ext[n] = s.AddNode(g.node(n).vertexID, g.node(n).value)
		emitted = append(emitted, n)
	}

	var edges []publishedEdge
	for _, n := range emitted {
		for a := g.node(n).up; a != 0; a = g.arc(a).upNext {
			e := publishedEdge{from: ext[n]}
			cur := a
			for {
				e.interior = append(e.interior, g.arc(cur).interior...)
				top := g.arc(cur).n1
				if !g.isRegular(top) {
					e.to = ext[top]
					break
				}
				nd := g.node(top)
				e.interior = append(e.interior, sample{vertexID: nd.vertexID, value: nd.value})
				cur = nd.up
			}
			sort.Slice(e.interior, func(i, j int) bool {
				si, sj := e.interior[i], e.interior[j]
				return si.value < sj.value || (si.value == sj.value && si.vertexID < sj.vertexID)
			})
			edges = append(edges, e)
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		ei, ej := edges[i], edges[j]
		if ei.from != ej.from {
			return ei.from < ej.from
		}
		if ei.to != ej.to {
			return ei.to < ej.to
		}
		if len(ei.interior) != len(ej.interior) {
			return len(ei.interior) < len(ej.interior)
		}
		for k := range ei.interior {
			if ei.interior[k].vertexID != ej.interior[k].vertexID {
				return ei.interior[k].vertexID < ej.interior[k].vertexID
			}
		}
		return false
	})

	for _, e := range edges {
		ids := make([]int64, len(e.interior))
		for i, s := range e.interior {
			ids[i] = s.vertexID
		}
		s.AddEdge(e.from, e.to, ids)
	}
}

// republish pushes the current graph into the attached sink, if any.
func (g *Graph) republish() error {
	if g.sink != nil {
		g.publishInto(g.sink)
	}
	return nil
}

// Publish emits the surviving graph into s. The stream must be closed;
// for an intermediate view during streaming, DeepCopy the instance and
// close the copy.
func (g *Graph) Publish(s Sink) error {
	if !g.closed {
		return ErrStreamOpen
	}
	g.publishInto(s)
	return nil
}

// Document publishes into a fresh graph document and returns it.
func (g *Graph) Document() (*graph.Graph, error) {
	d := graph.New()
	if err := g.Publish(d); err != nil {
		return nil, err
	}
	return d, nil
}
