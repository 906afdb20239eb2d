package reeb

import (
	"sort"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// Multi-resolution simplification. Branches (extremum/saddle pairs) are
// retracted on the branch decomposition, loops are cut on the loop table,
// both driven by a persistence threshold expressed as a fraction of the
// overall scalar span, or by a caller-supplied metric.

// SimplificationMetric scores the importance of an arc. Implementations
// are pure functions of the arc's endpoint scalars and its interior mesh
// vertices; the simplifier treats the result exactly like normalized
// persistence. A nil metric selects scalar persistence.
type SimplificationMetric interface {
	Compute(lowerScalar, upperScalar float64, vertexIDs []int64) float64
}

// branchCandidate is one retractable monotone chain from an extremum leaf
// to its pairing saddle: a minimum ending at a join saddle (up true) or a
// maximum ending at a split saddle (up false). nodes runs from the
// extremum to the saddle inclusive, arcs alongside.
type branchCandidate struct {
	persistence float64
	arcs        []arcID
	nodes       []nodeID
	maxNode     nodeID
	up          bool
}

// compareCandidates orders retractions: lower persistence first, then
// fewer arcs, then the smaller largest node id. This is the deterministic
// tie-breaking rule of the simplifier.
func compareCandidates(x, y interface{}) int {
	a, b := x.(*branchCandidate), y.(*branchCandidate)
	switch {
	case a.persistence < b.persistence:
		return -1
	case a.persistence > b.persistence:
		return 1
	case len(a.arcs) != len(b.arcs):
		return len(a.arcs) - len(b.arcs)
	case a.maxNode != b.maxNode:
		return int(a.maxNode - b.maxNode)
	default:
		return 0
	}
}

// Simplify removes every feature whose persistence is at most threshold,
// branches first, then loops, and finishes with a full degree-2 elision
// pass and a republish. threshold is a fraction of the overall scalar
// span in [0, 1]; 0 means no simplification, 1 maximal simplification.
// A nil metric selects scalar persistence. Returns the number of arcs
// removed. Repeating the call with the same arguments removes nothing.
func (g *Graph) Simplify(threshold float64, metric SimplificationMetric) (int, error) {
	if !g.closed {
		return 0, ErrStreamOpen
	}
	if threshold < 0 || threshold > 1 {
		return 0, ErrInvalidThreshold
	}
	if threshold == 0 {
		return 0, nil
	}
	removed := g.simplifyBranches(threshold, metric)
	removed += g.simplifyLoops(threshold, metric)
	g.commitSimplification()
	if g.hooks != nil {
		g.hooks.OnSimplify(removed)
	}
	return removed, g.republish()
}

// arcVertexIDs returns the arc's interior mesh vertex ids in ascending
// scalar order.
func (g *Graph) arcVertexIDs(a arcID) []int64 {
	in := g.arc(a).interior
	sorted := make([]sample, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].value < sorted[j].value ||
			(sorted[i].value == sorted[j].value && sorted[i].vertexID < sorted[j].vertexID)
	})
	ids := make([]int64, len(sorted))
	for i, s := range sorted {
		ids[i] = s.vertexID
	}
	return ids
}

// arcPersistence scores one arc: the metric if provided, otherwise the
// arc's scalar span normalized by the field's overall span.
func (g *Graph) arcPersistence(a arcID, metric SimplificationMetric) float64 {
	ar := g.arc(a)
	lo, hi := g.node(ar.n0), g.node(ar.n1)
	if metric != nil {
		return metric.Compute(lo.value, hi.value, g.arcVertexIDs(a))
	}
	s := g.span()
	if s == 0 {
		return 0
	}
	return (hi.value - lo.value) / s
}

// chainPersistence scores a candidate chain: with the default metric the
// normalized span between extremum and saddle, with a custom metric the
// maximum of the metric over the chain's arcs.
func (g *Graph) chainPersistence(c *branchCandidate, metric SimplificationMetric) float64 {
	if metric != nil {
		worst := 0.0
		for _, a := range c.arcs {
			if p := g.arcPersistence(a, metric); p > worst {
				worst = p
			}
		}
		return worst
	}
	s := g.span()
	if s == 0 {
		return 0
	}
	lo, hi := c.nodes[0], c.nodes[len(c.nodes)-1]
	if !c.up {
		lo, hi = hi, lo
	}
	return (g.node(hi).value - g.node(lo).value) / s
}

// walkChain follows the single arc out of an extremum leaf through regular
// nodes until the first branching node. Returns nil if the chain ends at
// another extremum (a bare path component is essential at any threshold).
func (g *Graph) walkChain(leaf nodeID, up bool) *branchCandidate {
	c := &branchCandidate{nodes: []nodeID{leaf}, maxNode: leaf, up: up}
	cur := leaf
	for {
		var a arcID
		if up {
			a = g.node(cur).up
		} else {
			a = g.node(cur).down
		}
		c.arcs = append(c.arcs, a)
		var next nodeID
		if up {
			next = g.arc(a).n1
		} else {
			next = g.arc(a).n0
		}
		c.nodes = append(c.nodes, next)
		if next > c.maxNode {
			c.maxNode = next
		}
		if g.isRegular(next) {
			cur = next
			continue
		}
		// next is the pairing saddle; a minimum cancels at a join
		// (down-degree >= 2), a maximum at a split (up-degree >= 2)
		if up && g.downDegree(next) < 2 {
			return nil
		}
		if !up && g.upDegree(next) < 2 {
			return nil
		}
		return c
	}
}

// collectBranchCandidates gathers every retractable chain with
// persistence at most threshold, in deterministic node order.
func (g *Graph) collectBranchCandidates(threshold float64, metric SimplificationMetric) []*branchCandidate {
	var out []*branchCandidate
	for _, n := range g.liveNodesSorted() {
		down, upDeg := g.downDegree(n), g.upDegree(n)
		var c *branchCandidate
		switch {
		case down == 0 && upDeg == 1:
			c = g.walkChain(n, true)
		case upDeg == 0 && down == 1:
			c = g.walkChain(n, false)
		}
		if c == nil {
			continue
		}
		c.persistence = g.chainPersistence(c, metric)
		if c.persistence <= threshold {
			out = append(out, c)
		}
	}
	return out
}

// candidateValid re-checks a queued candidate against the live structure;
// retractions invalidate overlapping candidates, which are then recollected
// in the next round.
func (g *Graph) candidateValid(c *branchCandidate) bool {
	for _, n := range c.nodes {
		if !g.nodeAlive(n) {
			return false
		}
	}
	for i, a := range c.arcs {
		if !g.arcAlive(a) {
			return false
		}
		lo, hi := c.nodes[i], c.nodes[i+1]
		if !c.up {
			lo, hi = hi, lo
		}
		if g.arc(a).n0 != lo || g.arc(a).n1 != hi {
			return false
		}
	}
	leaf, saddle := c.nodes[0], c.nodes[len(c.nodes)-1]
	for _, n := range c.nodes[1 : len(c.nodes)-1] {
		if !g.isRegular(n) {
			return false
		}
	}
	if c.up {
		return g.downDegree(leaf) == 0 && g.upDegree(leaf) == 1 && g.downDegree(saddle) >= 2
	}
	return g.upDegree(leaf) == 0 && g.downDegree(leaf) == 1 && g.upDegree(saddle) >= 2
}

// simplifyBranches retracts low-persistence chains until none remain.
// Candidates are drained from a priority queue; stale entries are skipped
// and recollected, so every round removes the currently least persistent
// feature first.
func (g *Graph) simplifyBranches(threshold float64, metric SimplificationMetric) int {
	removed := 0
	for {
		cands := g.collectBranchCandidates(threshold, metric)
		if len(cands) == 0 {
			return removed
		}
		queue := binaryheap.NewWith(compareCandidates)
		for _, c := range cands {
			queue.Push(c)
		}
		progress := false
		for !queue.Empty() {
			v, _ := queue.Pop()
			c := v.(*branchCandidate)
			if !g.candidateValid(c) {
				continue
			}
			g.retractBranch(c)
			removed += len(c.arcs)
			progress = true
		}
		if !progress {
			return removed
		}
	}
}

// retractBranch deletes every arc and interior node of the chain, then
// collapses the saddle if it became regular. The retracted region's mesh
// vertices are folded into the surviving arc at the saddle.
func (g *Graph) retractBranch(c *branchCandidate) {
	var rec Cancellation
	var samples []sample

	for _, a := range c.arcs {
		ar := g.arc(a)
		samples = append(samples, ar.interior...)
		rec.RemovedArcs = append(rec.RemovedArcs,
			[2]int64{g.node(ar.n0).vertexID, g.node(ar.n1).vertexID})
		g.removeUpArc(ar.n0, a)
		g.removeDownArc(ar.n1, a)
		g.dropLoopArc(a)
		g.deleteArc(a)
	}
	for _, n := range c.nodes[:len(c.nodes)-1] {
		nd := g.node(n)
		samples = append(samples, sample{vertexID: nd.vertexID, value: nd.value})
		g.deleteNode(n)
	}

	saddle := c.nodes[len(c.nodes)-1]
	var target arcID
	if g.isSimple(saddle) {
		g.node(saddle).critical = false
		target = g.vertexCollapse(saddle)
		rec.InsertedArcs = append(rec.InsertedArcs,
			[2]int64{g.node(g.arc(target).n0).vertexID, g.node(g.arc(target).n1).vertexID})
	} else if c.up {
		target = g.node(saddle).down
	} else {
		target = g.node(saddle).up
	}
	if target != 0 {
		g.arc(target).interior = append(g.arc(target).interior, samples...)
	}
	if g.historyOn {
		g.history = append(g.history, rec)
	}
}

// simplifyLoops cuts every loop-table arc with persistence at most
// threshold, collapsing endpoints that become regular. The remaining
// table entries stay valid for later calls.
func (g *Graph) simplifyLoops(threshold float64, metric SimplificationMetric) int {
	removed := 0
	table := make([]arcID, len(g.loopArcs))
	copy(table, g.loopArcs)
	for _, a := range table {
		if !g.arcAlive(a) {
			continue
		}
		if g.arcPersistence(a, metric) > threshold {
			continue
		}
		ar := g.arc(a)
		n0, n1 := ar.n0, ar.n1
		rec := Cancellation{RemovedArcs: [][2]int64{
			{g.node(n0).vertexID, g.node(n1).vertexID},
		}}
		samples := append([]sample(nil), ar.interior...)
		g.removeUpArc(n0, a)
		g.removeDownArc(n1, a)
		g.dropLoopArc(a)
		g.deleteArc(a)

		var target arcID
		for _, n := range []nodeID{n0, n1} {
			if g.nodeAlive(n) && g.isSimple(n) {
				g.node(n).critical = false
				sp := g.vertexCollapse(n)
				rec.InsertedArcs = append(rec.InsertedArcs,
					[2]int64{g.node(g.arc(sp).n0).vertexID, g.node(g.arc(sp).n1).vertexID})
				if target == 0 {
					target = sp
				}
			}
		}
		if target != 0 {
			g.arc(target).interior = append(g.arc(target).interior, samples...)
		}
		if g.historyOn {
			g.history = append(g.history, rec)
		}
		removed++
	}
	return removed
}

// commitSimplification re-runs degree-2 elision over the whole graph and
// re-derives criticality from the surviving structure, so the published
// view only carries genuine critical points.
func (g *Graph) commitSimplification() {
	for i := 1; i < len(g.nodes); i++ {
		n := nodeID(i)
		if !g.nodeAlive(n) {
			continue
		}
		if g.isSimple(n) {
			g.nodes[n].critical = false
			g.vertexCollapse(n)
		}
	}
	for i := 1; i < len(g.nodes); i++ {
		if g.nodeAlive(nodeID(i)) {
			g.nodes[i].critical = true
		}
	}
}
