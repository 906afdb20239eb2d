package reeb

// The zip. When a simplex interior is closed, the two monotonic boundary
// paths of the simplex (identified by their tags) are walked upward in
// lockstep from the shared start node and merged level by level. Splits
// and merges keep every resident tag's vertical chain spanning exactly
// the current image of its path, which is what later simplices rely on
// when they reuse an already-merged edge.

// collapse zips the paths carrying tagA and tagB from start up to end.
// At each step, with a and b the two current arcs out of node n:
//
//   - a == b: the paths already coincide here, advance.
//   - equal upper endpoints: merge b into a and stay.
//   - different upper endpoints, with a's strictly above n in scalar
//     value: split b at a's upper endpoint and merge the remainder.
//   - different upper endpoints at the same scalar value as n (a flat
//     edge): advance past without merging. This deliberately leaves a
//     zero-persistence cycle behind; flat artifacts are the loop
//     simplifier's job, not the zip's.
//
// The walk ends at end, or early when one side has no label above the
// current node (which only happens downstream of a flat skip).
func (g *Graph) collapse(start, end nodeID, tagA, tagB uint64) {
	if start == end {
		return
	}
	n := start
	for n != end {
		la := g.findUpLabel(n, tagA)
		lb := g.findUpLabel(n, tagB)
		if la == 0 || lb == 0 {
			return
		}
		a := g.label(la).arc
		b := g.label(lb).arc
		if a == b {
			n = g.arc(a).n1
			continue
		}
		if g.less(g.arc(b).n1, g.arc(a).n1) {
			a, b = b, a
		}
		if g.arc(a).n1 == g.arc(b).n1 {
			g.mergeArcs(a, b)
			continue
		}
		m := g.arc(a).n1
		if g.node(m).value > g.node(n).value {
			rem := g.splitArc(b, m)
			g.mergeArcs(a, rem)
			continue
		}
		n = m
	}
}

// mergeArcs merges arc b into arc a. Both must span the same node pair.
// b's labels move onto a; if a already carries a tag, the duplicate is
// deleted and its vertical chain rethreaded. b's interior samples are
// appended to a and b is deleted.
func (g *Graph) mergeArcs(a, b arcID) {
	if g.arc(a).n0 != g.arc(b).n0 || g.arc(a).n1 != g.arc(b).n1 {
		panic("reeb: merging arcs with different endpoints")
	}
	g.removeUpArc(g.arc(b).n0, b)
	g.removeDownArc(g.arc(b).n1, b)
	for l := g.arc(b).labelHead; l != 0; {
		next := g.label(l).hNext
		g.unlinkLabelH(l)
		if g.findLabelOnArc(a, g.label(l).tag) != 0 {
			g.spliceLabelV(l)
			g.deleteLabel(l)
		} else {
			g.appendLabelH(a, l)
		}
		l = next
	}
	g.arc(a).interior = append(g.arc(a).interior, g.arc(b).interior...)
	g.replaceLoopArc(b, a)
	g.deleteArc(b)
}

// splitArc splits arc b at node m, which must lie strictly between b's
// endpoints in the node order. b keeps its identity for the upper part
// (m -> b.n1); a new remainder arc spans b.n0 -> m and receives, for
// every tag on b, a label chained vertically directly below b's, so each
// tag keeps spanning its full path. Interior samples are divided at m.
// Returns the remainder arc.
func (g *Graph) splitArc(b arcID, m nodeID) arcID {
	r := g.newArc()
	lo := g.arc(b).n0

	g.removeUpArc(lo, b)
	g.arc(b).n0 = m
	g.addUpArc(m, b)

	g.arc(r).n0, g.arc(r).n1 = lo, m
	g.addUpArc(lo, r)
	g.addDownArc(m, r)

	for l := g.arc(b).labelHead; l != 0; l = g.label(l).hNext {
		g.insertLabelBefore(r, l)
	}

	mv, mvid := g.node(m).value, g.node(m).vertexID
	var lower, upper []sample
	for _, s := range g.arc(b).interior {
		if s.value < mv || (s.value == mv && s.vertexID < mvid) {
			lower = append(lower, s)
		} else {
			upper = append(upper, s)
		}
	}
	g.arc(r).interior = lower
	g.arc(b).interior = upper
	return r
}
