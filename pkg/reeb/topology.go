package reeb

// Structural mutators for the intrusive arc lists. Each is O(1) and keeps
// both doubly-linked lists well formed: an arc appears in exactly the up
// list of its lower node and the down list of its upper node.

// addUpArc prepends a to n's up list.
func (g *Graph) addUpArc(n nodeID, a arcID) {
	nd, ar := g.node(n), g.arc(a)
	ar.upPrev = 0
	ar.upNext = nd.up
	if nd.up != 0 {
		g.arc(nd.up).upPrev = a
	}
	nd.up = a
}

// addDownArc prepends a to n's down list.
func (g *Graph) addDownArc(n nodeID, a arcID) {
	nd, ar := g.node(n), g.arc(a)
	ar.downPrev = 0
	ar.downNext = nd.down
	if nd.down != 0 {
		g.arc(nd.down).downPrev = a
	}
	nd.down = a
}

// removeUpArc unlinks a from n's up list.
func (g *Graph) removeUpArc(n nodeID, a arcID) {
	nd, ar := g.node(n), g.arc(a)
	if ar.upPrev != 0 {
		g.arc(ar.upPrev).upNext = ar.upNext
	} else {
		nd.up = ar.upNext
	}
	if ar.upNext != 0 {
		g.arc(ar.upNext).upPrev = ar.upPrev
	}
	ar.upPrev, ar.upNext = 0, 0
}

// removeDownArc unlinks a from n's down list.
func (g *Graph) removeDownArc(n nodeID, a arcID) {
	nd, ar := g.node(n), g.arc(a)
	if ar.downPrev != 0 {
		g.arc(ar.downPrev).downNext = ar.downNext
	} else {
		nd.down = ar.downNext
	}
	if ar.downNext != 0 {
		g.arc(ar.downNext).downPrev = ar.downPrev
	}
	ar.downPrev, ar.downNext = 0, 0
}

func (g *Graph) upDegree(n nodeID) int {
	d := 0
	for a := g.node(n).up; a != 0; a = g.arc(a).upNext {
		d++
	}
	return d
}

func (g *Graph) downDegree(n nodeID) int {
	d := 0
	for a := g.node(n).down; a != 0; a = g.arc(a).downNext {
		d++
	}
	return d
}

// isSimple reports whether n has exactly one down arc and one up arc.
func (g *Graph) isSimple(n nodeID) bool {
	nd := g.node(n)
	return nd.down != 0 && g.arc(nd.down).downNext == 0 &&
		nd.up != 0 && g.arc(nd.up).upNext == 0
}

// isRegular reports whether n is a suppressible interior node: not marked
// critical and of degree (1,1). Only meaningful once n is finalized.
func (g *Graph) isRegular(n nodeID) bool {
	return !g.node(n).critical && g.isSimple(n)
}

// vertexCollapse elides the degree-(1,1) node n by splicing its single
// down arc a0 and single up arc a1 into one arc spanning a0.n0 -> a1.n1.
// a1's labels are deleted with their vertical chains rethreaded (every
// tag crossing n also labels a0, so each chain stays connected), a1's
// interior samples and n's own mesh vertex move onto a0, and a1 and n
// are deleted. Returns the surviving arc.
func (g *Graph) vertexCollapse(n nodeID) arcID {
	nd := g.node(n)
	a0, a1 := nd.down, nd.up
	if a0 == 0 || a1 == 0 || g.arc(a0).downNext != 0 || g.arc(a1).upNext != 0 {
		panic("reeb: vertex collapse on node that is not degree (1,1)")
	}
	ar0, ar1 := g.arc(a0), g.arc(a1)

	// Splice a0 into a1's place in the upper node's down list.
	ar0.n1 = ar1.n1
	ar0.downPrev = ar1.downPrev
	if ar1.downPrev != 0 {
		g.arc(ar1.downPrev).downNext = a0
	}
	ar0.downNext = ar1.downNext
	if ar1.downNext != 0 {
		g.arc(ar1.downNext).downPrev = a0
	}
	if g.node(ar1.n1).down == a1 {
		g.node(ar1.n1).down = a0
	}

	// Drop a1's labels, keeping each tag's vertical chain connected.
	for l := ar1.labelHead; l != 0; {
		lb := g.label(l)
		next := lb.hNext
		if lb.vPrev != 0 {
			g.label(lb.vPrev).vNext = lb.vNext
		}
		if lb.vNext != 0 {
			g.label(lb.vNext).vPrev = lb.vPrev
		}
		g.deleteLabel(l)
		l = next
	}

	ar0.interior = append(ar0.interior, sample{vertexID: nd.vertexID, value: nd.value})
	ar0.interior = append(ar0.interior, ar1.interior...)

	g.replaceLoopArc(a1, a0)
	g.deleteArc(a1)
	g.deleteNode(n)
	return a0
}
