package reeb

// Label maintenance. A label ties a path tag to one arc. Horizontally the
// labels of an arc form a doubly-linked chain between labelHead and
// labelTail; vertically the labels of one tag chain together across the
// consecutive arcs of the tag's path, ordered bottom-up in scalar order.

// findLabelOnArc returns the label carrying tag on arc a, or 0.
func (g *Graph) findLabelOnArc(a arcID, tag uint64) labelID {
	for l := g.arc(a).labelHead; l != 0; l = g.label(l).hNext {
		if g.label(l).tag == tag {
			return l
		}
	}
	return 0
}

// findUpLabel returns the label carrying tag on one of n's up arcs, or 0.
func (g *Graph) findUpLabel(n nodeID, tag uint64) labelID {
	for a := g.node(n).up; a != 0; a = g.arc(a).upNext {
		if l := g.findLabelOnArc(a, tag); l != 0 {
			return l
		}
	}
	return 0
}

// findDownLabel returns the label carrying tag on one of n's down arcs,
// or 0.
func (g *Graph) findDownLabel(n nodeID, tag uint64) labelID {
	for a := g.node(n).down; a != 0; a = g.arc(a).downNext {
		if l := g.findLabelOnArc(a, tag); l != 0 {
			return l
		}
	}
	return 0
}

// appendLabelH appends label l to arc a's horizontal chain.
func (g *Graph) appendLabelH(a arcID, l labelID) {
	ar, lb := g.arc(a), g.label(l)
	lb.arc = a
	lb.hNext = 0
	lb.hPrev = ar.labelTail
	if ar.labelTail != 0 {
		g.label(ar.labelTail).hNext = l
	} else {
		ar.labelHead = l
	}
	ar.labelTail = l
}

// unlinkLabelH removes l from its arc's horizontal chain without deleting
// it.
func (g *Graph) unlinkLabelH(l labelID) {
	lb := g.label(l)
	ar := g.arc(lb.arc)
	if lb.hPrev != 0 {
		g.label(lb.hPrev).hNext = lb.hNext
	} else {
		ar.labelHead = lb.hNext
	}
	if lb.hNext != 0 {
		g.label(lb.hNext).hPrev = lb.hPrev
	} else {
		ar.labelTail = lb.hPrev
	}
	lb.hPrev, lb.hNext = 0, 0
}

// setLabel installs tag on arc a, vertically linked directly after prev
// (the tag's most recent lower label; 0 for the start of a path). If the
// arc already carries the tag the existing label is returned unchanged,
// which makes path insertion idempotent. A zero tag is never stored.
func (g *Graph) setLabel(a arcID, tag uint64, prev labelID) labelID {
	if tag == 0 {
		return 0
	}
	if l := g.findLabelOnArc(a, tag); l != 0 {
		return l
	}
	l := g.newLabel()
	lb := g.label(l)
	lb.tag = tag
	g.appendLabelH(a, l)
	lb.vPrev = prev
	if prev != 0 {
		p := g.label(prev)
		lb.vNext = p.vNext
		if p.vNext != 0 {
			g.label(p.vNext).vPrev = l
		}
		p.vNext = l
	}
	return l
}

// insertLabelBefore creates a label with next's tag on arc a and links it
// vertically directly below next. Used when an arc is split: the lower
// remainder must keep every resident tag's chain continuous.
func (g *Graph) insertLabelBefore(a arcID, next labelID) labelID {
	l := g.newLabel()
	nl := g.label(next)
	lb := g.label(l)
	lb.tag = nl.tag
	g.appendLabelH(a, l)
	lb.vNext = next
	lb.vPrev = nl.vPrev
	if nl.vPrev != 0 {
		g.label(nl.vPrev).vNext = l
	}
	nl.vPrev = l
	return l
}

// spliceLabelV removes l from its tag's vertical chain, reconnecting its
// neighbors.
func (g *Graph) spliceLabelV(l labelID) {
	lb := g.label(l)
	if lb.vPrev != 0 {
		g.label(lb.vPrev).vNext = lb.vNext
	}
	if lb.vNext != 0 {
		g.label(lb.vNext).vPrev = lb.vPrev
	}
	lb.vPrev, lb.vNext = 0, 0
}

// flushLabels drops every label and resets the label pool. Runs at
// CloseStream; afterwards no arc references a label and the label store
// is empty.
func (g *Graph) flushLabels() {
	for i := 1; i < len(g.arcs); i++ {
		if g.arcAlive(arcID(i)) {
			g.arcs[i].labelHead, g.arcs[i].labelTail = 0, 0
		}
	}
	g.labels = g.labels[:1]
	g.freeLabel = 0
	g.labelCount = 0
}
