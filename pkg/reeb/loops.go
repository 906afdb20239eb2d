package reeb

import "sort"

// Loop detection. After the stream closes, one representative arc per
// independent cycle is collected by a union-find pass that visits arcs in
// ascending order of their lower endpoint: an arc whose endpoints are
// already connected closes a cycle. The number of representatives is the
// first Betti number of the graph, which for closed PL 2-manifolds equals
// the genus.

// findLoops rebuilds the loop table and the connected-component count.
func (g *Graph) findLoops() {
	g.loopArcs = nil
	g.removedLoops = 0
	g.components = 0

	arcs := g.liveArcs()
	sort.Slice(arcs, func(i, j int) bool {
		ai, aj := &g.arcs[arcs[i]], &g.arcs[arcs[j]]
		if ai.n0 != aj.n0 {
			return g.less(ai.n0, aj.n0)
		}
		if ai.n1 != aj.n1 {
			return g.less(ai.n1, aj.n1)
		}
		return arcs[i] < arcs[j]
	})

	parent := make(map[nodeID]nodeID, g.nodeCount)
	var find func(n nodeID) nodeID
	find = func(n nodeID) nodeID {
		p, ok := parent[n]
		if !ok || p == n {
			return n
		}
		root := find(p)
		parent[n] = root
		return root
	}

	for _, a := range arcs {
		ar := &g.arcs[a]
		r0, r1 := find(ar.n0), find(ar.n1)
		if r0 == r1 {
			g.loopArcs = append(g.loopArcs, a)
			continue
		}
		parent[r0] = r1
	}

	roots := make(map[nodeID]struct{})
	for i := 1; i < len(g.nodes); i++ {
		if g.nodeAlive(nodeID(i)) {
			roots[find(nodeID(i))] = struct{}{}
		}
	}
	g.components = len(roots)
}

// replaceLoopArc keeps the loop table valid when old is absorbed into a
// surviving arc that carries the same cycle.
func (g *Graph) replaceLoopArc(old, surviving arcID) {
	for i, a := range g.loopArcs {
		if a == old {
			g.loopArcs[i] = surviving
			return
		}
	}
}

// dropLoopArc removes a from the loop table if present, counting the
// cycle as removed. Returns true if a was a loop representative.
func (g *Graph) dropLoopArc(a arcID) bool {
	for i, la := range g.loopArcs {
		if la == a {
			g.loopArcs = append(g.loopArcs[:i], g.loopArcs[i+1:]...)
			g.removedLoops++
			return true
		}
	}
	return false
}
