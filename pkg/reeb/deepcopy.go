package reeb

// DeepCopy returns an independent copy of the graph: every pool, link,
// map and counter is duplicated, at cost proportional to the live slots.
// This is the supported way to snapshot a running stream: copy, then
// CloseStream the copy while the original keeps streaming. Hooks and the
// sink are not carried over; they bind to one instance.
func (g *Graph) DeepCopy() *Graph {
	c := &Graph{
		freeNode:     g.freeNode,
		freeArc:      g.freeArc,
		freeLabel:    g.freeLabel,
		nodeCount:    g.nodeCount,
		arcCount:     g.arcCount,
		labelCount:   g.labelCount,
		nextTag:      g.nextTag,
		streamed:     g.streamed,
		closed:       g.closed,
		minValue:     g.minValue,
		maxValue:     g.maxValue,
		hasRange:     g.hasRange,
		removedLoops: g.removedLoops,
		components:   g.components,
		historyOn:    g.historyOn,
	}

	c.nodes = append([]node(nil), g.nodes...)
	c.labels = append([]label(nil), g.labels...)
	c.arcs = make([]arc, len(g.arcs))
	copy(c.arcs, g.arcs)
	for i := range c.arcs {
		if c.arcs[i].interior != nil {
			c.arcs[i].interior = append([]sample(nil), c.arcs[i].interior...)
		}
	}

	c.vertexMap = make(map[int64]nodeID, len(g.vertexMap))
	for k, v := range g.vertexMap {
		c.vertexMap[k] = v
	}
	if g.remaining != nil {
		c.remaining = make(map[int64]int, len(g.remaining))
		for k, v := range g.remaining {
			c.remaining[k] = v
		}
	}
	if g.edgeTags != nil {
		c.edgeTags = make(map[edgeKey]uint64, len(g.edgeTags))
		for k, v := range g.edgeTags {
			c.edgeTags[k] = v
		}
	}

	c.loopArcs = append([]arcID(nil), g.loopArcs...)
	c.history = make([]Cancellation, len(g.history))
	for i, h := range g.history {
		c.history[i] = Cancellation{
			RemovedArcs:  append([][2]int64(nil), h.RemovedArcs...),
			InsertedArcs: append([][2]int64(nil), h.InsertedArcs...),
		}
	}
	return c
}
