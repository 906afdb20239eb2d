// Package reeb computes Reeb graphs of piecewise-linear scalar fields
// defined on simplicial meshes, and simplifies them by topological
// persistence.
//
// The builder is streaming and online: triangles and tetrahedra are
// accepted one at a time ([Graph.StreamTriangle], [Graph.StreamTetrahedron])
// and the graph is valid after every insertion. Monotonic paths inserted
// for each simplex are merged by a label-propagation "zip", so memory
// stays proportional to the live graph rather than the mesh.
//
// After [Graph.CloseStream] the graph can be simplified
// ([Graph.Simplify]) and published into a directed-graph sink
// ([Graph.Publish], [Graph.Document]), with regular interior nodes
// suppressed.
//
// Reference: "Robust on-line computation of Reeb graphs: simplicity and
// speed", Pascucci, Scorzelli, Bremer, Mascarenhas, SIGGRAPH 2007.
package reeb

import "sort"

// edgeKey identifies a mesh edge by its two node ids, lower node first.
type edgeKey struct {
	lo, hi nodeID
}

// Cancellation is one audit record of the simplifier: the arcs it removed
// and the arcs it spliced in, as (lower, upper) mesh vertex id pairs.
type Cancellation struct {
	RemovedArcs  [][2]int64
	InsertedArcs [][2]int64
}

// Graph is a streaming Reeb graph. The zero value is not usable; call
// [New]. A Graph owns its entire store exclusively and is not safe for
// concurrent use. All internal ids are private to one instance and are
// invalidated by any mutating call.
type Graph struct {
	nodes  []node
	arcs   []arc
	labels []label

	freeNode  nodeID
	freeArc   arcID
	freeLabel labelID

	nodeCount  int
	arcCount   int
	labelCount int

	// Streaming state.
	vertexMap map[int64]nodeID // mesh vertex id -> node id
	remaining map[int64]int    // declared open-simplex counts, if any
	edgeTags  map[edgeKey]uint64
	nextTag   uint64
	streamed  int
	closed    bool

	minValue float64
	maxValue float64
	hasRange bool

	// Loops.
	loopArcs     []arcID
	removedLoops int
	components   int

	// Audit log.
	historyOn bool
	history   []Cancellation

	hooks StreamHooks
	sink  Sink
}

// New creates an empty Reeb graph ready for streaming.
func New() *Graph {
	return &Graph{
		nodes:     make([]node, 1, initialTableCap),
		arcs:      make([]arc, 1, initialTableCap),
		labels:    make([]label, 1, initialTableCap),
		vertexMap: make(map[int64]nodeID),
		remaining: make(map[int64]int),
		edgeTags:  make(map[edgeKey]uint64),
		nextTag:   1,
	}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.nodeCount }

// ArcCount returns the number of live arcs.
func (g *Graph) ArcCount() int { return g.arcCount }

// LabelCount returns the number of live labels. It is zero after
// CloseStream.
func (g *Graph) LabelCount() int { return g.labelCount }

// LoopCount returns the number of independent cycles currently in the
// graph. It is computed by CloseStream and maintained by Simplify. For
// closed PL 2-manifolds this equals the genus of the surface.
func (g *Graph) LoopCount() int { return len(g.loopArcs) }

// RemovedLoopCount returns the number of loops removed by simplification
// since the stream was closed.
func (g *Graph) RemovedLoopCount() int { return g.removedLoops }

// ConnectedComponentCount returns the number of connected components of
// the graph, as counted by the loop pass at CloseStream.
func (g *Graph) ConnectedComponentCount() int { return g.components }

// Closed reports whether CloseStream has been called.
func (g *Graph) Closed() bool { return g.closed }

// ScalarRange returns the minimum and maximum scalar values seen so far.
// Both are zero while the graph is empty.
func (g *Graph) ScalarRange() (min, max float64) {
	return g.minValue, g.maxValue
}

// SetHistoryEnabled toggles the cancellation audit log kept by Simplify.
func (g *Graph) SetHistoryEnabled(on bool) { g.historyOn = on }

// History returns the cancellation records accumulated by Simplify. The
// returned slice is owned by the graph.
func (g *Graph) History() []Cancellation { return g.history }

// SetHooks installs stream observation hooks. Passing nil removes them.
func (g *Graph) SetHooks(h StreamHooks) { g.hooks = h }

// SetSink attaches a directed-graph sink. The publisher re-emits the
// surviving graph into it after CloseStream and after every Simplify.
func (g *Graph) SetSink(s Sink) { g.sink = s }

// touchRange folds a new scalar into the running range.
func (g *Graph) touchRange(v float64) {
	if !g.hasRange {
		g.minValue, g.maxValue, g.hasRange = v, v, true
		return
	}
	if v < g.minValue {
		g.minValue = v
	}
	if v > g.maxValue {
		g.maxValue = v
	}
}

// span returns the overall scalar span, zero for empty or constant fields.
func (g *Graph) span() float64 { return g.maxValue - g.minValue }

// liveNodesSorted returns the ids of all live nodes in ascending
// (value, vertex id) order.
func (g *Graph) liveNodesSorted() []nodeID {
	ids := make([]nodeID, 0, g.nodeCount)
	for i := 1; i < len(g.nodes); i++ {
		if g.nodeAlive(nodeID(i)) {
			ids = append(ids, nodeID(i))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return g.less(ids[i], ids[j]) })
	return ids
}

// liveArcs returns the ids of all live arcs in id order.
func (g *Graph) liveArcs() []arcID {
	ids := make([]arcID, 0, g.arcCount)
	for i := 1; i < len(g.arcs); i++ {
		if g.arcAlive(arcID(i)) {
			ids = append(ids, arcID(i))
		}
	}
	return ids
}
