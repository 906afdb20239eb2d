package reeb

// The node, arc and label stores are three parallel slot tables. A slot is
// addressed by a dense integer id; id 0 is reserved and means "no such
// slot". Freed slots are chained into a per-table free list that threads
// through a designated field of the slot itself (node.down, arc.labelHead,
// label.arc), so a table never shrinks and ids never move.
//
// A second designated field holds freedMark while the slot is on the free
// list (node.up, arc.labelTail, label.hNext). Every accessor checks it:
// touching a freed slot is a programming error and panics.

// freedMark tags a slot that is currently on a free list.
const freedMark = -2

// initialTableCap is the starting capacity of each slot table, matching
// the stream sizes this structure is tuned for.
const initialTableCap = 1024

type nodeID int32
type arcID int32
type labelID int32

// sample is a mesh vertex that has been collapsed into the interior of an
// arc. Samples keep their scalar so interior lists can be emitted in
// level-set order.
type sample struct {
	vertexID int64
	value    float64
}

// node is one scalar sample of the graph. down/up head the node's
// doubly-linked arc lists (threaded through the arcs themselves).
type node struct {
	vertexID  int64
	value     float64
	down      arcID // head of down-arc list; free-list next when freed
	up        arcID // head of up-arc list; freedMark when freed
	finalized bool
	critical  bool
}

// arc is a directed edge from the lower node n0 to the higher node n1.
// (upPrev, upNext) are the arc's siblings in n0's up list, (downPrev,
// downNext) its siblings in n1's down list.
type arc struct {
	n0       nodeID
	upPrev   arcID
	upNext   arcID
	n1       nodeID
	downPrev arcID
	downNext arcID

	labelHead labelID // free-list next when freed
	labelTail labelID // freedMark when freed

	// Mesh vertices collapsed into the interior of this arc.
	interior []sample
}

// label records that a monotonic path tag currently traverses an arc.
// (hPrev, hNext) chain the labels of one arc; (vPrev, vNext) chain the
// labels of one tag across consecutive arcs.
type label struct {
	arc   arcID // free-list next when freed
	tag   uint64
	hPrev labelID
	hNext labelID // freedMark when freed
	vPrev labelID
	vNext labelID
}

func (g *Graph) node(i nodeID) *node {
	n := &g.nodes[i]
	if i == 0 || n.up == freedMark {
		panic("reeb: access to dead node slot")
	}
	return n
}

func (g *Graph) arc(i arcID) *arc {
	a := &g.arcs[i]
	if i == 0 || a.labelTail == freedMark {
		panic("reeb: access to dead arc slot")
	}
	return a
}

func (g *Graph) label(i labelID) *label {
	l := &g.labels[i]
	if i == 0 || l.hNext == freedMark {
		panic("reeb: access to dead label slot")
	}
	return l
}

func (g *Graph) nodeAlive(i nodeID) bool {
	return i > 0 && int(i) < len(g.nodes) && g.nodes[i].up != freedMark
}

func (g *Graph) arcAlive(i arcID) bool {
	return i > 0 && int(i) < len(g.arcs) && g.arcs[i].labelTail != freedMark
}

// newNode pops the node free list, growing the table when it is empty.
// The returned slot is zeroed.
func (g *Graph) newNode() nodeID {
	var i nodeID
	if g.freeNode != 0 {
		i = g.freeNode
		g.freeNode = nodeID(g.nodes[i].down)
		g.nodes[i] = node{}
	} else {
		g.nodes = append(g.nodes, node{})
		i = nodeID(len(g.nodes) - 1)
	}
	g.nodeCount++
	return i
}

func (g *Graph) deleteNode(i nodeID) {
	n := g.node(i)
	*n = node{up: freedMark, down: arcID(g.freeNode)}
	g.freeNode = i
	g.nodeCount--
}

func (g *Graph) newArc() arcID {
	var i arcID
	if g.freeArc != 0 {
		i = g.freeArc
		g.freeArc = arcID(g.arcs[i].labelHead)
		g.arcs[i] = arc{}
	} else {
		g.arcs = append(g.arcs, arc{})
		i = arcID(len(g.arcs) - 1)
	}
	g.arcCount++
	return i
}

func (g *Graph) deleteArc(i arcID) {
	a := g.arc(i)
	*a = arc{labelTail: freedMark, labelHead: labelID(g.freeArc)}
	g.freeArc = i
	g.arcCount--
}

func (g *Graph) newLabel() labelID {
	var i labelID
	if g.freeLabel != 0 {
		i = g.freeLabel
		g.freeLabel = labelID(g.labels[i].arc)
		g.labels[i] = label{}
	} else {
		g.labels = append(g.labels, label{})
		i = labelID(len(g.labels) - 1)
	}
	g.labelCount++
	return i
}

func (g *Graph) deleteLabel(i labelID) {
	l := g.label(i)
	*l = label{hNext: freedMark, arc: arcID(g.freeLabel)}
	g.freeLabel = i
	g.labelCount--
}

// less is the total order on nodes: by scalar value, ties broken by mesh
// vertex id. Every arc points from the lesser to the greater node.
func (g *Graph) less(i, j nodeID) bool {
	ni, nj := g.node(i), g.node(j)
	return ni.value < nj.value || (ni.value == nj.value && ni.vertexID < nj.vertexID)
}
