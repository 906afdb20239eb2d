package reeb

// StreamHooks receives events from the streaming builder. Hooks enable
// progress reporting without tying the core to a logging backend;
// implementations must be cheap, they run inline with the stream.
type StreamHooks interface {
	// OnSimplex fires after each accepted simplex with the running total.
	OnSimplex(streamed int)

	// OnClose fires after CloseStream with the surviving graph size.
	OnClose(nodes, arcs, loops int)

	// OnSimplify fires after each Simplify with the number of removed arcs.
	OnSimplify(removedArcs int)
}

// NoopHooks is a StreamHooks implementation that ignores every event.
// Embed it to implement only the events of interest.
type NoopHooks struct{}

func (NoopHooks) OnSimplex(int)        {}
func (NoopHooks) OnClose(int, int, int) {}
func (NoopHooks) OnSimplify(int)       {}

var _ StreamHooks = NoopHooks{}
