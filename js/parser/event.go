package parser

// The parser does not build a tree. It emits a flat, ordered event
// stream that the sink later replays. The indirection keeps grammar
// code free of tree-representation concerns and allows alternate sinks
// over the same parse.
type EventKind int

const (
	// EventStart opens a node. Start events are emitted as tombstones
	// and retroactively given their kind when the marker completes.
	EventStart EventKind = iota
	// EventToken attaches the next consumed token to the open node.
	EventToken
	// EventFinish closes the most recently opened node. Start and
	// Finish pair up with stack discipline.
	EventFinish
	// EventError carries a diagnostic; it opens or closes nothing.
	EventError
)

type Event struct {
	Kind EventKind
	// Node is the syntax kind for EventStart.
	Node SyntaxKind
	// Forward points at a later start event that must open before this
	// one (its node wraps this one). Zero means none; the value is the
	// event index plus one.
	Forward int
	// Diag is set for EventError.
	Diag *Diagnostic
}

// Marker identifies an in-progress node: the index of its start event.
type Marker struct {
	pos int
}

// CompletedMarker identifies a finished node in the event buffer and
// allows a later production to wrap it (Precede), which is how the
// expression parser builds left-leaning binary trees without
// backtracking.
type CompletedMarker struct {
	start int
	kind  SyntaxKind
}

// Start opens a new node at the current position. The node's kind is
// assigned when the marker completes.
func (p *Parser) Start() Marker {
	p.events = append(p.events, Event{Kind: EventStart, Node: KindTombstone})
	return Marker{pos: len(p.events) - 1}
}

// Complete closes the node with the given kind and returns a completed
// marker that a caller may still wrap.
func (m Marker) Complete(p *Parser, kind SyntaxKind) CompletedMarker {
	p.events[m.pos].Node = kind
	p.events = append(p.events, Event{Kind: EventFinish})
	return CompletedMarker{start: m.pos, kind: kind}
}

// Abandon discards the node. Children emitted since the start event
// are adopted by the enclosing node; the tombstone start is skipped by
// the sink.
func (m Marker) Abandon(p *Parser) {
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
	}
}

// Precede opens a new node that will contain the completed node. The
// new start event is linked backwards through the forward-parent chain
// so the sink opens it first even though it was emitted later.
func (c CompletedMarker) Precede(p *Parser) Marker {
	m := p.Start()
	p.events[c.start].Forward = m.pos + 1
	return m
}

// Kind returns the syntax kind the node was completed with.
func (c CompletedMarker) Kind() SyntaxKind {
	return c.kind
}
