package reconcile

import (
	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"
)

// Kind tags a deferred host mutation.
type Kind int

const (
	// KindCreate inserts (or moves) a node.
	KindCreate Kind = iota
	// KindUpdate rewrites the text of a leaf node.
	KindUpdate
	// KindRemove detaches a node, or clears the parent when no node is set.
	KindRemove
	// KindReplace swaps a node for another, or sets the parent's text.
	KindReplace
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindRemove:
		return "remove"
	case KindReplace:
		return "replace"
	default:
		return "create"
	}
}

// Effect is a self-contained deferred mutation. Every host node it needs
// is resolved when the effect is queued; nothing is looked up by index
// at replay time.
type Effect struct {
	// Kind is the mutation type.
	Kind Kind
	// Parent is the host node being mutated.
	Parent host.Node
	// Node is the node inserted, removed, swapped in, or whose text is
	// updated. A nil Node on a remove clears Parent; on a replace it sets
	// Parent's text to Text.
	Node host.Node
	// Anchor is the node to insert before (nil appends). For a replace it
	// is the outgoing node.
	Anchor host.Node
	// Text is the payload of text updates.
	Text string
	// Key is the key of the child involved, if any.
	Key string
	// Index is the child position the effect was computed for, or -1.
	Index int
	// Moved marks a create that relocates an existing node.
	Moved bool
	// Recycled marks a create whose node came from the object pool.
	Recycled bool
}

// Queue is the ordered effect sequence of one top-level pass. It is shared
// by reference with every nested call.
type Queue struct {
	effects []Effect
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an effect. Nothing is mutated until replay.
func (q *Queue) Push(e Effect) {
	q.effects = append(q.effects, e)
}

// Effects returns the queued effects in queuing order.
func (q *Queue) Effects() []Effect {
	return q.effects
}

// Len returns the number of queued effects.
func (q *Queue) Len() int {
	return len(q.effects)
}

// Count returns the number of queued effects of kind k.
func (q *Queue) Count(k Kind) int {
	n := 0
	for _, e := range q.effects {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Summary aggregates a queue by effect kind.
type Summary struct {
	Total    int `json:"total"`
	Creates  int `json:"creates"`
	Moves    int `json:"moves"`
	Recycled int `json:"recycled"`
	Updates  int `json:"updates"`
	Removes  int `json:"removes"`
	Replaces int `json:"replaces"`
}

// Summarize counts the effects of a queue.
func Summarize(effects []Effect) Summary {
	s := Summary{Total: len(effects)}
	for _, e := range effects {
		switch e.Kind {
		case KindCreate:
			s.Creates++
			if e.Moved {
				s.Moves++
			}
			if e.Recycled {
				s.Recycled++
			}
		case KindUpdate:
			s.Updates++
		case KindRemove:
			s.Removes++
		case KindReplace:
			s.Replaces++
		}
	}
	return s
}

// CommitFunc schedules work produced by a pass. The default runs it
// immediately; callers may batch or defer it.
type CommitFunc func(work func(), rc *Context)

// Immediate runs work synchronously.
func Immediate(work func(), _ *Context) {
	work()
}

// Context is the full state of one reconciliation call. Drivers receive it
// after the call has queued its effects.
type Context struct {
	// El is the host parent whose children are reconciled.
	El host.Node
	// Next is the new description of El.
	Next *vnode.Node
	// Prev is the previous description of El. It may be nil.
	Prev *vnode.Node
	// Effects is the queue shared by the whole pass.
	Effects *Queue
	// Commit schedules driver invocations and replay.
	Commit CommitFunc
	// Drivers run after queuing, in order.
	Drivers []Driver
	// SVG is true when El lives in an SVG subtree.
	SVG bool
	// Depth is 0 for the top-level call.
	Depth int
}
