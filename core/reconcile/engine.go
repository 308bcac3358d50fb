package reconcile

import (
	"errors"
	"fmt"

	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"

	"go.uber.org/zap"
)

var (
	// ErrPatchOutOfRange is returned when a precomputed delta points outside
	// the child lists it is meant to edit.
	ErrPatchOutOfRange = errors.New("delta position out of range")
	// ErrNoParent is returned when reconciliation is asked to run without a
	// host parent or a new description.
	ErrNoParent = errors.New("missing host parent or description")
)

// Engine reconciles children of live host nodes. It owns the object pools
// of every parent it has reconciled.
type Engine struct {
	factory host.Factory
	pools   *PoolTable
	commit  CommitFunc
	drivers []Driver
	svgTag  string
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCommit sets the default commit function.
func WithCommit(c CommitFunc) Option {
	return func(e *Engine) {
		if c != nil {
			e.commit = c
		}
	}
}

// WithDrivers registers drivers in invocation order.
func WithDrivers(d ...Driver) Option {
	return func(e *Engine) {
		e.drivers = append(e.drivers, d...)
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSVGTag sets the tag that starts an SVG context.
func WithSVGTag(tag string) Option {
	return func(e *Engine) {
		e.svgTag = tag
	}
}

// WithPoolTable shares a pool table between engines.
func WithPoolTable(t *PoolTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.pools = t
		}
	}
}

// NewEngine creates an engine that materializes new nodes with factory.
func NewEngine(factory host.Factory, opts ...Option) *Engine {
	e := &Engine{
		factory: factory,
		pools:   NewPoolTable(),
		commit:  Immediate,
		svgTag:  "svg",
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register appends a driver to the chain.
func (e *Engine) Register(d Driver) {
	e.drivers = append(e.drivers, d)
}

// Pools returns the engine's pool table.
func (e *Engine) Pools() *PoolTable {
	return e.pools
}

// Release drops the pools of a node that is being destroyed, of every node
// below it and of the detached nodes those pools hold.
func (e *Engine) Release(el host.Node) {
	if e.pools.Len() == 0 {
		return
	}
	e.release(el)
}

func (e *Engine) release(n host.Node) {
	if n == nil {
		return
	}
	if pool, ok := e.pools.Drop(n); ok {
		for _, key := range pool.Keys() {
			entry, _ := pool.Take(key)
			e.release(entry.Node)
		}
	}
	for i := 0; i < n.ChildCount(); i++ {
		e.release(n.ChildAt(i))
	}
}

// releaseChildren releases every current child of el.
func (e *Engine) releaseChildren(el host.Node) {
	if e.pools.Len() == 0 {
		return
	}
	for i := 0; i < el.ChildCount(); i++ {
		e.release(el.ChildAt(i))
	}
}

// Mount materializes n and appends it to parent.
func (e *Engine) Mount(parent host.Node, n *vnode.Node) (host.Node, error) {
	if parent == nil || n == nil {
		return nil, ErrNoParent
	}
	node := e.factory.Materialize(n, e.isSVG(parent, n))
	if err := parent.InsertBefore(node, nil); err != nil {
		return nil, fmt.Errorf("failed to mount <%s>: %w", n.Tag, err)
	}
	return node, nil
}

// Reconcile queues the effects that turn el's children from prev into next,
// using the engine's commit function and drivers. Nothing is applied.
func (e *Engine) Reconcile(el host.Node, next, prev *vnode.Node) (*Context, error) {
	return e.ReconcileChildren(el, next, prev, nil, nil)
}

// ReconcileChildren is the full entry point. A nil commit uses the engine
// default, a nil queue starts a fresh one, and no drivers means the
// engine's registered chain.
func (e *Engine) ReconcileChildren(el host.Node, next, prev *vnode.Node, commit CommitFunc, effects *Queue, drivers ...Driver) (*Context, error) {
	if el == nil || next == nil {
		return nil, ErrNoParent
	}
	if commit == nil {
		commit = e.commit
	}
	if effects == nil {
		effects = NewQueue()
	}
	if len(drivers) == 0 {
		drivers = e.drivers
	}

	rc := &Context{
		El:      el,
		Next:    next,
		Prev:    prev,
		Effects: effects,
		Commit:  commit,
		Drivers: drivers,
		SVG:     e.isSVG(el, next),
	}
	if err := e.reconcile(rc); err != nil {
		return rc, err
	}
	return rc, nil
}

// Patch reconciles and then replays the queued effects through the commit
// function. When the commit function defers the work, replay errors are
// not observable here.
func (e *Engine) Patch(el host.Node, next, prev *vnode.Node) (*Context, error) {
	rc, err := e.Reconcile(el, next, prev)
	if err != nil {
		return rc, err
	}

	var replayErr error
	rc.Commit(func() {
		_, replayErr = Replay(rc.Effects.Effects())
	}, rc)
	if replayErr != nil {
		return rc, fmt.Errorf("failed to replay effects: %w", replayErr)
	}
	return rc, nil
}

// reconcile dispatches one call and then runs the driver chain.
func (e *Engine) reconcile(rc *Context) error {
	if err := e.dispatch(rc); err != nil {
		return err
	}

	for _, d := range rc.Drivers {
		d := d
		rc.Commit(func() { d.OnReconciled(rc) }, rc)
	}
	return nil
}

// dispatch picks the cheapest valid strategy: precomputed deltas, flag fast
// paths, keyed diff, then positional diff.
func (e *Engine) dispatch(rc *Context) error {
	if rc.Next.HasDeltas() {
		return e.replayDeltas(rc)
	}
	if handled, err := e.fastPath(rc); handled || err != nil {
		return err
	}
	if rc.Next.Flag == vnode.FlagKeyedChildren {
		return e.reconcileKeyed(rc)
	}
	return e.reconcileUnkeyed(rc)
}

// patchChild brings the host child that rendered prev in line with next.
// It returns the host node that occupies the slot once the queue has been
// replayed.
func (e *Engine) patchChild(rc *Context, child host.Node, index int, next, prev *vnode.Node) (host.Node, error) {
	if !vnode.SameType(next, prev) {
		// The outgoing node is destroyed on replay.
		e.Release(child)
		node := e.materialize(rc, next)
		rc.Effects.Push(Effect{
			Kind:   KindReplace,
			Parent: rc.El,
			Node:   node,
			Anchor: child,
			Key:    next.Key,
			Index:  index,
		})
		return node, nil
	}

	if next.IsText() {
		if next.Text != prev.Text {
			rc.Effects.Push(Effect{
				Kind:   KindUpdate,
				Parent: rc.El,
				Node:   child,
				Text:   next.Text,
				Key:    next.Key,
				Index:  index,
			})
		}
		return child, nil
	}

	if err := e.reconcile(e.childContext(rc, child, next, prev)); err != nil {
		return child, err
	}
	return child, nil
}

// acquire returns a host node for a new keyed child, recycling the parent's
// pooled node for the same key when it has a compatible shape.
func (e *Engine) acquire(rc *Context, pool *Pool, next *vnode.Node) (host.Node, bool, error) {
	if next.Key != "" {
		entry, ok := pool.Take(next.Key)
		if ok && !vnode.SameType(next, entry.Desc) {
			// A pooled node of another shape is never reused.
			e.Release(entry.Node)
			ok = false
		}
		if ok {
			if next.IsText() {
				if next.Text != entry.Desc.Text {
					rc.Effects.Push(Effect{
						Kind:   KindUpdate,
						Parent: rc.El,
						Node:   entry.Node,
						Text:   next.Text,
						Key:    next.Key,
						Index:  -1,
					})
				}
				return entry.Node, true, nil
			}
			if err := e.reconcile(e.childContext(rc, entry.Node, next, entry.Desc)); err != nil {
				return nil, false, err
			}
			return entry.Node, true, nil
		}
	}
	return e.materialize(rc, next), false, nil
}

func (e *Engine) materialize(rc *Context, n *vnode.Node) host.Node {
	return e.factory.Materialize(n, rc.SVG)
}

func (e *Engine) childContext(rc *Context, child host.Node, next, prev *vnode.Node) *Context {
	return &Context{
		El:      child,
		Next:    next,
		Prev:    prev,
		Effects: rc.Effects,
		Commit:  rc.Commit,
		Drivers: rc.Drivers,
		SVG:     rc.SVG || (e.svgTag != "" && next.Tag == e.svgTag),
		Depth:   rc.Depth + 1,
	}
}

func (e *Engine) isSVG(el host.Node, n *vnode.Node) bool {
	if e.svgTag != "" && n != nil && n.Tag == e.svgTag {
		return true
	}
	if h, ok := el.(*host.Element); ok {
		return h.SVG
	}
	return false
}
