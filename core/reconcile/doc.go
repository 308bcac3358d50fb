// Package reconcile turns a previous and a next node description into the
// host mutations that move a live host tree from one to the other.
//
// The engine never touches the host tree while diffing. Every decision is
// queued as an Effect whose host nodes are resolved against the child list
// as it stands when the pass starts, and the caller's commit function
// decides when the queue is replayed.
//
// # Architecture
//
// Reconciliation of one parent goes through the first strategy that applies:
//
// 1. Deltas: a precomputed patch list on the new description is replayed
// verbatim.
//
// 2. Fast paths: no children, text-only children, or an empty previous
// list (append only).
//
// 3. Keyed diff: prefix/suffix trim, single-end move detection, then a key
// map over the unmatched middle. Removed keyed nodes go into the parent's
// object pool and are recycled when the key comes back.
//
// 4. Positional diff: per-index recursion over the shared length (highest
// index first), then append or truncate.
//
// After a call has queued its effects each registered Driver is invoked
// through the commit function with the full Context.
//
// # Object Pools
//
// Pools live in a PoolTable owned by the Engine and keyed by parent host
// node. When the engine destroys a node itself, for example on a replace or
// an unpooled removal, it drops that node's pool and every pool below it.
// Call Engine.Release for nodes the caller detaches on its own.
//
// # Usage Example
//
//	eng := reconcile.NewEngine(host.NewMemoryFactory(),
//	    reconcile.WithDrivers(reconcile.NewLogDriver(logger, false)),
//	)
//	rc, err := eng.Reconcile(list, next, prev)
//	if err != nil {
//	    return err
//	}
//	_, err = reconcile.Replay(rc.Effects.Effects())
//
// Engine.Patch does both steps through the commit function.
package reconcile
