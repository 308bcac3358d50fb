package reconcile

import (
	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"
)

// reconcileKeyed diffs two keyed child lists. Host child i is the node that
// rendered prev.Children[i]; every index below refers to that queue-time
// layout.
//
// Moves and insertions are anchored on nodes rather than positions: a node
// placed for new index j goes before the node already chosen for j+1, or is
// appended when j is the last index. Nodes for the suffix are always known
// before anything is anchored on them, because the trim loop consumes the
// new list from the tail first.
func (e *Engine) reconcileKeyed(rc *Context) error {
	el := rc.El
	oldCh, newCh := rc.Prev.Children, rc.Next.Children
	pool := e.pools.For(el)

	placed := make([]host.Node, len(newCh))
	after := func(j int) host.Node {
		if j+1 < len(placed) {
			return placed[j+1]
		}
		return nil
	}

	oldHead, newHead := 0, 0
	oldTail, newTail := len(oldCh)-1, len(newCh)-1

	// Pass 1: trim matching ends and detect single-end moves.
trim:
	for oldHead <= oldTail && newHead <= newTail {
		switch {
		case oldCh[oldTail].Key == newCh[newTail].Key:
			// Same key at both tails, patch in place
			node, err := e.patchChild(rc, el.ChildAt(oldTail), newTail, newCh[newTail], oldCh[oldTail])
			if err != nil {
				return err
			}
			placed[newTail] = node
			oldTail--
			newTail--

		case oldCh[oldHead].Key == newCh[newHead].Key:
			// Same key at both heads, patch in place
			node, err := e.patchChild(rc, el.ChildAt(oldHead), newHead, newCh[newHead], oldCh[oldHead])
			if err != nil {
				return err
			}
			placed[newHead] = node
			oldHead++
			newHead++

		case oldCh[oldHead].Key == newCh[newTail].Key:
			// Old head moved to the new tail
			moved := el.ChildAt(oldHead)
			rc.Effects.Push(Effect{
				Kind:   KindCreate,
				Parent: el,
				Node:   moved,
				Anchor: after(newTail),
				Key:    newCh[newTail].Key,
				Index:  newTail,
				Moved:  true,
			})
			node, err := e.patchChild(rc, moved, newTail, newCh[newTail], oldCh[oldHead])
			if err != nil {
				return err
			}
			placed[newTail] = node
			oldHead++
			newTail--

		case oldCh[oldTail].Key == newCh[newHead].Key:
			// Old tail moved to the new head, before the unresolved old head
			moved := el.ChildAt(oldTail)
			rc.Effects.Push(Effect{
				Kind:   KindCreate,
				Parent: el,
				Node:   moved,
				Anchor: el.ChildAt(oldHead),
				Key:    newCh[newHead].Key,
				Index:  newHead,
				Moved:  true,
			})
			node, err := e.patchChild(rc, moved, newHead, newCh[newHead], oldCh[oldTail])
			if err != nil {
				return err
			}
			placed[newHead] = node
			oldTail--
			newHead++

		default:
			// No end matches, fall through to the key map
			break trim
		}
	}

	// Pass 2: old list consumed, everything left in new is an insertion.
	if oldHead > oldTail {
		anchor := after(newTail)
		for j := newHead; j <= newTail; j++ {
			if err := e.insertKeyed(rc, pool, newCh[j], j, anchor); err != nil {
				return err
			}
		}
		return nil
	}

	// Pass 3: new list consumed, everything left in old is a deletion.
	if newHead > newTail {
		for i := oldHead; i <= oldTail; i++ {
			e.removeKeyed(rc, pool, el.ChildAt(i), oldCh[i], i)
		}
		return nil
	}

	// Pass 4: match the unresolved middle through a key map.
	keyMap := make(map[string]int, oldTail-oldHead+1)
	for i := oldHead; i <= oldTail; i++ {
		keyMap[oldCh[i].Key] = i
	}

	anchor := after(newTail)
	for j := newHead; j <= newTail; j++ {
		next := newCh[j]
		i, ok := keyMap[next.Key]
		// Unknown key: recycle from the pool or create
		if !ok {
			if err := e.insertKeyed(rc, pool, next, j, anchor); err != nil {
				return err
			}
			continue
		}

		// Known key: consume it and move the old node into place
		delete(keyMap, next.Key)
		moved := el.ChildAt(i)
		rc.Effects.Push(Effect{
			Kind:   KindCreate,
			Parent: el,
			Node:   moved,
			Anchor: anchor,
			Key:    next.Key,
			Index:  j,
			Moved:  true,
		})
		if _, err := e.patchChild(rc, moved, j, next, oldCh[i]); err != nil {
			return err
		}
	}

	// Pass 5: old keys nobody claimed go to the pool
	for i := oldHead; i <= oldTail; i++ {
		if _, ok := keyMap[oldCh[i].Key]; ok {
			e.removeKeyed(rc, pool, el.ChildAt(i), oldCh[i], i)
		}
	}
	return nil
}

// insertKeyed queues the insertion of a new keyed child before anchor.
func (e *Engine) insertKeyed(rc *Context, pool *Pool, next *vnode.Node, index int, anchor host.Node) error {
	node, recycled, err := e.acquire(rc, pool, next)
	if err != nil {
		return err
	}
	rc.Effects.Push(Effect{
		Kind:     KindCreate,
		Parent:   rc.El,
		Node:     node,
		Anchor:   anchor,
		Key:      next.Key,
		Index:    index,
		Recycled: recycled,
	})
	return nil
}

// removeKeyed pools node under its key and queues its removal. Keyless
// nodes and stale pool entries are destroyed.
func (e *Engine) removeKeyed(rc *Context, pool *Pool, node host.Node, prev *vnode.Node, index int) {
	if prev.Key != "" {
		if stale, ok := pool.Put(prev.Key, node, prev); ok && stale.Node != node {
			e.Release(stale.Node)
		}
	} else {
		e.Release(node)
	}
	rc.Effects.Push(Effect{
		Kind:   KindRemove,
		Parent: rc.El,
		Node:   node,
		Key:    prev.Key,
		Index:  index,
	})
}
