package reconcile

import (
	"fmt"

	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"

	"go.uber.org/zap"
)

// replayDeltas applies a precomputed patch list. Every position refers to
// the host child list as it was before this call queued anything, so all
// nodes are resolved up front against that snapshot.
func (e *Engine) replayDeltas(rc *Context) error {
	el := rc.El
	next, prev := rc.Next, rc.Prev
	count := el.ChildCount()

	snapshot := make([]host.Node, count)
	for i := range snapshot {
		snapshot[i] = el.ChildAt(i)
	}

	removed := make(map[int]bool)
	created := make(map[int]bool)
	for _, d := range next.Deltas {
		switch d.Op {
		case vnode.OpRemove:
			if d.Pos < 0 || d.Pos >= count {
				return fmt.Errorf("%w: remove %d of %d host children", ErrPatchOutOfRange, d.Pos, count)
			}
			removed[d.Pos] = true
		case vnode.OpCreate:
			if d.Pos < 0 || d.Pos >= len(next.Children) {
				return fmt.Errorf("%w: create %d of %d new children", ErrPatchOutOfRange, d.Pos, len(next.Children))
			}
			created[d.Pos] = true
		case vnode.OpUpdate:
			if d.Pos < 0 || d.Pos >= count || d.Pos >= len(next.Children) || prev == nil || d.Pos >= len(prev.Children) {
				return fmt.Errorf("%w: update %d", ErrPatchOutOfRange, d.Pos)
			}
		}
	}

	anchorFor := e.deltaAnchors(snapshot, removed, created, len(next.Children))
	// Snapshot nodes swapped out by an update; later creates anchor on the
	// node that took their place.
	swapped := make(map[host.Node]host.Node)

	for _, d := range next.Deltas {
		switch d.Op {
		case vnode.OpCreate:
			child := next.Children[d.Pos]
			anchor := anchorFor(d.Pos)
			if n, ok := swapped[anchor]; ok {
				anchor = n
			}
			rc.Effects.Push(Effect{
				Kind:   KindCreate,
				Parent: el,
				Node:   e.materialize(rc, child),
				Anchor: anchor,
				Key:    child.Key,
				Index:  d.Pos,
			})
		case vnode.OpUpdate:
			node, err := e.patchChild(rc, snapshot[d.Pos], d.Pos, next.Children[d.Pos], prev.Children[d.Pos])
			if err != nil {
				return err
			}
			if node != snapshot[d.Pos] {
				swapped[snapshot[d.Pos]] = node
			}
		case vnode.OpRemove:
			e.Release(snapshot[d.Pos])
			rc.Effects.Push(Effect{
				Kind:   KindRemove,
				Parent: el,
				Node:   snapshot[d.Pos],
				Index:  d.Pos,
			})
		}
	}
	return nil
}

// deltaAnchors returns the function that picks the node a created child is
// inserted before.
//
// When the patch list accounts for every change, the snapshot children that
// survive map in order onto the new positions that are not created, and a
// created child goes before the survivor at the next such position. If the
// counts disagree the list is partial, and the child goes before whichever
// snapshot node sits at its position.
func (e *Engine) deltaAnchors(snapshot []host.Node, removed, created map[int]bool, newLen int) func(pos int) host.Node {
	survivors := make([]host.Node, 0, len(snapshot))
	for i, n := range snapshot {
		if !removed[i] {
			survivors = append(survivors, n)
		}
	}

	if len(survivors)+len(created) == newLen {
		byPos := make([]host.Node, newLen)
		k := 0
		for j := 0; j < newLen; j++ {
			if !created[j] {
				byPos[j] = survivors[k]
				k++
			}
		}
		return func(pos int) host.Node {
			for j := pos + 1; j < newLen; j++ {
				if byPos[j] != nil {
					return byPos[j]
				}
			}
			return nil
		}
	}

	e.logger.Debug("Partial patch list, anchoring creates on snapshot positions",
		zap.Int("snapshot", len(snapshot)),
		zap.Int("created", len(created)),
		zap.Int("removed", len(removed)),
		zap.Int("new_children", newLen),
	)
	return func(pos int) host.Node {
		for i := pos; i < len(snapshot); i++ {
			if !removed[i] {
				return snapshot[i]
			}
		}
		return nil
	}
}
