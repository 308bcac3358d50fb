package reconcile

import (
	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"
)

// fastPath handles the cases that never need the general algorithm and
// reports whether it did.
func (e *Engine) fastPath(rc *Context) (bool, error) {
	next, prev := rc.Next, rc.Prev

	if next.Flag == vnode.FlagNoChildren || next.ChildrenAbsent() {
		if prev.HasChildren() {
			e.releaseChildren(rc.El)
			rc.Effects.Push(Effect{Kind: KindRemove, Parent: rc.El, Index: -1})
		}
		return true, nil
	}

	if next.IsTextContainer() {
		text := next.JoinedText()
		if textOnly(prev) && prev.JoinedText() == text {
			return true, nil
		}
		e.releaseChildren(rc.El)
		rc.Effects.Push(Effect{Kind: KindReplace, Parent: rc.El, Text: text, Index: -1})
		return true, nil
	}

	// Text content does not map onto host children one by one, so leaving a
	// text container always starts from an empty parent.
	if prev.IsTextContainer() {
		e.releaseChildren(rc.El)
		rc.Effects.Push(Effect{Kind: KindRemove, Parent: rc.El, Index: -1})
		return true, e.appendAll(rc, next.Children)
	}

	if prev == nil || len(prev.Children) == 0 {
		return true, e.appendAll(rc, next.Children)
	}

	return false, nil
}

// appendAll creates every child in order. Keyed lists draw on the parent's
// pool when one already exists.
func (e *Engine) appendAll(rc *Context, children []*vnode.Node) error {
	pool, pooled := (*Pool)(nil), false
	if rc.Next.Flag == vnode.FlagKeyedChildren {
		pool, pooled = e.pools.Lookup(rc.El)
	}

	for i, c := range children {
		var (
			node     host.Node
			recycled bool
			err      error
		)
		if pooled {
			if node, recycled, err = e.acquire(rc, pool, c); err != nil {
				return err
			}
		} else {
			node = e.materialize(rc, c)
		}
		rc.Effects.Push(Effect{
			Kind:     KindCreate,
			Parent:   rc.El,
			Node:     node,
			Key:      c.Key,
			Index:    i,
			Recycled: recycled,
		})
	}
	return nil
}

// textOnly reports whether every child of n is plain text.
func textOnly(n *vnode.Node) bool {
	if n == nil || n.IsText() {
		return false
	}
	if n.IsTextContainer() {
		return true
	}
	if len(n.Children) == 0 {
		return false
	}
	for _, c := range n.Children {
		if !c.IsText() {
			return false
		}
	}
	return true
}
