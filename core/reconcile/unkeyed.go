package reconcile

// reconcileUnkeyed diffs children by position. The shared prefix is walked
// from the highest index down, so nested work for a later slot is always
// queued before anything touching an earlier slot.
func (e *Engine) reconcileUnkeyed(rc *Context) error {
	// No previous list means no host children to diff against
	if rc.Prev == nil || rc.Prev.Children == nil {
		return e.appendAll(rc, rc.Next.Children)
	}

	el := rc.El
	oldCh, newCh := rc.Prev.Children, rc.Next.Children
	common := len(oldCh)
	if len(newCh) < common {
		common = len(newCh)
	}

	// Patch the shared prefix, highest index first
	for i := common - 1; i >= 0; i-- {
		if _, err := e.patchChild(rc, el.ChildAt(i), i, newCh[i], oldCh[i]); err != nil {
			return err
		}
	}

	// Append the new suffix in order
	if len(newCh) > common {
		for i := common; i < len(newCh); i++ {
			rc.Effects.Push(Effect{
				Kind:   KindCreate,
				Parent: el,
				Node:   e.materialize(rc, newCh[i]),
				Key:    newCh[i].Key,
				Index:  i,
			})
		}
		return nil
	}

	// Remove the old suffix from the end; these nodes are not pooled
	for i := len(oldCh) - 1; i >= common; i-- {
		node := el.ChildAt(i)
		e.Release(node)
		rc.Effects.Push(Effect{
			Kind:   KindRemove,
			Parent: el,
			Node:   node,
			Key:    oldCh[i].Key,
			Index:  i,
		})
	}
	return nil
}
