package reconcile

import (
	"fmt"
)

// Apply executes the effect against its host nodes.
func (e Effect) Apply() error {
	if e.Parent == nil {
		return fmt.Errorf("%s effect has no parent", e.Kind)
	}

	switch e.Kind {
	case KindCreate:
		return e.Parent.InsertBefore(e.Node, e.Anchor)
	case KindUpdate:
		if e.Node == nil {
			return e.Parent.SetTextContent(e.Text)
		}
		return e.Node.SetTextContent(e.Text)
	case KindRemove:
		if e.Node == nil {
			return e.Parent.SetTextContent("")
		}
		return e.Parent.RemoveChild(e.Node)
	case KindReplace:
		if e.Node == nil {
			return e.Parent.SetTextContent(e.Text)
		}
		if err := e.Parent.InsertBefore(e.Node, e.Anchor); err != nil {
			return err
		}
		return e.Parent.RemoveChild(e.Anchor)
	default:
		return fmt.Errorf("unknown effect kind %d", e.Kind)
	}
}

// Replay applies effects in queuing order. It stops at the first host fault
// and returns the number of effects applied before it.
func Replay(effects []Effect) (applied int, err error) {
	for i, e := range effects {
		if err := e.Apply(); err != nil {
			return applied, fmt.Errorf("effect %d (%s key=%q): %w", i, e.Kind, e.Key, err)
		}
		applied++
	}
	return applied, nil
}

// Batch groups effects into consecutive runs of at most size effects, in
// queuing order. A commit function can replay one batch per frame.
func Batch(effects []Effect, size int) [][]Effect {
	if size <= 0 || len(effects) <= size {
		if len(effects) == 0 {
			return nil
		}
		return [][]Effect{effects}
	}

	var batches [][]Effect
	for start := 0; start < len(effects); start += size {
		end := start + size
		if end > len(effects) {
			end = len(effects)
		}
		batches = append(batches, effects[start:end])
	}
	return batches
}
