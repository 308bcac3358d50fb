package host

import (
	"errors"
	"fmt"
)

// ErrNotChild is returned when a mutation references a node that is not a
// child of the target parent, usually because the host tree was changed
// between reconciliation and replay.
var ErrNotChild = errors.New("node is not a child of this parent")

// Node is the set of host primitives the reconciliation engine relies on.
type Node interface {
	// ChildAt returns the child at index i, or nil if out of range.
	ChildAt(i int) Node
	// ChildCount returns the number of children.
	ChildCount() int
	// InsertBefore inserts child before ref. A nil ref appends. If child is
	// already attached somewhere it is moved.
	InsertBefore(child, ref Node) error
	// RemoveChild detaches child.
	RemoveChild(child Node) error
	// SetTextContent replaces all children with the given text. An empty
	// string leaves the node without children.
	SetTextContent(text string) error
	// TextContent returns the concatenated text of the subtree.
	TextContent() string
	// Parent returns the node this one is attached to, if any.
	Parent() Node
}

// Element is the in-memory host element.
type Element struct {
	Tag      string
	Key      string
	SVG      bool
	children []Node
	parent   Node
}

// Text is the in-memory host text node.
type Text struct {
	Data   string
	parent Node
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// ChildAt returns the child at index i.
func (e *Element) ChildAt(i int) Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// Parent returns the parent node.
func (e *Element) Parent() Node {
	return e.parent
}

// IndexOf returns the position of child, or -1.
func (e *Element) IndexOf(child Node) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild appends child, detaching it from any previous parent.
func (e *Element) AppendChild(child Node) error {
	return e.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref.
func (e *Element) InsertBefore(child, ref Node) error {
	if child == nil {
		return fmt.Errorf("insert into <%s>: nil child", e.Tag)
	}
	if child == ref {
		return nil
	}
	if ref != nil && e.IndexOf(ref) < 0 {
		return fmt.Errorf("insert into <%s>: reference %w", e.Tag, ErrNotChild)
	}
	if err := detach(child); err != nil {
		return err
	}

	at := len(e.children)
	if ref != nil {
		at = e.IndexOf(ref)
	}
	e.children = append(e.children, nil)
	copy(e.children[at+1:], e.children[at:])
	e.children[at] = child
	setParent(child, e)
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child Node) error {
	i := e.IndexOf(child)
	if i < 0 {
		return fmt.Errorf("remove from <%s>: %w", e.Tag, ErrNotChild)
	}
	e.children = append(e.children[:i], e.children[i+1:]...)
	setParent(child, nil)
	return nil
}

// SetTextContent replaces every child with a single text node.
func (e *Element) SetTextContent(text string) error {
	for _, c := range e.children {
		setParent(c, nil)
	}
	e.children = nil
	if text != "" {
		t := NewText(text)
		t.parent = e
		e.children = []Node{t}
	}
	return nil
}

// TextContent concatenates the text of all descendants.
func (e *Element) TextContent() string {
	var s string
	for _, c := range e.children {
		s += c.TextContent()
	}
	return s
}

// ChildAt always returns nil; text nodes have no children.
func (t *Text) ChildAt(int) Node { return nil }

// ChildCount always returns 0.
func (t *Text) ChildCount() int { return 0 }

// InsertBefore is not supported on text nodes.
func (t *Text) InsertBefore(Node, Node) error {
	return fmt.Errorf("insert into text node: %w", ErrNotChild)
}

// RemoveChild is not supported on text nodes.
func (t *Text) RemoveChild(Node) error {
	return fmt.Errorf("remove from text node: %w", ErrNotChild)
}

// SetTextContent replaces the text data.
func (t *Text) SetTextContent(text string) error {
	t.Data = text
	return nil
}

// TextContent returns the text data.
func (t *Text) TextContent() string { return t.Data }

// Parent returns the parent node.
func (t *Text) Parent() Node { return t.parent }

func detach(n Node) error {
	p := n.Parent()
	if p == nil {
		return nil
	}
	return p.RemoveChild(n)
}

func setParent(n Node, p Node) {
	switch v := n.(type) {
	case *Element:
		v.parent = p
	case *Text:
		v.parent = p
	}
}
