package vnode

import "strings"

// Kind distinguishes element nodes from text leaves.
type Kind int

const (
	// KindElement is a container node with a tag and children.
	KindElement Kind = iota
	// KindText is a text leaf.
	KindText
)

// Flag declares which fast path is valid for a node's children.
type Flag int

const (
	// FlagDefault lets the engine pick the generic path.
	FlagDefault Flag = iota
	// FlagNoChildren declares that the node has no children.
	FlagNoChildren
	// FlagKeyedChildren declares that every child carries a unique key.
	FlagKeyedChildren
	// FlagTextChildren declares that the children are plain text.
	FlagTextChildren
)

// String returns the wire name of the flag.
func (f Flag) String() string {
	switch f {
	case FlagNoChildren:
		return "no_children"
	case FlagKeyedChildren:
		return "keyed_children"
	case FlagTextChildren:
		return "text_children"
	default:
		return "default"
	}
}

// Op is the operation of a precomputed delta.
type Op int

const (
	// OpCreate inserts the new child at the delta position.
	OpCreate Op = iota
	// OpUpdate reconciles the child at the delta position in place.
	OpUpdate
	// OpRemove deletes the host child at the delta position.
	OpRemove
)

// String returns the wire name of the operation.
func (o Op) String() string {
	switch o {
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "create"
	}
}

// Delta is a precomputed structural edit. Pos indexes the host child list
// as it was when the reconciliation pass started.
type Delta struct {
	Op  Op
	Pos int
}

// Node describes a renderable element or text leaf. Descriptions are
// immutable once built; a new tree is produced for every render pass.
type Node struct {
	Kind Kind
	// Tag is the element name. Empty for text leaves.
	Tag string
	// Key identifies the node among its siblings across renders.
	Key string
	// Text holds the content of a text leaf, or the scalar children of a
	// text-only element.
	Text     string
	Children []*Node
	Flag     Flag
	// Deltas replaces the general algorithm when non-nil. An empty, non-nil
	// slice is a present patch list with nothing to do.
	Deltas []Delta
}

// El builds an element description.
func El(tag string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Children: children}
}

// Keyed builds a keyed element description.
func Keyed(tag, key string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Key: key, Children: children}
}

// T builds a text leaf.
func T(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// WithFlag sets the optimization flag and returns the node.
func (n *Node) WithFlag(f Flag) *Node {
	n.Flag = f
	return n
}

// WithDeltas attaches a precomputed patch list and returns the node.
func (n *Node) WithDeltas(d ...Delta) *Node {
	if d == nil {
		d = []Delta{}
	}
	n.Deltas = d
	return n
}

// List builds an element whose child list is present even when empty.
func List(tag string, flag Flag, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Kind: KindElement, Tag: tag, Flag: flag, Children: children}
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == KindText
}

// HasDeltas reports whether a patch list is present.
func (n *Node) HasDeltas() bool {
	return n != nil && n.Deltas != nil
}

// HasChildren reports whether the node carries any children, either as a
// list or as scalar text.
func (n *Node) HasChildren() bool {
	if n == nil || n.Kind == KindText {
		return false
	}
	return len(n.Children) > 0 || n.Text != ""
}

// ChildrenAbsent reports whether the node carries neither a child list nor
// scalar text. An empty but present list is not absent.
func (n *Node) ChildrenAbsent() bool {
	if n == nil || n.Kind == KindText {
		return true
	}
	return n.Children == nil && n.Text == ""
}

// IsTextContainer reports whether the children should be diffed as a single
// string: either the flag says so or the node only carries scalar text.
func (n *Node) IsTextContainer() bool {
	if n == nil || n.Kind == KindText {
		return false
	}
	return n.Flag == FlagTextChildren || (len(n.Children) == 0 && n.Text != "")
}

// JoinedText concatenates the node's children into a single string. Scalar
// text is returned as-is.
func (n *Node) JoinedText() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if c.Kind == KindText {
			b.WriteString(c.Text)
		} else {
			b.WriteString(c.JoinedText())
		}
	}
	return b.String()
}

// SameType reports whether two descriptions can share one host node.
func SameType(a, b *Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind == b.Kind && a.Tag == b.Tag
}

// Equal reports structural equality of two description trees.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Key != b.Key || a.Text != b.Text || a.Flag != b.Flag {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
