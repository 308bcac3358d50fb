package host

import (
	"tree-reconciler/core/vnode"
)

// Factory materializes host nodes from descriptions.
type Factory interface {
	// Materialize builds a detached host node for n, including the children
	// n describes.
	Materialize(n *vnode.Node, svg bool) Node
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(n *vnode.Node, svg bool) Node

// Materialize calls f.
func (f FactoryFunc) Materialize(n *vnode.Node, svg bool) Node {
	return f(n, svg)
}

// MemoryFactory builds in-memory Element and Text nodes.
type MemoryFactory struct {
	// SVGTag is the tag that switches descendants into the SVG namespace.
	SVGTag string
	// Created counts materialized top-level nodes.
	Created int
}

// NewMemoryFactory creates a factory with the default svg tag.
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{SVGTag: "svg"}
}

// Materialize builds the host subtree for n.
func (f *MemoryFactory) Materialize(n *vnode.Node, svg bool) Node {
	f.Created++
	return f.build(n, svg)
}

func (f *MemoryFactory) build(n *vnode.Node, svg bool) Node {
	if n == nil {
		return NewText("")
	}
	if n.IsText() {
		return NewText(n.Text)
	}

	svg = svg || (f.SVGTag != "" && n.Tag == f.SVGTag)
	el := &Element{Tag: n.Tag, Key: n.Key, SVG: svg}
	if len(n.Children) == 0 {
		_ = el.SetTextContent(n.Text)
		return el
	}
	for _, c := range n.Children {
		_ = el.AppendChild(f.build(c, svg))
	}
	return el
}
