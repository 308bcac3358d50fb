package reconcile

import (
	"testing"

	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"

	"github.com/stretchr/testify/require"
)

// countingFactory records every key it materializes.
type countingFactory struct {
	inner *host.MemoryFactory
	keys  []string
	svg   []bool
}

func newCountingFactory() *countingFactory {
	return &countingFactory{inner: host.NewMemoryFactory()}
}

func (f *countingFactory) Materialize(n *vnode.Node, svg bool) host.Node {
	f.keys = append(f.keys, n.Key)
	f.svg = append(f.svg, svg)
	return f.inner.Materialize(n, svg)
}

func (f *countingFactory) reset() {
	f.keys = nil
	f.svg = nil
}

// keyedList builds <ul> with one keyed <li> per key, the key doubling as text.
func keyedList(keys ...string) *vnode.Node {
	children := make([]*vnode.Node, 0, len(keys))
	for _, k := range keys {
		li := vnode.Keyed("li", k)
		li.Text = k
		children = append(children, li)
	}
	return vnode.List("ul", vnode.FlagKeyedChildren, children...)
}

// textList builds an unkeyed <div> of text leaves.
func textList(texts ...string) *vnode.Node {
	children := make([]*vnode.Node, 0, len(texts))
	for _, s := range texts {
		children = append(children, vnode.T(s))
	}
	return vnode.List("div", vnode.FlagDefault, children...)
}

// mount materializes n under a fresh root and resets the factory counters.
func mount(t *testing.T, eng *Engine, f *countingFactory, n *vnode.Node) *host.Element {
	t.Helper()
	root := host.NewElement("root")
	node, err := eng.Mount(root, n)
	require.NoError(t, err)
	f.reset()
	el, ok := node.(*host.Element)
	require.True(t, ok)
	return el
}

// childKeys returns the data keys of el's element children, in order.
func childKeys(el *host.Element) []string {
	keys := make([]string, 0, el.ChildCount())
	for _, c := range el.Children() {
		if e, ok := c.(*host.Element); ok {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// byKey indexes el's element children by key.
func byKey(el *host.Element) map[string]host.Node {
	out := make(map[string]host.Node)
	for _, c := range el.Children() {
		if e, ok := c.(*host.Element); ok {
			out[e.Key] = c
		}
	}
	return out
}

func patch(t *testing.T, eng *Engine, el host.Node, next, prev *vnode.Node) *Context {
	t.Helper()
	rc, err := eng.Patch(el, next, prev)
	require.NoError(t, err)
	return rc
}
