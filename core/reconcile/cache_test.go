package reconcile

import (
	"sync"
	"testing"

	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := newPool()
	a := host.NewElement("li")

	p.Put("a", a, vnode.Keyed("li", "a"))
	p.Put("c", host.NewElement("li"), vnode.Keyed("li", "c"))
	p.Put("b", host.NewElement("li"), vnode.Keyed("li", "b"))
	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())

	entry, ok := p.Get("a")
	require.True(t, ok)
	assert.Same(t, a, entry.Node)
	assert.Equal(t, 3, p.Len())

	entry, ok = p.Take("a")
	require.True(t, ok)
	assert.Same(t, a, entry.Node)
	assert.Equal(t, "a", entry.Desc.Key)

	_, ok = p.Take("a")
	assert.False(t, ok)
	assert.Equal(t, 2, p.Len())
}

func TestPool_OverwriteStale(t *testing.T) {
	p := newPool()
	older, newer := host.NewElement("li"), host.NewElement("li")

	_, ok := p.Put("k", older, vnode.Keyed("li", "k"))
	assert.False(t, ok)
	stale, ok := p.Put("k", newer, vnode.Keyed("li", "k"))
	require.True(t, ok)
	assert.Same(t, older, stale.Node)

	entry, ok := p.Take("k")
	require.True(t, ok)
	assert.Same(t, newer, entry.Node)
	assert.Zero(t, p.Len())
}

func TestPoolTable(t *testing.T) {
	table := NewPoolTable()
	parent := host.NewElement("ul")

	_, ok := table.Lookup(parent)
	assert.False(t, ok)

	p := table.For(parent)
	assert.Same(t, p, table.For(parent))

	got, ok := table.Lookup(parent)
	require.True(t, ok)
	assert.Same(t, p, got)
	assert.Equal(t, 1, table.Len())

	dropped, ok := table.Drop(parent)
	require.True(t, ok)
	assert.Same(t, p, dropped)
	assert.Zero(t, table.Len())

	_, ok = table.Drop(parent)
	assert.False(t, ok)
	assert.NotSame(t, p, table.For(parent))
}

func TestPoolTable_Concurrent(t *testing.T) {
	table := NewPoolTable()
	parents := make([]*host.Element, 8)
	for i := range parents {
		parents[i] = host.NewElement("ul")
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got = make(map[*host.Element]map[*Pool]bool)
	)
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, parent := range parents {
				p := table.For(parent)
				mu.Lock()
				if got[parent] == nil {
					got[parent] = make(map[*Pool]bool)
				}
				got[parent][p] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(parents), table.Len())
	for _, parent := range parents {
		assert.Len(t, got[parent], 1)
	}
}

func TestEngine_SharedPoolTable(t *testing.T) {
	table := NewPoolTable()
	f := newCountingFactory()
	first := NewEngine(f, WithPoolTable(table))
	second := NewEngine(f, WithPoolTable(table))

	prev := keyedList("a", "b")
	el := mount(t, first, f, prev)
	patch(t, first, el, keyedList("a"), prev)

	assert.Same(t, first.Pools(), second.Pools())
	pool, ok := second.Pools().Lookup(el)
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, pool.Keys())

	patch(t, second, el, keyedList("a", "b"), keyedList("a"))
	assert.Empty(t, f.keys)
	assert.Equal(t, []string{"a", "b"}, childKeys(el))
}

// wrapDiv puts children under an unkeyed <div>.
func wrapDiv(children ...*vnode.Node) *vnode.Node {
	return vnode.List("div", vnode.FlagDefault, children...)
}

// keyedItem builds a keyed <li> that holds its own keyed list.
func keyedItem(key string, inner ...string) *vnode.Node {
	n := vnode.List("li", vnode.FlagKeyedChildren, keyedList(inner...).Children...)
	n.Key = key
	return n
}

func TestEngine_ReplacedParentDropsPool(t *testing.T) {
	f := newCountingFactory()
	eng := NewEngine(f)

	full := wrapDiv(keyedList("a", "b", "c"))
	short := wrapDiv(keyedList("a"))
	ordered := keyedList("a")
	ordered.Tag = "ol"
	flipped := wrapDiv(ordered)

	el := mount(t, eng, f, full)
	for i := 0; i < 50; i++ {
		patch(t, eng, el, short, full)
		require.Equal(t, 1, eng.Pools().Len())

		patch(t, eng, el, flipped, short)
		require.Zero(t, eng.Pools().Len())

		patch(t, eng, el, full, flipped)
	}

	assert.Zero(t, eng.Pools().Len())
	assert.Equal(t, "abc", el.TextContent())
}

func TestEngine_DestroyedChildrenDropPools(t *testing.T) {
	shrunk := wrapDiv(vnode.T("t"), keyedList("a"))

	tests := []struct {
		name string
		next *vnode.Node
		want string
	}{
		{name: "NoChildren", next: vnode.List("div", vnode.FlagNoChildren), want: ""},
		{name: "TextChildren", next: vnode.List("div", vnode.FlagTextChildren, vnode.T("z")), want: "z"},
		{name: "UnkeyedSuffix", next: wrapDiv(vnode.T("t")), want: "t"},
		{name: "DeltaRemove", next: wrapDiv(vnode.T("t")).WithDeltas(vnode.Delta{Op: vnode.OpRemove, Pos: 1}), want: "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCountingFactory()
			eng := NewEngine(f)
			prev := wrapDiv(vnode.T("t"), keyedList("a", "b"))
			el := mount(t, eng, f, prev)

			patch(t, eng, el, shrunk, prev)
			require.Equal(t, 1, eng.Pools().Len())

			patch(t, eng, el, tt.next, shrunk)
			assert.Zero(t, eng.Pools().Len())
			assert.Equal(t, tt.want, el.TextContent())
		})
	}
}

func TestEngine_ReleaseWalksSubtreeAndPools(t *testing.T) {
	f := newCountingFactory()
	eng := NewEngine(f)

	v1 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("a", "x", "y"), keyedItem("b"))
	v2 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("a", "x"), keyedItem("b"))
	v3 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("b"))

	el := mount(t, eng, f, v1)
	patch(t, eng, el, v2, v1)
	patch(t, eng, el, v3, v2)

	pool, ok := eng.Pools().Lookup(el)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, pool.Keys())
	assert.Equal(t, 2, eng.Pools().Len())

	eng.Release(el)
	assert.Zero(t, eng.Pools().Len())
}

func TestEngine_IncompatiblePooledNodeDropsPool(t *testing.T) {
	f := newCountingFactory()
	eng := NewEngine(f)

	v1 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("a", "x", "y"), keyedItem("b"))
	v2 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("a", "x"), keyedItem("b"))
	v3 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("b"))
	other := vnode.Keyed("p", "a")
	other.Text = "p"
	v4 := vnode.List("ul", vnode.FlagKeyedChildren, keyedItem("b"), other)

	el := mount(t, eng, f, v1)
	patch(t, eng, el, v2, v1)
	patch(t, eng, el, v3, v2)
	require.Equal(t, 2, eng.Pools().Len())

	patch(t, eng, el, v4, v3)
	assert.Equal(t, 1, eng.Pools().Len())
	assert.Equal(t, []string{"a"}, f.keys)
	assert.Equal(t, "p", el.TextContent())
}
