package reconcile

import (
	"sort"
	"sync"

	"tree-reconciler/core/host"
	"tree-reconciler/core/vnode"
)

// PoolEntry is a detached host node kept for reuse, with the description it
// last rendered.
type PoolEntry struct {
	Node host.Node
	Desc *vnode.Node
}

// Pool caches removed keyed children of one parent.
type Pool struct {
	entries map[string]PoolEntry
}

func newPool() *Pool {
	return &Pool{entries: make(map[string]PoolEntry)}
}

// Put stores n under key and returns the stale entry it overwrote, if any.
func (p *Pool) Put(key string, n host.Node, desc *vnode.Node) (PoolEntry, bool) {
	old, ok := p.entries[key]
	p.entries[key] = PoolEntry{Node: n, Desc: desc}
	return old, ok
}

// Take returns and forgets the entry for key.
func (p *Pool) Take(key string) (PoolEntry, bool) {
	e, ok := p.entries[key]
	if ok {
		delete(p.entries, key)
	}
	return e, ok
}

// Get returns the entry for key without removing it.
func (p *Pool) Get(key string) (PoolEntry, bool) {
	e, ok := p.entries[key]
	return e, ok
}

// Len returns the number of cached nodes.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Keys returns the cached keys in sorted order.
func (p *Pool) Keys() []string {
	keys := make([]string, 0, len(p.entries))
	for k := range p.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PoolTable maps parent host nodes to their pools. A single pass only
// touches the pool of the parent it reconciles; the lock only guards the
// table itself so distinct parents can be reconciled concurrently.
type PoolTable struct {
	mu    sync.RWMutex
	pools map[host.Node]*Pool
}

// NewPoolTable creates an empty table.
func NewPoolTable() *PoolTable {
	return &PoolTable{pools: make(map[host.Node]*Pool)}
}

// For returns the pool of parent, creating it on first use.
func (t *PoolTable) For(parent host.Node) *Pool {
	t.mu.RLock()
	p, ok := t.pools[parent]
	t.mu.RUnlock()
	if ok {
		return p
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Double-check after acquiring the write lock
	if p, ok := t.pools[parent]; ok {
		return p
	}
	p = newPool()
	t.pools[parent] = p
	return p
}

// Lookup returns the pool of parent without creating it.
func (t *PoolTable) Lookup(parent host.Node) (*Pool, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.pools[parent]
	return p, ok
}

// Drop forgets the pool of parent and returns it. Call it when the parent
// is destroyed.
func (t *PoolTable) Drop(parent host.Node) (*Pool, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.pools[parent]
	if ok {
		delete(t.pools, parent)
	}
	return p, ok
}

// Len returns the number of parents with a pool.
func (t *PoolTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.pools)
}
