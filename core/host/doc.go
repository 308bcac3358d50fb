// Package host provides the host node abstraction the reconciliation engine
// mutates, plus an in-memory implementation.
//
// The Node interface exposes only the primitives reconciliation needs:
// indexed child lookup, insert-before, remove-child and set-text-content.
// Element and Text implement it in memory; they back the CLI, the HTTP API
// and the tests. Factory turns descriptions into detached host subtrees.
//
// # Usage
//
//	f := host.NewMemoryFactory()
//	root := host.NewElement("div")
//	_ = root.AppendChild(f.Materialize(vnode.El("p", vnode.T("hi")), false))
//	fmt.Println(host.Render(root)) // <div><p>hi</p></div>
package host
