// Package vnode defines node descriptions: the immutable, in-memory trees that
// describe what a host tree should look like after a render pass.
//
// A description is either an element (tag, optional key, children) or a text
// leaf. Elements may carry an optimization Flag emitted by an external
// compiler, and an optional list of precomputed Deltas that bypass the general
// diff algorithm entirely.
//
// # Wire Format
//
// Descriptions and scenarios can be decoded from JSON or YAML:
//
//	tag: ul
//	flag: keyed_children
//	children:
//	  - {tag: li, key: a, text: Alpha}
//	  - {tag: li, key: b, text: Beta}
//
// A node without a tag is a text leaf, and a bare string inside a children
// list is shorthand for one.
package vnode
