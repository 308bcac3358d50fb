// Package render exposes the reconciliation engine over HTTP.
//
// Every request builds a fresh in-memory host tree, mounts the previous
// description, reconciles it into the next one and replays the queued effects.
// The response carries the effect list, the markup before and after, and
// whether the patched tree matches a fresh render of the next description.
//
// # Components
//
//   - Service: Runs passes, loads and stores scenarios, records runs.
//   - Handler: Exposes HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # Scenarios
//
// A scenario is a YAML document stored at scenarios/<name>.yaml in the
// configured bucket:
//
//	name: keyed-swap
//	prev: {tag: ul, flag: keyed_children, children: [{tag: li, key: a, text: A}, {tag: li, key: b, text: B}]}
//	next: {tag: ul, flag: keyed_children, children: [{tag: li, key: b, text: B}, {tag: li, key: a, text: A}]}
//
// # HTTP Endpoints
//
//   - POST /render/diff : Reconcile a submitted prev/next pair.
//   - GET /render/scenarios : List stored scenarios.
//   - GET /render/scenarios/:name : Run a stored scenario.
//   - PUT /render/scenarios/:name : Validate and store a scenario.
//   - GET /render/runs : List journaled runs (requires the database).
package render
