// Package middleware groups the Fiber middleware used by the render API.
//
// # Components
//
//   - rayid: tags every request with an X-Ray-ID. A caller-supplied id is kept
//     only when it parses as a UUID; otherwise a fresh one is generated. The
//     id is stored in the request locals for logger.WithRayID and echoed in
//     the response header.
//   - auth: checks the API key sent as X-API-Key or as an
//     "Authorization: Bearer" token, using a constant-time comparison. Paths
//     under one of the configured public prefixes skip the check, and an
//     empty key disables it entirely.
//
// Both are registered globally in cmd/start.go, which marks /swagger as
// public. rayid runs first so that every response, auth failures included,
// carries a ray id.
package middleware
