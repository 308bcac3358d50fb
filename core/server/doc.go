// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure and the derived values the Fiber app needs,
// such as the listen address and the request body limit.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, and the maximum size of
// a submitted render tree.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start to configure the Fiber application.
package server
