// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the listen port and the API key that protects every route.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by cmd/start.go to bind the listener and auth middleware.
package server
