// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: Implements API key validation through the X-API-Key header.
//   - rayid: Assigns a unique Request ID (RayID) to every incoming request,
//     injecting it into the context and the X-Ray-ID response header.
//
// These middleware components are registered globally in cmd/start.go.
package middleware
