// Package storage defines the backend seam for object storage.
//
// The Backend interface is deliberately close to the raw S3 primitives so
// that everything above it can be tested without a network. It has one
// production implementation, MinioBackend, which wraps the MinIO Go client and
// works against AWS S3 as well as self-hosted MinIO. Test doubles live in
// core/storage/mocks (testify) and core/storage/memory (in-memory fake).
//
// # Derived Algorithms
//
//   - ListAll: drives ListKeys page by page following continuation tokens.
//   - PollUntilExists: bounded existence polling used to emulate a waiter.
//   - Instrument: decorates a Backend with tracing spans and an Observer.
//
// # Errors
//
// HeadObject and GetObject report a missing key with an error matching
// ErrObjectNotFound. WaitUntilObjectExists reports an expired deadline with an
// error matching ErrWaitTimeout. Anything else is a service or transport error
// and is passed through unchanged.
//
// # Usage
//
//	backend, err := storage.NewBackend(cfg.Storage)
//	keys, err := storage.ListAll(ctx, backend, "assets", "reports/")
package storage
