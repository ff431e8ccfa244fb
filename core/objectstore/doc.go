// Package objectstore is the user-facing facade over a storage.Backend.
//
// A Store is bound to one bucket at construction and exposes the operations
// application code actually needs: JSON round-trips, file uploads, move
// (copy then delete), existence checks that treat absence as a normal
// result, bounded waits for eventually consistent writes, presigned URLs,
// size lookups and full prefix listings.
//
// # Errors
//
// Every failure is an *Error carrying one of four kinds:
//
//   - KindNotFound: the key is absent (only from GetSerializable).
//   - KindCallout: the backend call failed (network, throttling, permission,
//     wait timeout). The cause is kept in the chain.
//   - KindInvalidOperation: rejected before reaching the backend
//     (unserializable value, unreadable file, non-positive expiry).
//   - KindItemParsing: the body was fetched but could not be decoded.
//
// Use errors.Is with ErrNotFound, ErrCallout, ErrInvalidOperation or
// ErrItemParsing to branch on the kind.
//
// # Usage
//
//	store := objectstore.New(backend, "assets", logger)
//	if err := store.PutSerializable(ctx, "k1", map[string]int{"a": 1}); err != nil {
//	    return err
//	}
//	v, err := objectstore.Get[map[string]int](ctx, store, "k1")
package objectstore
