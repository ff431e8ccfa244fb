// Package keygen builds object keys for storage.
//
// Keys are date-partitioned so that objects written on the same day share a
// common prefix, and each key ends in a zero-padded epoch timestamp followed by
// a random UUID:
//
//	uploads/2024/03/09/01709942400-1b4e28ba-2fa1-11d2-883f-0016d3cca427
//
// The 11-digit epoch keeps lexicographic order equal to chronological order,
// and the UUID keeps two keys generated within the same second distinct.
//
// # Usage
//
//	key := keygen.DatePartitionedUniqueKey("uploads", time.Now())
package keygen
