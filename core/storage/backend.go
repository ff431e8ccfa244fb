package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"time"
)

var (
	// ErrObjectNotFound is matched (errors.Is) by HeadObject and GetObject
	// failures caused by the key being absent.
	ErrObjectNotFound = errors.New("object not found")
	// ErrWaitTimeout is matched by WaitUntilObjectExists failures caused by
	// the deadline passing before the object appeared.
	ErrWaitTimeout = errors.New("timed out waiting for object")
)

// Backend is the minimal set of storage primitives the rest of the module
// needs. Every method takes the bucket explicitly; keys are never resolved
// across buckets.
type Backend interface {
	// PutObject stores body at key, replacing any existing object.
	// size is the body length, or -1 when unknown. metadata may be nil.
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, metadata map[string]string) error
	// GetObject opens the object for reading. The caller drains and closes it.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// HeadObject returns object attributes without the body.
	HeadObject(ctx context.Context, bucket, key string) (ObjectHead, error)
	// CopyObject copies sourceKey to targetKey inside bucket. The source is kept.
	CopyObject(ctx context.Context, bucket, sourceKey, targetKey string) error
	// DeleteObject removes key. Removing an absent key is not an error.
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGetObject signs a GET request for key valid for expiresIn.
	// It does not check that key exists.
	PresignGetObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (*url.URL, error)
	// ListKeys returns one page of keys under prefix, resuming from
	// continuationToken when it is not empty.
	ListKeys(ctx context.Context, bucket, prefix, continuationToken string) (Page, error)
	// WaitUntilObjectExists blocks until key exists or timeout elapses.
	WaitUntilObjectExists(ctx context.Context, bucket, key string, timeout time.Duration) error
}

// KeyLister is the subset of Backend needed to enumerate keys.
type KeyLister interface {
	ListKeys(ctx context.Context, bucket, prefix, continuationToken string) (Page, error)
}

// ObjectHead holds the attributes returned by HeadObject.
// Nil fields were omitted by the backend.
type ObjectHead struct {
	// Metadata is the user metadata attached at write time.
	Metadata map[string]string
	// ContentLength is the body size in bytes.
	ContentLength *int64
	// ContentType is the stored MIME type.
	ContentType string
	// ETag is the entity tag reported by the backend.
	ETag string
	// LastModified is the time the object was last written.
	LastModified time.Time
}

// Page is a single batch of a paginated listing.
type Page struct {
	// Keys holds the object keys in the order the backend returned them.
	Keys []string
	// IsTruncated reports whether the backend has more results.
	IsTruncated bool
	// NextContinuationToken resumes the listing. Empty means absent.
	NextContinuationToken string
}
