// Package memory provides an in-memory storage.Backend for tests and local
// development.
//
// Besides plain storage it can inject a failure for any operation (FailOn),
// hide a stored key from existence probes for a number of calls to simulate
// eventual consistency (RevealAfter), and count calls per operation.
package memory

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"s3util/core/storage"
)

const (
	defaultPageSize     = 1000
	defaultPollInterval = 10 * time.Millisecond
)

type object struct {
	data     []byte
	metadata map[string]string
	modified time.Time
}

// Backend is an in-memory storage.Backend safe for concurrent use.
type Backend struct {
	mu           sync.RWMutex
	buckets      map[string]map[string]object
	hidden       map[string]int
	failures     map[string]error
	calls        map[string]int
	pageSize     int
	pollInterval time.Duration
}

var _ storage.Backend = (*Backend)(nil)

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{
		buckets:      make(map[string]map[string]object),
		hidden:       make(map[string]int),
		failures:     make(map[string]error),
		calls:        make(map[string]int),
		pageSize:     defaultPageSize,
		pollInterval: defaultPollInterval,
	}
}

// SetPageSize sets the maximum number of keys per ListKeys page.
func (b *Backend) SetPageSize(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 {
		n = defaultPageSize
	}
	b.pageSize = n
}

// SetPollInterval sets the delay between probes in WaitUntilObjectExists.
func (b *Backend) SetPollInterval(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pollInterval = d
}

// FailOn makes every call of op (one of the storage.Op* names) return err
// until cleared with a nil err.
func (b *Backend) FailOn(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.failures, op)
		return
	}
	b.failures[op] = err
}

// RevealAfter makes HeadObject and GetObject report key as missing until
// HeadObject has been called probes times for it. Any later write to key
// (put, copy onto it, delete) makes it visible again.
func (b *Backend) RevealAfter(bucket, key string, probes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hidden[bucket+"/"+key] = probes
}

// Calls returns how many times op has been invoked.
func (b *Backend) Calls(op string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[op]
}

// Len returns the number of objects stored in bucket.
func (b *Backend) Len(bucket string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.buckets[bucket])
}

// enter records a call and returns the injected failure, if any.
// Callers must hold b.mu.
func (b *Backend) enter(op string) error {
	b.calls[op]++
	return b.failures[op]
}

func (b *Backend) lookup(bucket, key string) (object, bool) {
	if b.hidden[bucket+"/"+key] > 0 {
		return object{}, false
	}
	obj, ok := b.buckets[bucket][key]
	return obj, ok
}

func notFound(bucket, key string) error {
	return fmt.Errorf("%w: %s/%s", storage.ErrObjectNotFound, bucket, key)
}

func copyMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (b *Backend) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, metadata map[string]string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpPut); err != nil {
		return err
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("body length %d does not match declared size %d", len(data), size)
	}

	if b.buckets[bucket] == nil {
		b.buckets[bucket] = make(map[string]object)
	}
	b.buckets[bucket][key] = object{
		data:     data,
		metadata: copyMetadata(metadata),
		modified: time.Now().UTC(),
	}
	delete(b.hidden, bucket+"/"+key)
	return nil
}

func (b *Backend) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpGet); err != nil {
		return nil, err
	}

	obj, ok := b.lookup(bucket, key)
	if !ok {
		return nil, notFound(bucket, key)
	}
	// Return a copy to prevent external modification
	return io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

func (b *Backend) HeadObject(ctx context.Context, bucket, key string) (storage.ObjectHead, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpHead); err != nil {
		return storage.ObjectHead{}, err
	}

	hiddenKey := bucket + "/" + key
	if n := b.hidden[hiddenKey]; n > 0 {
		b.hidden[hiddenKey] = n - 1
		return storage.ObjectHead{}, notFound(bucket, key)
	}

	obj, ok := b.buckets[bucket][key]
	if !ok {
		return storage.ObjectHead{}, notFound(bucket, key)
	}
	size := int64(len(obj.data))
	return storage.ObjectHead{
		Metadata:      copyMetadata(obj.metadata),
		ContentLength: &size,
		ContentType:   "application/octet-stream",
		ETag:          strconv.FormatInt(obj.modified.UnixNano(), 16),
		LastModified:  obj.modified,
	}, nil
}

func (b *Backend) CopyObject(ctx context.Context, bucket, sourceKey, targetKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpCopy); err != nil {
		return err
	}

	obj, ok := b.lookup(bucket, sourceKey)
	if !ok {
		return notFound(bucket, sourceKey)
	}
	b.buckets[bucket][targetKey] = object{
		data:     bytes.Clone(obj.data),
		metadata: copyMetadata(obj.metadata),
		modified: time.Now().UTC(),
	}
	delete(b.hidden, bucket+"/"+targetKey)
	return nil
}

func (b *Backend) DeleteObject(ctx context.Context, bucket, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpDelete); err != nil {
		return err
	}

	delete(b.buckets[bucket], key)
	delete(b.hidden, bucket+"/"+key)
	return nil
}

func (b *Backend) PresignGetObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (*url.URL, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpPresign); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("X-Amz-Expires", strconv.Itoa(int(expiresIn.Seconds())))
	return &url.URL{
		Scheme:   "memory",
		Host:     bucket,
		Path:     "/" + key,
		RawQuery: q.Encode(),
	}, nil
}

// ListKeys returns keys in lexicographic order. The continuation token is
// the last key of the previous page, encoded.
func (b *Backend) ListKeys(ctx context.Context, bucket, prefix, continuationToken string) (storage.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(storage.OpList); err != nil {
		return storage.Page{}, err
	}

	startAfter := ""
	if continuationToken != "" {
		raw, err := base64.RawURLEncoding.DecodeString(continuationToken)
		if err != nil {
			return storage.Page{}, fmt.Errorf("invalid continuation token: %w", err)
		}
		startAfter = string(raw)
	}

	var matching []string
	for key := range b.buckets[bucket] {
		if strings.HasPrefix(key, prefix) && key > startAfter {
			matching = append(matching, key)
		}
	}
	sort.Strings(matching)

	page := storage.Page{Keys: matching}
	if len(matching) > b.pageSize {
		page.Keys = matching[:b.pageSize]
		page.IsTruncated = true
		page.NextContinuationToken = base64.RawURLEncoding.EncodeToString([]byte(page.Keys[len(page.Keys)-1]))
	}
	return page, nil
}

// WaitUntilObjectExists emulates a waiter by polling HeadObject.
func (b *Backend) WaitUntilObjectExists(ctx context.Context, bucket, key string, timeout time.Duration) error {
	b.mu.Lock()
	err := b.enter(storage.OpWait)
	interval := b.pollInterval
	b.mu.Unlock()
	if err != nil {
		return err
	}

	return storage.PollUntilExists(ctx, func(ctx context.Context) (bool, error) {
		_, err := b.HeadObject(ctx, bucket, key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return false, nil
		}
		return err == nil, err
	}, timeout, interval)
}
