package mocks

import (
	"context"
	"io"
	"net/url"
	"time"

	"s3util/core/storage"

	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of storage.Backend
type Backend struct {
	mock.Mock
}

var _ storage.Backend = (*Backend)(nil)

func (m *Backend) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, metadata map[string]string) error {
	args := m.Called(ctx, bucket, key, body, size, metadata)
	return args.Error(0)
}

func (m *Backend) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) HeadObject(ctx context.Context, bucket, key string) (storage.ObjectHead, error) {
	args := m.Called(ctx, bucket, key)
	if head, ok := args.Get(0).(storage.ObjectHead); ok {
		return head, args.Error(1)
	}
	return storage.ObjectHead{}, args.Error(1)
}

func (m *Backend) CopyObject(ctx context.Context, bucket, sourceKey, targetKey string) error {
	args := m.Called(ctx, bucket, sourceKey, targetKey)
	return args.Error(0)
}

func (m *Backend) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *Backend) PresignGetObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (*url.URL, error) {
	args := m.Called(ctx, bucket, key, expiresIn)
	if u, ok := args.Get(0).(*url.URL); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) ListKeys(ctx context.Context, bucket, prefix, continuationToken string) (storage.Page, error) {
	args := m.Called(ctx, bucket, prefix, continuationToken)
	if page, ok := args.Get(0).(storage.Page); ok {
		return page, args.Error(1)
	}
	return storage.Page{}, args.Error(1)
}

func (m *Backend) WaitUntilObjectExists(ctx context.Context, bucket, key string, timeout time.Duration) error {
	args := m.Called(ctx, bucket, key, timeout)
	return args.Error(0)
}
