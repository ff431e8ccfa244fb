package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"s3util/core/storage"

	"go.uber.org/zap"
)

// Operation names carried by Error.Op.
const (
	OpPutSerializable        = "put_serializable"
	OpGetSerializable        = "get_serializable"
	OpUploadFile             = "upload_file"
	OpMoveObject             = "move_object"
	OpDeleteObject           = "delete_object"
	OpKeyExists              = "key_exists"
	OpGetMetadataIfKeyExists = "get_metadata_if_key_exists"
	OpWaitUntilKeyExists     = "wait_until_key_exists"
	OpGeneratePresignedURL   = "generate_presigned_url"
	OpGetSize                = "get_size"
	OpList                   = "list"
)

// Store binds a Backend to one bucket and exposes the high level operations.
// It holds no mutable state and is safe for concurrent use.
type Store struct {
	backend     storage.Backend
	bucket      string
	logger      *zap.Logger
	waitTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithWaitTimeout overrides the bound used by WaitUntilKeyExists.
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.waitTimeout = d
		}
	}
}

// New creates a Store. It performs no network calls.
func New(backend storage.Backend, bucket string, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		backend:     backend,
		bucket:      bucket,
		logger:      logger.With(zap.String("bucket", bucket)),
		waitTimeout: storage.DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bucket returns the bucket this store operates on.
func (s *Store) Bucket() string {
	return s.bucket
}

// fail logs and returns a typed error.
func (s *Store) fail(kind Kind, op, key, msg string, err error) error {
	e := newError(kind, op, key, msg, err)
	s.logger.Warn("Storage operation failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Stringer("kind", kind),
		zap.Error(err),
	)
	return e
}

// PutSerializable encodes value as JSON and stores it at key, overwriting.
func (s *Store) PutSerializable(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return s.fail(KindInvalidOperation, OpPutSerializable, key, "failed to serialize object", err)
	}

	s.logger.Debug("Putting serializable", zap.String("key", key), zap.Int("bytes", len(data)))
	if err := s.backend.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), nil); err != nil {
		return s.fail(KindCallout, OpPutSerializable, key, "failed to put serializable", err)
	}
	return nil
}

// GetSerializable fetches key and decodes its JSON body into out, which
// must be a non-nil pointer.
func (s *Store) GetSerializable(ctx context.Context, key string, out any) error {
	s.logger.Debug("Getting serializable", zap.String("key", key))

	body, err := s.backend.GetObject(ctx, s.bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return newError(KindNotFound, OpGetSerializable, key, "requested item does not exist", err)
		}
		return s.fail(KindCallout, OpGetSerializable, key, "failed to get object", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return s.fail(KindCallout, OpGetSerializable, key, "failed to read object body", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return s.fail(KindItemParsing, OpGetSerializable, key, "failed to deserialize object", err)
	}
	return nil
}

// Get is the generic form of GetSerializable.
func Get[T any](ctx context.Context, s *Store, key string) (T, error) {
	var v T
	err := s.GetSerializable(ctx, key, &v)
	return v, err
}

// UploadFile stores the contents of the local file at path under key.
func (s *Store) UploadFile(ctx context.Context, key, path string, metadata map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return s.fail(KindInvalidOperation, OpUploadFile, key, "failed to open file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return s.fail(KindInvalidOperation, OpUploadFile, key, "failed to stat file", err)
	}
	if info.IsDir() {
		return s.fail(KindInvalidOperation, OpUploadFile, key, "failed to open file", errors.New(path+" is a directory"))
	}

	s.logger.Debug("Uploading file", zap.String("key", key), zap.String("path", path), zap.Int64("bytes", info.Size()))
	if err := s.backend.PutObject(ctx, s.bucket, key, f, info.Size(), metadata); err != nil {
		return s.fail(KindCallout, OpUploadFile, key, "failed to upload file", err)
	}
	return nil
}

// MoveObject copies sourceKey to targetKey and then deletes sourceKey.
//
// The move is not atomic. If the delete fails after a successful copy both
// keys hold the data and the returned error says so.
func (s *Store) MoveObject(ctx context.Context, sourceKey, targetKey string) error {
	s.logger.Debug("Moving object", zap.String("source", sourceKey), zap.String("target", targetKey))

	if err := s.backend.CopyObject(ctx, s.bucket, sourceKey, targetKey); err != nil {
		return s.fail(KindCallout, OpMoveObject, sourceKey, "failed to copy object", err)
	}
	if err := s.backend.DeleteObject(ctx, s.bucket, sourceKey); err != nil {
		return s.fail(KindCallout, OpMoveObject, sourceKey, "copied to "+targetKey+" but failed to delete source", err)
	}
	return nil
}

// DeleteObject removes key.
func (s *Store) DeleteObject(ctx context.Context, key string) error {
	s.logger.Debug("Deleting object", zap.String("key", key))
	if err := s.backend.DeleteObject(ctx, s.bucket, key); err != nil {
		return s.fail(KindCallout, OpDeleteObject, key, "failed to delete object", err)
	}
	return nil
}

// head runs HeadObject and separates absence from failure.
func (s *Store) head(ctx context.Context, op, key string) (storage.ObjectHead, bool, error) {
	head, err := s.backend.HeadObject(ctx, s.bucket, key)
	if err == nil {
		return head, true, nil
	}
	if errors.Is(err, storage.ErrObjectNotFound) {
		return storage.ObjectHead{}, false, nil
	}
	return storage.ObjectHead{}, false, s.fail(KindCallout, op, key, "failed to check key existence", err)
}

// KeyExists reports whether key exists. Only absence yields false; any other
// failure is returned as a callout error.
func (s *Store) KeyExists(ctx context.Context, key string) (bool, error) {
	_, exists, err := s.head(ctx, OpKeyExists, key)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetMetadataIfKeyExists returns the object's metadata and true, or nil and
// false when key does not exist. Missing metadata is returned as an empty map.
func (s *Store) GetMetadataIfKeyExists(ctx context.Context, key string) (map[string]string, bool, error) {
	head, exists, err := s.head(ctx, OpGetMetadataIfKeyExists, key)
	if err != nil || !exists {
		return nil, false, err
	}
	if head.Metadata == nil {
		return map[string]string{}, true, nil
	}
	return head.Metadata, true, nil
}

// WaitUntilKeyExists blocks until key exists or the store's wait timeout
// (60s by default) elapses.
func (s *Store) WaitUntilKeyExists(ctx context.Context, key string) error {
	s.logger.Debug("Waiting for key", zap.String("key", key), zap.Duration("timeout", s.waitTimeout))
	if err := s.backend.WaitUntilObjectExists(ctx, s.bucket, key, s.waitTimeout); err != nil {
		return s.fail(KindCallout, OpWaitUntilKeyExists, key, "failed to wait for key existence", err)
	}
	return nil
}

// GeneratePresignedURL returns a URL granting GET access to key for
// expiresIn. The key is not required to exist.
func (s *Store) GeneratePresignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		return "", s.fail(KindInvalidOperation, OpGeneratePresignedURL, key, "expiry must be positive", errors.New("expires in "+expiresIn.String()))
	}

	u, err := s.backend.PresignGetObject(ctx, s.bucket, key, expiresIn)
	if err != nil {
		return "", s.fail(KindCallout, OpGeneratePresignedURL, key, "failed to generate presigned URL", err)
	}
	return u.String(), nil
}

// GetSize returns the object's length in bytes, or 0 when the backend omits it.
func (s *Store) GetSize(ctx context.Context, key string) (int64, error) {
	head, err := s.backend.HeadObject(ctx, s.bucket, key)
	if err != nil {
		return 0, s.fail(KindCallout, OpGetSize, key, "failed to get object size", err)
	}
	if head.ContentLength == nil {
		return 0, nil
	}
	return *head.ContentLength, nil
}

// List returns every key that starts with prefix, in backend order.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := storage.ListAll(ctx, s.backend, s.bucket, prefix)
	if err != nil {
		return nil, s.fail(KindCallout, OpList, prefix, "failed to list keys", err)
	}
	s.logger.Debug("Listed keys", zap.String("prefix", prefix), zap.Int("count", len(keys)))
	return keys, nil
}
