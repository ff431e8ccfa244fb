package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioBackend implements Backend on top of the MinIO Go client. It works
// against AWS S3 and any S3-compatible service.
type MinioBackend struct {
	core         *minio.Core
	pageSize     int
	pollInterval time.Duration
}

var _ Backend = (*MinioBackend)(nil)

// NewBackend creates a MinIO-backed Backend from the configuration.
// No network call is made; the client connects lazily.
func NewBackend(cfg Config) (*MinioBackend, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration, // Wait for first response byte timeout
	}

	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	pageSize := cfg.ListPageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	return &MinioBackend{
		core:         core,
		pageSize:     pageSize,
		pollInterval: cfg.PollInterval(),
	}, nil
}

func (b *MinioBackend) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, metadata map[string]string) error {
	_, err := b.core.Client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{
		UserMetadata: metadata,
	})
	return err
}

// GetObject issues the GET immediately so that a missing key is reported here
// rather than on the first Read.
func (b *MinioBackend) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	body, _, _, err := b.core.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(err)
	}
	return body, nil
}

func (b *MinioBackend) HeadObject(ctx context.Context, bucket, key string) (ObjectHead, error) {
	info, err := b.core.Client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectHead{}, classify(err)
	}

	head := ObjectHead{
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}
	if len(info.UserMetadata) > 0 {
		head.Metadata = make(map[string]string, len(info.UserMetadata))
		for k, v := range info.UserMetadata {
			head.Metadata[k] = v
		}
	}
	if info.Size >= 0 {
		size := info.Size
		head.ContentLength = &size
	}
	return head, nil
}

func (b *MinioBackend) CopyObject(ctx context.Context, bucket, sourceKey, targetKey string) error {
	_, err := b.core.Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucket, Object: targetKey},
		minio.CopySrcOptions{Bucket: bucket, Object: sourceKey},
	)
	return err
}

func (b *MinioBackend) DeleteObject(ctx context.Context, bucket, key string) error {
	return b.core.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

func (b *MinioBackend) PresignGetObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (*url.URL, error) {
	return b.core.Client.PresignedGetObject(ctx, bucket, key, expiresIn, nil)
}

// ListKeys fetches a single ListObjectsV2 page. Note that the low level
// listing call in minio-go does not accept a context.
func (b *MinioBackend) ListKeys(ctx context.Context, bucket, prefix, continuationToken string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	result, err := b.core.ListObjectsV2(bucket, prefix, "", continuationToken, "", b.pageSize)
	decoded := true
	if err != nil {
		if !truncatedWithoutToken(err, result) {
			return Page{}, err
		}
		// minio rejects such a page before url-decoding its keys.
		decoded = false
	}

	page := Page{
		Keys:                  make([]string, 0, len(result.Contents)),
		IsTruncated:           result.IsTruncated,
		NextContinuationToken: result.NextContinuationToken,
	}
	for _, obj := range result.Contents {
		key := obj.Key
		if !decoded && result.EncodingType == "url" {
			if key, err = url.QueryUnescape(obj.Key); err != nil {
				return Page{}, fmt.Errorf("failed to decode key %q: %w", obj.Key, err)
			}
		}
		if key != "" {
			page.Keys = append(page.Keys, key)
		}
	}
	return page, nil
}

// truncatedWithoutToken reports the error minio-go returns for a truncated
// page that carries no continuation token. That page ends the listing.
func truncatedWithoutToken(err error, result minio.ListBucketV2Result) bool {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) || resp.Code != minio.NotImplemented {
		return false
	}
	return result.IsTruncated && result.NextContinuationToken == ""
}

// WaitUntilObjectExists polls HeadObject; the MinIO client has no native
// waiter. Absence keeps polling, any other failure aborts the wait.
func (b *MinioBackend) WaitUntilObjectExists(ctx context.Context, bucket, key string, timeout time.Duration) error {
	return PollUntilExists(ctx, func(ctx context.Context) (bool, error) {
		_, err := b.HeadObject(ctx, bucket, key)
		if errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}
		return err == nil, err
	}, timeout, b.pollInterval)
}

// classify wraps S3 "no such key" responses with ErrObjectNotFound and leaves
// everything else untouched.
func classify(err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}
	return err
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return false
	}
	switch resp.Code {
	case minio.NoSuchKey, "NotFound":
		return true
	case minio.NoSuchBucket:
		return false
	}
	return resp.StatusCode == http.StatusNotFound
}
