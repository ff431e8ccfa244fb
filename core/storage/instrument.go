package storage

import (
	"context"
	"io"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "s3util/core/storage"

// Operation names reported to observers and used as span names.
const (
	OpPut     = "put_object"
	OpGet     = "get_object"
	OpHead    = "head_object"
	OpCopy    = "copy_object"
	OpDelete  = "delete_object"
	OpPresign = "presign_get_object"
	OpList    = "list_keys"
	OpWait    = "wait_until_object_exists"
)

// Observer receives one call per completed backend operation.
type Observer interface {
	Observe(op string, bytes int64, err error, dur time.Duration)
}

// instrumented decorates a Backend with an Observer and OpenTelemetry spans.
type instrumented struct {
	next     Backend
	observer Observer
	tracer   trace.Tracer
}

// Instrument wraps next so every call is traced and reported to observer.
// A nil observer only traces.
func Instrument(next Backend, observer Observer) Backend {
	return &instrumented{
		next:     next,
		observer: observer,
		tracer:   otel.Tracer(tracerName),
	}
}

func (i *instrumented) start(ctx context.Context, op, bucket, key string) (context.Context, trace.Span, time.Time) {
	ctx, span := i.tracer.Start(ctx, "storage."+op, trace.WithAttributes(
		attribute.String("storage.bucket", bucket),
		attribute.String("storage.key", key),
	))
	return ctx, span, time.Now()
}

func (i *instrumented) finish(span trace.Span, op string, bytes int64, err error, started time.Time) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if i.observer != nil {
		i.observer.Observe(op, bytes, err, time.Since(started))
	}
}

func (i *instrumented) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, metadata map[string]string) error {
	ctx, span, started := i.start(ctx, OpPut, bucket, key)
	err := i.next.PutObject(ctx, bucket, key, body, size, metadata)
	i.finish(span, OpPut, size, err, started)
	return err
}

func (i *instrumented) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	ctx, span, started := i.start(ctx, OpGet, bucket, key)
	body, err := i.next.GetObject(ctx, bucket, key)
	i.finish(span, OpGet, 0, err, started)
	return body, err
}

func (i *instrumented) HeadObject(ctx context.Context, bucket, key string) (ObjectHead, error) {
	ctx, span, started := i.start(ctx, OpHead, bucket, key)
	head, err := i.next.HeadObject(ctx, bucket, key)
	i.finish(span, OpHead, 0, err, started)
	return head, err
}

func (i *instrumented) CopyObject(ctx context.Context, bucket, sourceKey, targetKey string) error {
	ctx, span, started := i.start(ctx, OpCopy, bucket, sourceKey)
	span.SetAttributes(attribute.String("storage.target_key", targetKey))
	err := i.next.CopyObject(ctx, bucket, sourceKey, targetKey)
	i.finish(span, OpCopy, 0, err, started)
	return err
}

func (i *instrumented) DeleteObject(ctx context.Context, bucket, key string) error {
	ctx, span, started := i.start(ctx, OpDelete, bucket, key)
	err := i.next.DeleteObject(ctx, bucket, key)
	i.finish(span, OpDelete, 0, err, started)
	return err
}

func (i *instrumented) PresignGetObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (*url.URL, error) {
	ctx, span, started := i.start(ctx, OpPresign, bucket, key)
	u, err := i.next.PresignGetObject(ctx, bucket, key, expiresIn)
	i.finish(span, OpPresign, 0, err, started)
	return u, err
}

func (i *instrumented) ListKeys(ctx context.Context, bucket, prefix, continuationToken string) (Page, error) {
	ctx, span, started := i.start(ctx, OpList, bucket, prefix)
	page, err := i.next.ListKeys(ctx, bucket, prefix, continuationToken)
	span.SetAttributes(attribute.Int("storage.page_keys", len(page.Keys)))
	i.finish(span, OpList, 0, err, started)
	return page, err
}

func (i *instrumented) WaitUntilObjectExists(ctx context.Context, bucket, key string, timeout time.Duration) error {
	ctx, span, started := i.start(ctx, OpWait, bucket, key)
	err := i.next.WaitUntilObjectExists(ctx, bucket, key, timeout)
	i.finish(span, OpWait, 0, err, started)
	return err
}
