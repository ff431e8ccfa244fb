package memory_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"s3util/core/storage"
	"s3util/core/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, b *memory.Backend, key, body string, metadata map[string]string) {
	t.Helper()
	require.NoError(t, b.PutObject(context.Background(), "assets", key, strings.NewReader(body), int64(len(body)), metadata))
}

func TestBackend_PutGetHead(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	meta := map[string]string{"owner": "alice"}
	put(t, b, "docs/a.txt", "hello", meta)
	meta["owner"] = "mallory"

	rc, err := b.GetObject(ctx, "assets", "docs/a.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	head, err := b.HeadObject(ctx, "assets", "docs/a.txt")
	require.NoError(t, err)
	require.NotNil(t, head.ContentLength)
	assert.Equal(t, int64(5), *head.ContentLength)
	assert.Equal(t, map[string]string{"owner": "alice"}, head.Metadata)

	put(t, b, "docs/b.txt", "x", nil)
	head, err = b.HeadObject(ctx, "assets", "docs/b.txt")
	require.NoError(t, err)
	assert.Nil(t, head.Metadata)

	_, err = b.GetObject(ctx, "assets", "docs/missing.txt")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	_, err = b.HeadObject(ctx, "other-bucket", "docs/a.txt")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestBackend_SizeMismatch(t *testing.T) {
	b := memory.New()
	err := b.PutObject(context.Background(), "assets", "k", bytes.NewReader([]byte("abc")), 10, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, b.Len("assets"))
}

func TestBackend_CopyDelete(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	put(t, b, "src", "data", map[string]string{"k": "v"})

	require.NoError(t, b.CopyObject(ctx, "assets", "src", "dst"))
	head, err := b.HeadObject(ctx, "assets", "dst")
	require.NoError(t, err)
	assert.Equal(t, "v", head.Metadata["k"])
	assert.Equal(t, 2, b.Len("assets"))

	require.NoError(t, b.DeleteObject(ctx, "assets", "src"))
	require.NoError(t, b.DeleteObject(ctx, "assets", "src"), "deleting an absent key is not an error")
	assert.Equal(t, 1, b.Len("assets"))

	err = b.CopyObject(ctx, "assets", "src", "again")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestBackend_WritesRevealHiddenKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("Put", func(t *testing.T) {
		b := memory.New()
		put(t, b, "k", "old", nil)
		b.RevealAfter("assets", "k", 100)
		put(t, b, "k", "new", nil)

		_, err := b.HeadObject(ctx, "assets", "k")
		assert.NoError(t, err)
	})

	t.Run("CopyOntoKey", func(t *testing.T) {
		b := memory.New()
		put(t, b, "src", "data", nil)
		put(t, b, "dst", "old", nil)
		b.RevealAfter("assets", "dst", 100)
		require.NoError(t, b.CopyObject(ctx, "assets", "src", "dst"))

		_, err := b.HeadObject(ctx, "assets", "dst")
		assert.NoError(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		b := memory.New()
		put(t, b, "k", "data", nil)
		b.RevealAfter("assets", "k", 100)
		require.NoError(t, b.DeleteObject(ctx, "assets", "k"))
		put(t, b, "k", "again", nil)

		_, err := b.HeadObject(ctx, "assets", "k")
		assert.NoError(t, err)
	})
}

func TestBackend_ListKeysPaging(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	b.SetPageSize(2)
	for _, k := range []string{"p/3", "p/1", "q/1", "p/2", "p/4", "p/5"} {
		put(t, b, k, "", nil)
	}

	var pages [][]string
	token := ""
	for {
		page, err := b.ListKeys(ctx, "assets", "p/", token)
		require.NoError(t, err)
		pages = append(pages, page.Keys)
		if !page.IsTruncated {
			assert.Empty(t, page.NextContinuationToken)
			break
		}
		token = page.NextContinuationToken
	}

	assert.Equal(t, [][]string{{"p/1", "p/2"}, {"p/3", "p/4"}, {"p/5"}}, pages)
	assert.Equal(t, 3, b.Calls(storage.OpList))

	_, err := b.ListKeys(ctx, "assets", "p/", "!!not-base64!!")
	assert.Error(t, err)
}

func TestBackend_FailOn(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	throttled := errors.New("SlowDown")

	b.FailOn(storage.OpHead, throttled)
	_, err := b.HeadObject(ctx, "assets", "k")
	assert.ErrorIs(t, err, throttled)

	b.FailOn(storage.OpHead, nil)
	_, err = b.HeadObject(ctx, "assets", "k")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	assert.Equal(t, 2, b.Calls(storage.OpHead))
}

func TestBackend_WaitUntilObjectExists(t *testing.T) {
	ctx := context.Background()

	t.Run("RevealedWithinTimeout", func(t *testing.T) {
		b := memory.New()
		b.SetPollInterval(time.Millisecond)
		put(t, b, "late", "x", nil)
		b.RevealAfter("assets", "late", 3)

		_, err := b.GetObject(ctx, "assets", "late")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)

		require.NoError(t, b.WaitUntilObjectExists(ctx, "assets", "late", time.Second))
		assert.Equal(t, 4, b.Calls(storage.OpHead))
	})

	t.Run("NeverAppears", func(t *testing.T) {
		b := memory.New()
		b.SetPollInterval(5 * time.Millisecond)

		err := b.WaitUntilObjectExists(ctx, "assets", "never", 30*time.Millisecond)
		assert.ErrorIs(t, err, storage.ErrWaitTimeout)
	})

	t.Run("InjectedFailure", func(t *testing.T) {
		b := memory.New()
		denied := fmt.Errorf("AccessDenied")
		b.FailOn(storage.OpHead, denied)

		err := b.WaitUntilObjectExists(ctx, "assets", "k", time.Second)
		assert.ErrorIs(t, err, denied)
	})
}

func TestBackend_Presign(t *testing.T) {
	b := memory.New()
	u, err := b.PresignGetObject(context.Background(), "assets", "docs/a.txt", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "memory://assets/docs/a.txt?X-Amz-Expires=900", u.String())
}
