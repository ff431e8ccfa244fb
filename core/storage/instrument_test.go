package storage_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"s3util/core/storage"
	"s3util/core/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	op    string
	bytes int64
	err   error
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) Observe(op string, bytes int64, err error, dur time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{op: op, bytes: bytes, err: err})
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	observer := &recordingObserver{}
	backend := storage.Instrument(inner, observer)

	require.NoError(t, backend.PutObject(ctx, "assets", "a.json", bytes.NewReader([]byte("{}")), 2, nil))
	_, err := backend.HeadObject(ctx, "assets", "missing.json")
	require.ErrorIs(t, err, storage.ErrObjectNotFound)

	denied := errors.New("AccessDenied")
	inner.FailOn(storage.OpDelete, denied)
	err = backend.DeleteObject(ctx, "assets", "a.json")
	assert.ErrorIs(t, err, denied)

	page, err := backend.ListKeys(ctx, "assets", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, page.Keys)

	require.Len(t, observer.obs, 4)
	assert.Equal(t, observation{op: storage.OpPut, bytes: 2}, observer.obs[0])
	assert.Equal(t, storage.OpHead, observer.obs[1].op)
	assert.ErrorIs(t, observer.obs[1].err, storage.ErrObjectNotFound)
	assert.Equal(t, storage.OpDelete, observer.obs[2].op)
	assert.ErrorIs(t, observer.obs[2].err, denied)
	assert.Equal(t, storage.OpList, observer.obs[3].op)
}

func TestInstrument_NilObserver(t *testing.T) {
	backend := storage.Instrument(memory.New(), nil)
	u, err := backend.PresignGetObject(context.Background(), "assets", "a.json", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "/a.json", u.Path)
}
