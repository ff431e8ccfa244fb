package objectstore_test

import (
	"errors"
	"fmt"
	"testing"

	"s3util/core/objectstore"
	"s3util/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := fmt.Errorf("%w: assets/k", storage.ErrWaitTimeout)
	err := &objectstore.Error{
		Kind:    objectstore.KindCallout,
		Op:      objectstore.OpWaitUntilKeyExists,
		Key:     "k",
		Message: "failed to wait for key existence",
		Err:     cause,
	}

	assert.Equal(t, `wait_until_key_exists: failed to wait for key existence (key "k"): timed out waiting for object: assets/k`, err.Error())
	assert.ErrorIs(t, err, objectstore.ErrCallout)
	assert.NotErrorIs(t, err, objectstore.ErrNotFound)
	assert.ErrorIs(t, err, storage.ErrWaitTimeout)
	assert.Equal(t, objectstore.KindCallout, objectstore.KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, objectstore.Kind(0), objectstore.KindOf(errors.New("plain")))
}

func TestError_DefaultMessage(t *testing.T) {
	err := &objectstore.Error{Kind: objectstore.KindNotFound}
	assert.Equal(t, "not found", err.Error())
	assert.True(t, objectstore.IsNotFound(err))
}
