package metrics_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"s3util/core/metrics"
	"s3util/core/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Nil", nil, metrics.ResultOK},
		{"NotFound", fmt.Errorf("%w: assets/k", storage.ErrObjectNotFound), metrics.ResultNotFound},
		{"Timeout", fmt.Errorf("%w after 1m", storage.ErrWaitTimeout), metrics.ResultTimeout},
		{"Other", errors.New("AccessDenied"), metrics.ResultError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metrics.Result(tt.err))
		})
	}
}

func TestStorageMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStorageMetrics(reg)

	m.Observe(storage.OpPut, 128, nil, 10*time.Millisecond)
	m.Observe(storage.OpPut, 64, errors.New("SlowDown"), time.Millisecond)
	m.Observe(storage.OpHead, 0, storage.ErrObjectNotFound, time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "s3util_storage_ops_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	expected := `
# HELP s3util_storage_bytes_total Total bytes written through storage operations.
# TYPE s3util_storage_bytes_total counter
s3util_storage_bytes_total{op="put_object"} 128
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "s3util_storage_bytes_total"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `s3util_storage_ops_total{op="head_object",result="not_found"} 1`)
}
