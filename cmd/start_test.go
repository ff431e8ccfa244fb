package cmd

import (
	"io"
	"net/http/httptest"
	"testing"

	"s3util/core/config"
	"s3util/core/metrics"
	"s3util/core/middleware/auth"
	"s3util/core/middleware/rayid"
	"s3util/core/objectstore"
	"s3util/core/storage"
	"s3util/core/storage/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, apiKey string) *fiber.App {
	t.Helper()
	m := metrics.NewStorageMetrics(prometheus.NewRegistry())
	backend := storage.Instrument(memory.New(), m)

	cfg := &config.Config{}
	cfg.Server.ApiKey = apiKey
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	sess := &session{
		cfg:     cfg,
		logger:  zap.NewNop(),
		store:   objectstore.New(backend, testBucket, zap.NewNop()),
		metrics: m,
	}
	app, err := newApp(sess)
	require.NoError(t, err)
	return app
}

func TestNewApp_ServesObjectsAndMetrics(t *testing.T) {
	app := newTestApp(t, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/objects/exists?key=missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(rayid.Header))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `s3util_storage_ops_total{op="head_object",result="not_found"} 1`)
}

func TestNewApp_RequiresAPIKey(t *testing.T) {
	app := newTestApp(t, "secret")

	resp, err := app.Test(httptest.NewRequest("GET", "/objects", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/objects", nil)
	req.Header.Set(auth.Header, "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Metrics stay public.
	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
