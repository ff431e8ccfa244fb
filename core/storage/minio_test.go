package storage_test

import (
	"testing"
	"time"

	"s3util/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewBackend(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		backend, err := storage.NewBackend(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, backend)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		backend, err := storage.NewBackend(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, backend)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:     "https://s3.amazonaws.com",
			AccessKey:    "testkey",
			SecretKey:    "testsecret",
			SessionToken: "token",
			UseSSL:       true,
			Region:       "eu-west-1",
		}

		backend, err := storage.NewBackend(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, backend)
	})

	t.Run("InvalidEndpoint", func(t *testing.T) {
		cfg := storage.Config{Endpoint: "localhost:9000/bucket/path"}

		backend, err := storage.NewBackend(cfg)
		assert.Error(t, err)
		assert.Nil(t, backend)
	})
}

func TestConfigDurations(t *testing.T) {
	assert.Equal(t, storage.DefaultPollInterval, storage.Config{}.PollInterval())
	assert.Equal(t, storage.DefaultWaitTimeout, storage.Config{}.WaitTimeout())
	assert.Equal(t, 5*time.Second, storage.Config{PollIntervalSeconds: 5}.PollInterval())
	assert.Equal(t, 10*time.Second, storage.Config{WaitTimeoutSeconds: 10}.WaitTimeout())
}
