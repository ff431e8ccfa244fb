package storage

import "time"

// Config holds configuration for the storage backend.
type Config struct {
	// Endpoint is the host of the S3-compatible service.
	Endpoint string `mapstructure:"endpoint" default:"s3.amazonaws.com"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// SessionToken is an optional STS session token.
	SessionToken string `mapstructure:"session_token" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket the facade operates on.
	Bucket string `mapstructure:"bucket" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ListPageSize is the maximum number of keys requested per listing page.
	ListPageSize int `mapstructure:"list_page_size" default:"1000"`
	// PollIntervalSeconds is the delay between existence probes while waiting.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" default:"2"`
	// WaitTimeoutSeconds bounds how long to wait for a key to appear.
	WaitTimeoutSeconds int `mapstructure:"wait_timeout_seconds" default:"60"`
}

// PollInterval returns the configured poll interval, or DefaultPollInterval.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// WaitTimeout returns the configured wait timeout, or DefaultWaitTimeout.
func (c Config) WaitTimeout() time.Duration {
	if c.WaitTimeoutSeconds <= 0 {
		return DefaultWaitTimeout
	}
	return time.Duration(c.WaitTimeoutSeconds) * time.Second
}
