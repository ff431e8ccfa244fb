// Package config provides configuration management for s3util.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file read through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: endpoint, credentials, bucket and waiter timings
//   - Log: Logging level and format
//   - Metrics: Prometheus exporter toggle and path
//
// Defaults come from the `default` struct tags of each section. Environment
// variables override them using the upper-cased key path, so storage.bucket
// is read from STORAGE_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
