package metrics

// Config holds configuration for the metrics endpoint.
type Config struct {
	// Enabled toggles storage instrumentation and the metrics endpoint.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Path is the HTTP path where metrics are exposed.
	Path string `mapstructure:"path" default:"/metrics"`
}
