package metrics

// Config holds metrics settings.
type Config struct {
	Enabled     bool   `env:"METRICS_ENABLED" envDefault:"true"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"crmlink"`

	// ServiceVersion is set from the build version, not the environment.
	ServiceVersion string
}
