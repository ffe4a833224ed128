package telemetry

import (
	"os"
	"strconv"
)

// Config holds OTLP exporter settings.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// LoadConfig reads OTLP settings from environment variables.
func LoadConfig() Config {
	enabled, _ := strconv.ParseBool(os.Getenv("SESHIS_OTEL_ENABLED"))
	insecure, _ := strconv.ParseBool(os.Getenv("SESHIS_OTEL_INSECURE"))

	return Config{
		Endpoint: os.Getenv("SESHIS_OTEL_ENDPOINT"),
		Enabled:  enabled,
		Insecure: insecure,
	}
}
