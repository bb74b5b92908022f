package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/spacelift-io/metricscalr/internal"
)

// Options configure the process around the autoscaler.
type Options struct {
	Platform        string `env:"AUTOSCALING_PLATFORM" envDefault:"aws"`
	TracingExporter string `env:"TRACING_EXPORTER" envDefault:"xray"`
	Port            string `env:"PORT" envDefault:"8080"`
}

// ParseOptions reads the options from the environment, after moving values
// of deprecated variables to their new names.
func ParseOptions(logger *slog.Logger) (Options, internal.Platform, error) {
	migrateDeprecatedEnvVars(logger)

	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, "", fmt.Errorf("could not parse environment variables: %w", err)
	}

	platform, err := internal.ParsePlatform(opts.Platform)
	if err != nil {
		return Options{}, "", err
	}

	return opts, platform, nil
}

// migrateDeprecatedEnvVars copies the values of deprecated environment
// variables to their new names, unless those are set already.
func migrateDeprecatedEnvVars(logger *slog.Logger) {
	deprecatedVars := []struct {
		oldName string
		newName string
	}{
		{"AZURE_AUTOSCALING_MIN_SIZE", "AUTOSCALING_MIN_SIZE"},
		{"AZURE_AUTOSCALING_MAX_SIZE", "AUTOSCALING_MAX_SIZE"},
		{"AZURE_SECRET_NAME", "SPACELIFT_API_KEY_SECRET_NAME"},
	}

	for _, v := range deprecatedVars {
		oldVal := os.Getenv(v.oldName)
		if oldVal == "" {
			continue
		}

		if os.Getenv(v.newName) != "" {
			logger.Warn("deprecated environment variable ignored", "old", v.oldName, "new", v.newName)
			continue
		}

		if err := os.Setenv(v.newName, oldVal); err != nil {
			logger.Error("could not migrate environment variable", "old", v.oldName, "error", err)
			continue
		}

		logger.Warn("deprecated environment variable used", "old", v.oldName, "new", v.newName)
	}
}
