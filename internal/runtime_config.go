package internal

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Platform represents the cloud platform being used.
type Platform string

const (
	PlatformAWS   Platform = "aws"
	PlatformAzure Platform = "azure"
	PlatformGCP   Platform = "gcp"
)

func ParsePlatform(value string) (Platform, error) {
	switch platform := Platform(value); platform {
	case PlatformAWS, PlatformAzure, PlatformGCP:
		return platform, nil
	}

	return "", fmt.Errorf("unsupported platform %q", value)
}

const (
	MetricSourceSpacelift    = "spacelift"
	MetricSourceAzureMonitor = "azure_monitor"
)

// RuntimeConfig is read from the environment. Fields are grouped by tag: env
// is read on every platform, the others only where they apply. Each tag has
// its own default tag, so that a pass never overwrites what another one read.
type RuntimeConfig struct {
	// Common fields - used by all platforms
	SpaceliftAPIKeyID      string `env:"SPACELIFT_API_KEY_ID,notEmpty"`
	SpaceliftAPISecretName string `env:"SPACELIFT_API_KEY_SECRET_NAME,notEmpty"`
	SpaceliftAPIEndpoint   string `env:"SPACELIFT_API_KEY_ENDPOINT,notEmpty"`
	SpaceliftWorkerPoolID  string `env:"SPACELIFT_WORKER_POOL_ID,notEmpty"`

	// Control loop
	AutoscalingMetricSource                string        `env:"AUTOSCALING_METRIC_SOURCE" envDefault:"spacelift"`
	AutoscalingMetric                      string        `env:"AUTOSCALING_METRIC" envDefault:"worker_demand"`
	AutoscalingMetricResourceID            string        `env:"AUTOSCALING_METRIC_RESOURCE_ID"`
	AutoscalingMetricLowerBound            float64       `env:"AUTOSCALING_METRIC_LOWER_BOUND" envDefault:"0.5"`
	AutoscalingMetricUpperBound            float64       `env:"AUTOSCALING_METRIC_UPPER_BOUND" envDefault:"1"`
	AutoscalingPoolMinSize                 int           `env:"AUTOSCALING_POOL_MIN_SIZE" envDefault:"1"`
	AutoscalingPoolMaxSize                 int           `env:"AUTOSCALING_POOL_MAX_SIZE" envDefault:"2147483647"`
	AutoscalingScaleUpDelay                time.Duration `env:"AUTOSCALING_SCALE_UP_DELAY" envDefault:"0s"`
	AutoscalingScaleDownDelay              time.Duration `env:"AUTOSCALING_SCALE_DOWN_DELAY" envDefault:"5m"`
	AutoscalingMaxKill                     int           `env:"AUTOSCALING_MAX_KILL" envDefault:"1"`
	AutoscalingMaxCreate                   int           `env:"AUTOSCALING_MAX_CREATE" envDefault:"0"`
	AutoscalingPollInterval                time.Duration `env:"AUTOSCALING_POLL_INTERVAL" envDefault:"1m"`
	AutoscalingMaxReachedNotificationDelay time.Duration `env:"AUTOSCALING_MAX_REACHED_NOTIFICATION_DELAY" envDefault:"0s"`
	AutoscalingDrainWorkers                bool          `env:"AUTOSCALING_DRAIN_WORKERS" envDefault:"true"`
	AutoscalingSnapshotPath                string        `env:"AUTOSCALING_SNAPSHOT_PATH"`

	// AWS-specific fields - use awsEnv tag
	AutoscalingGroupARN          string `awsEnv:"AUTOSCALING_GROUP_ARN,notEmpty"`
	AutoscalingRegion            string `awsEnv:"AUTOSCALING_REGION,notEmpty"`
	AutoscalingSnapshotParameter string `awsEnv:"AUTOSCALING_SNAPSHOT_PARAMETER"`

	// Group min/max size (Azure, GCP) - use minMaxEnv tag
	// AWS ASG has built-in min/max; other platforms need these from env vars
	AutoscalingMinSize uint `minMaxEnv:"AUTOSCALING_MIN_SIZE" minMaxEnvDefault:"0"`
	AutoscalingMaxSize uint `minMaxEnv:"AUTOSCALING_MAX_SIZE,notEmpty"`

	// Azure-specific fields - use azEnv tag
	AzureVMSSResourceID     string        `azEnv:"AZURE_VMSS_RESOURCE_ID,notEmpty"`
	AzureMonitorAggregation string        `azEnv:"AZURE_MONITOR_AGGREGATION" azEnvDefault:"Average"`
	AzureMonitorWindow      time.Duration `azEnv:"AZURE_MONITOR_WINDOW" azEnvDefault:"5m"`

	// GCP-specific fields - use gcpEnv tag
	GCPIGMSelfLink string `gcpEnv:"GCP_IGM_SELF_LINK,notEmpty"`
}

// Parse parses environment variables into the config for the specified platform.
func (r *RuntimeConfig) Parse(platform Platform) error {
	var allErrors env.AggregateError

	tags := []string{"env"}

	switch platform {
	case PlatformAWS:
		tags = append(tags, "awsEnv")
	case PlatformAzure:
		tags = append(tags, "azEnv", "minMaxEnv")
	case PlatformGCP:
		tags = append(tags, "gcpEnv", "minMaxEnv")
	}

	for _, tag := range tags {
		if err := env.ParseWithOptions(r, env.Options{TagName: tag, DefaultValueTagName: tag + "Default"}); err != nil {
			var aggErr env.AggregateError
			if errors.As(err, &aggErr) {
				allErrors.Errors = append(allErrors.Errors, aggErr.Errors...)
			} else {
				allErrors.Errors = append(allErrors.Errors, err)
			}
		}
	}

	if len(allErrors.Errors) > 0 {
		return allErrors
	}

	switch r.AutoscalingMetricSource {
	case MetricSourceSpacelift:
	case MetricSourceAzureMonitor:
		if platform != PlatformAzure {
			return fmt.Errorf("metric source %s is only available on Azure", r.AutoscalingMetricSource)
		}
	default:
		return fmt.Errorf("unsupported metric source %q", r.AutoscalingMetricSource)
	}

	return nil
}

// GroupKeyAndID returns the platform-appropriate log key and resource ID.
func (r RuntimeConfig) GroupKeyAndID() (string, string) {
	switch {
	case r.AzureVMSSResourceID != "":
		return "vmss_resource_id", r.AzureVMSSResourceID
	case r.GCPIGMSelfLink != "":
		return "igm_self_link", r.GCPIGMSelfLink
	}
	return "asg_arn", r.AutoscalingGroupARN
}

// MetricRef returns the metric the autoscaler follows. Unless set
// explicitly, the resource is the worker pool for the Spacelift source and
// the scale set for Azure Monitor.
func (r RuntimeConfig) MetricRef() MetricRef {
	ref := MetricRef{ResourceID: r.AutoscalingMetricResourceID, MetricID: r.AutoscalingMetric}

	if ref.ResourceID == "" {
		ref.ResourceID = r.SpaceliftWorkerPoolID

		if r.AutoscalingMetricSource == MetricSourceAzureMonitor {
			ref.ResourceID = r.AzureVMSSResourceID
		}
	}

	return ref
}

// ControllerConfig builds the autoscaler configuration. The per-decision
// create and kill limits map to the resize step maximums.
func (r RuntimeConfig) ControllerConfig() (Config, error) {
	cfg := DefaultConfig(r.MetricRef())

	cfg.Bounds = Bounds{Lower: r.AutoscalingMetricLowerBound, Upper: r.AutoscalingMetricUpperBound}
	cfg.Limits = PoolLimits{MinSize: r.AutoscalingPoolMinSize, MaxSize: r.AutoscalingPoolMaxSize}
	cfg.Stabilization = Stabilization{
		ResizeUpDelay:   r.AutoscalingScaleUpDelay,
		ResizeDownDelay: r.AutoscalingScaleDownDelay,
	}
	cfg.Step = ResizeStep{UpMax: r.AutoscalingMaxCreate, DownMax: r.AutoscalingMaxKill}
	cfg.Sinks = DefaultSinks()
	cfg.MaxReachedNotificationDelay = r.AutoscalingMaxReachedNotificationDelay

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
