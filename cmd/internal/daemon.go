package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/spacelift-io/metricscalr/internal"
)

const destroyTimeout = 15 * time.Second

// polledSource is a metric source that needs to run to produce samples.
type polledSource interface {
	internal.MetricSource
	Run(ctx context.Context) error
}

type secretReader interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Daemon is an autoscaler wired to its metric source and cloud group.
type Daemon struct {
	AutoScaler *internal.AutoScaler

	// Store is nil unless a snapshot location is configured.
	Store internal.SnapshotStore

	sources []polledSource
	closers []func() error
	logger  *slog.Logger
}

// Build creates the daemon for a platform from the environment.
func Build(ctx context.Context, logger *slog.Logger, platform internal.Platform) (*Daemon, error) {
	var cfg internal.RuntimeConfig
	if err := cfg.Parse(platform); err != nil {
		return nil, fmt.Errorf("could not parse environment variables: %w", err)
	}

	groupKey, groupID := cfg.GroupKeyAndID()
	logger = logger.With("platform", string(platform), groupKey, groupID, "worker_pool_id", cfg.SpaceliftWorkerPoolID)

	tracer := otel.Tracer("github.com/spacelift-io/metricscalr/internal/controller")
	d := &Daemon{logger: logger}

	var (
		group   internal.GroupController
		secrets secretReader
	)

	switch platform {
	case internal.PlatformAWS:
		awsConfig, err := internal.LoadAWSConfig(ctx, cfg.AutoscalingRegion)
		if err != nil {
			return nil, err
		}

		ctrl, err := internal.NewAWSController(awsConfig, &cfg, tracer)
		if err != nil {
			return nil, fmt.Errorf("could not create AWS controller: %w", err)
		}
		group, secrets = ctrl, ctrl

		if cfg.AutoscalingSnapshotParameter != "" {
			d.Store = &internal.SSMSnapshotStore{SSM: ctrl.SSM, ParameterName: cfg.AutoscalingSnapshotParameter, Tracer: tracer}
		}
	case internal.PlatformAzure:
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("could not create Azure credential: %w", err)
		}

		ctrl, err := internal.NewAzureController(cred, &cfg, tracer)
		if err != nil {
			return nil, fmt.Errorf("could not create Azure controller: %w", err)
		}
		group, secrets = ctrl, ctrl

		if cfg.AutoscalingMetricSource == internal.MetricSourceAzureMonitor {
			source, err := newAzureMonitorSource(cred, &cfg, logger)
			if err != nil {
				return nil, err
			}
			d.sources = append(d.sources, source)
		}
	case internal.PlatformGCP:
		ctrl, err := internal.NewGCPController(ctx, &cfg, tracer)
		if err != nil {
			return nil, fmt.Errorf("could not create GCP controller: %w", err)
		}
		group, secrets = ctrl, ctrl
		d.closers = append(d.closers, ctrl.Close)
	default:
		return nil, fmt.Errorf("unsupported platform %q", platform)
	}

	if cfg.AutoscalingSnapshotPath != "" {
		d.Store = internal.FileSnapshotStore{Path: cfg.AutoscalingSnapshotPath}
	}

	apiKeySecret, err := secrets.GetSecret(ctx, cfg.SpaceliftAPISecretName)
	if err != nil {
		return nil, d.closeWith(fmt.Errorf("could not get Spacelift API key secret: %w", err))
	}

	spacelift, err := internal.NewController(ctx, cfg.SpaceliftAPIEndpoint, cfg.SpaceliftAPIKeyID, apiKeySecret, cfg.SpaceliftWorkerPoolID, tracer)
	if err != nil {
		return nil, d.closeWith(err)
	}

	pool := &internal.GroupPool{Group: group, Logger: logger, Tracer: tracer}
	if cfg.AutoscalingDrainWorkers {
		pool.Drainer = spacelift
	}

	if len(d.sources) == 0 {
		d.sources = append(d.sources, internal.NewSpaceliftSource(spacelift, cfg.SpaceliftWorkerPoolID, cfg.AutoscalingPollInterval, logger))
	}

	controllerCfg, err := cfg.ControllerConfig()
	if err != nil {
		return nil, d.closeWith(err)
	}

	if d.Store != nil {
		var restored bool
		if controllerCfg, restored, err = internal.RestoreConfig(ctx, d.Store, controllerCfg); err != nil {
			return nil, d.closeWith(fmt.Errorf("could not restore autoscaler snapshot: %w", err))
		}

		logger.Info("autoscaler configuration loaded", "restored", restored)
	}

	d.AutoScaler, err = internal.NewAutoScaler(controllerCfg, d.sources[0], pool,
		internal.WithLogger(logger),
		internal.WithTracer(otel.Tracer("github.com/spacelift-io/metricscalr/internal/autoscaler")),
	)
	if err != nil {
		return nil, d.closeWith(err)
	}

	return d, nil
}

func newAzureMonitorSource(cred *azidentity.DefaultAzureCredential, cfg *internal.RuntimeConfig, logger *slog.Logger) (*internal.AzureMonitorSource, error) {
	resource, err := internal.ParseVMSSResourceID(cfg.AzureVMSSResourceID)
	if err != nil {
		return nil, err
	}

	metrics, err := internal.NewAzureMonitorMetrics(resource.SubscriptionID, cred)
	if err != nil {
		return nil, err
	}

	tracer := otel.Tracer("github.com/spacelift-io/metricscalr/internal/azuremonitor")

	return internal.NewAzureMonitorSource(metrics, cfg.MetricRef().ResourceID, cfg, logger, tracer), nil
}

// NewDaemon wires an existing autoscaler and its sources.
func NewDaemon(autoScaler *internal.AutoScaler, store internal.SnapshotStore, logger *slog.Logger, sources ...polledSource) *Daemon {
	return &Daemon{AutoScaler: autoScaler, Store: store, sources: sources, logger: logger}
}

// Run attaches the autoscaler and polls its metric sources until ctx is
// done, then destroys the autoscaler.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.AutoScaler.Attach(ctx); err != nil {
		if !d.AutoScaler.IsRunning() {
			return d.closeWith(fmt.Errorf("could not attach autoscaler: %w", err))
		}

		d.logger.Warn("autoscaler attached, but could not enforce pool limits", "error", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, source := range d.sources {
		group.Go(func() error { return source.Run(groupCtx) })
	}

	runErr := group.Wait()

	destroyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), destroyTimeout)
	defer cancel()

	return d.closeWith(errors.Join(runErr, d.AutoScaler.Destroy(destroyCtx)))
}

// Reconfigure applies a new configuration and saves it when a store is
// configured.
func (d *Daemon) Reconfigure(ctx context.Context, cfg internal.Config) error {
	err := d.AutoScaler.Reconfigure(ctx, cfg)

	// A failed resize into new limits still leaves the new configuration in
	// place.
	if d.Store == nil || d.AutoScaler.Snapshot() != cfg {
		return err
	}

	if saveErr := d.Store.Save(ctx, cfg); saveErr != nil {
		return errors.Join(err, fmt.Errorf("could not save autoscaler snapshot: %w", saveErr))
	}

	return err
}

func (d *Daemon) closeWith(err error) error {
	errs := []error{err}

	for _, closer := range d.closers {
		errs = append(errs, closer())
	}
	d.closers = nil

	return errors.Join(errs...)
}
