package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

// AzureMonitorSource is a MetricSource publishing Azure Monitor platform
// metrics of a single resource, typically a scale set. Metrics are read every
// Interval; the latest data point in the trailing Window is published.
type AzureMonitorSource struct {
	*MetricBus

	Metrics     ifaces.AzureMetrics
	ResourceURI string
	Aggregation string
	Interval    time.Duration
	Window      time.Duration

	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewAzureMonitorMetrics creates an Azure Monitor metrics client.
func NewAzureMonitorMetrics(subscriptionID string, cred azcore.TokenCredential) (ifaces.AzureMetrics, error) {
	factory, err := armmonitor.NewClientFactory(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure Monitor client: %w", err)
	}

	return factory.NewMetricsClient(), nil
}

func NewAzureMonitorSource(metrics ifaces.AzureMetrics, resourceURI string, cfg *RuntimeConfig, logger *slog.Logger, tracer trace.Tracer) *AzureMonitorSource {
	return &AzureMonitorSource{
		MetricBus:   NewMetricBus(logger),
		Metrics:     metrics,
		ResourceURI: resourceURI,
		Aggregation: cfg.AzureMonitorAggregation,
		Interval:    cfg.AutoscalingPollInterval,
		Window:      cfg.AzureMonitorWindow,
		logger:      logger.With("resource_uri", resourceURI),
		tracer:      tracer,
		now:         time.Now,
	}
}

// Subscribe accepts metrics of the source's own resource only.
func (s *AzureMonitorSource) Subscribe(ctx context.Context, ref MetricRef, handler MetricHandler) (Subscription, error) {
	if !strings.EqualFold(ref.ResourceID, s.ResourceURI) {
		return "", fmt.Errorf("unknown Azure resource %q", ref.ResourceID)
	}

	return s.MetricBus.Subscribe(ctx, MetricRef{ResourceID: s.ResourceURI, MetricID: ref.MetricID}, handler)
}

// Poll reads every subscribed metric once and publishes its latest value.
// Metrics without data in the window are skipped.
func (s *AzureMonitorSource) Poll(ctx context.Context) error {
	var errs []error

	for _, ref := range s.Refs() {
		sample, ok, err := s.latest(ctx, ref.MetricID)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !ok {
			s.logger.WarnContext(ctx, "no data points for metric", "metric_id", ref.MetricID, "window", s.Window)
			continue
		}

		s.Publish(ctx, ref, sample)
	}

	return errors.Join(errs...)
}

func (s *AzureMonitorSource) Run(ctx context.Context) error {
	return pollEvery(ctx, s.Interval, s.logger, s.Poll)
}

func (s *AzureMonitorSource) latest(ctx context.Context, metricName string) (Sample, bool, error) {
	ctx, span := s.tracer.Start(ctx, "azure.monitor.metrics.list")
	defer span.End()

	span.SetAttributes(attribute.String("metric", metricName))

	end := s.now().UTC()
	start := end.Add(-s.Window)

	resp, err := s.Metrics.List(ctx, s.ResourceURI, &armmonitor.MetricsClientListOptions{
		Metricnames: to.Ptr(metricName),
		Aggregation: to.Ptr(s.Aggregation),
		Interval:    to.Ptr("PT1M"),
		Timespan:    to.Ptr(start.Format(time.RFC3339) + "/" + end.Format(time.RFC3339)),
	})
	if err != nil {
		return Sample{}, false, fmt.Errorf("could not list Azure Monitor metric %s: %w", metricName, err)
	}

	var (
		out   Sample
		found bool
	)

	for _, metric := range resp.Value {
		if metric == nil {
			continue
		}

		for _, series := range metric.Timeseries {
			if series == nil {
				continue
			}

			for _, point := range series.Data {
				if point == nil || point.TimeStamp == nil {
					continue
				}

				value := aggregatedValue(point, s.Aggregation)
				if value == nil || (found && !point.TimeStamp.After(out.Timestamp)) {
					continue
				}

				out, found = Sample{Value: *value, Timestamp: *point.TimeStamp}, true
			}
		}
	}

	return out, found, nil
}

func aggregatedValue(point *armmonitor.MetricValue, aggregation string) *float64 {
	switch strings.ToLower(aggregation) {
	case "maximum":
		return point.Maximum
	case "minimum":
		return point.Minimum
	case "total":
		return point.Total
	case "count":
		return point.Count
	default:
		return point.Average
	}
}
