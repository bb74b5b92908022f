package internal_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/metricscalr/internal"
	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

const monitoredResourceURI = "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Compute/virtualMachineScaleSets/vmss"

func setupAzureMonitorSource(t *testing.T, aggregation string) (*internal.AzureMonitorSource, *ifaces.MockAzureMetrics) {
	metrics := ifaces.NewMockAzureMetrics(t)

	cfg := &internal.RuntimeConfig{
		AutoscalingPollInterval: time.Minute,
		AzureMonitorAggregation: aggregation,
		AzureMonitorWindow:      5 * time.Minute,
	}

	return internal.NewAzureMonitorSource(metrics, monitoredResourceURI, cfg, discardLogger(), newTracer()), metrics
}

func metricsResponse(points ...*armmonitor.MetricValue) armmonitor.MetricsClientListResponse {
	return armmonitor.MetricsClientListResponse{
		Response: armmonitor.Response{
			Value: []*armmonitor.Metric{
				{Timeseries: []*armmonitor.TimeSeriesElement{{Data: points}}},
			},
		},
	}
}

func cpuRef() internal.MetricRef {
	return internal.MetricRef{ResourceID: monitoredResourceURI, MetricID: "Percentage CPU"}
}

func TestAzureMonitorSource_Subscribe_OtherResource_ReturnsError(t *testing.T) {
	sut, _ := setupAzureMonitorSource(t, "Average")

	_, err := sut.Subscribe(t.Context(), internal.MetricRef{ResourceID: "/other", MetricID: "Percentage CPU"}, func(context.Context, internal.Sample) {})

	require.EqualError(t, err, `unknown Azure resource "/other"`)
}

func TestAzureMonitorSource_Poll_SendsCorrectInput(t *testing.T) {
	sut, metrics := setupAzureMonitorSource(t, "Maximum")

	var capturedOptions *armmonitor.MetricsClientListOptions
	metrics.On(
		"List",
		mock.Anything,
		monitoredResourceURI,
		mock.MatchedBy(func(in *armmonitor.MetricsClientListOptions) bool {
			capturedOptions = in
			return true
		}),
	).Return(armmonitor.MetricsClientListResponse{}, errors.New("bacon"))

	ref := internal.MetricRef{ResourceID: strings.ToLower(monitoredResourceURI), MetricID: "Percentage CPU"}
	_, err := sut.Subscribe(t.Context(), ref, func(context.Context, internal.Sample) {})
	require.NoError(t, err)

	_ = sut.Poll(t.Context())

	require.NotNil(t, capturedOptions)
	require.Equal(t, "Percentage CPU", *capturedOptions.Metricnames)
	require.Equal(t, "Maximum", *capturedOptions.Aggregation)
	require.Equal(t, "PT1M", *capturedOptions.Interval)

	start, end, ok := strings.Cut(*capturedOptions.Timespan, "/")
	require.True(t, ok)

	startTime, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)

	endTime, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)

	require.Equal(t, 5*time.Minute, endTime.Sub(startTime))
}

func TestAzureMonitorSource_Poll_ListFails_ReturnsError(t *testing.T) {
	sut, metrics := setupAzureMonitorSource(t, "Average")

	metrics.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(armmonitor.MetricsClientListResponse{}, errors.New("bacon"))

	_, err := sut.Subscribe(t.Context(), cpuRef(), func(context.Context, internal.Sample) {})
	require.NoError(t, err)

	err = sut.Poll(t.Context())

	require.EqualError(t, err, "could not list Azure Monitor metric Percentage CPU: bacon")
}

func TestAzureMonitorSource_Poll_PublishesLatestDataPoint(t *testing.T) {
	sut, metrics := setupAzureMonitorSource(t, "Average")

	newest := time.Date(2024, 1, 1, 12, 3, 0, 0, time.UTC)

	metrics.On("List", mock.Anything, mock.Anything, mock.Anything).Return(metricsResponse(
		&armmonitor.MetricValue{TimeStamp: ptr(newest.Add(-2 * time.Minute)), Average: ptr(10.0)},
		&armmonitor.MetricValue{TimeStamp: ptr(newest), Average: ptr(42.0)},
		&armmonitor.MetricValue{TimeStamp: ptr(newest.Add(-time.Minute)), Average: ptr(20.0)},
		&armmonitor.MetricValue{TimeStamp: ptr(newest.Add(time.Minute))},
		nil,
	), nil)

	var got []internal.Sample
	_, err := sut.Subscribe(t.Context(), cpuRef(), func(_ context.Context, sample internal.Sample) {
		got = append(got, sample)
	})
	require.NoError(t, err)

	require.NoError(t, sut.Poll(t.Context()))

	require.Equal(t, []internal.Sample{{Value: 42, Timestamp: newest}}, got)
}

func TestAzureMonitorSource_Poll_UsesConfiguredAggregation(t *testing.T) {
	sut, metrics := setupAzureMonitorSource(t, "Total")

	metrics.On("List", mock.Anything, mock.Anything, mock.Anything).Return(metricsResponse(
		&armmonitor.MetricValue{TimeStamp: ptr(time.Now()), Average: ptr(1.0), Total: ptr(7.0)},
	), nil)

	var got []internal.Sample
	_, err := sut.Subscribe(t.Context(), cpuRef(), func(_ context.Context, sample internal.Sample) {
		got = append(got, sample)
	})
	require.NoError(t, err)

	require.NoError(t, sut.Poll(t.Context()))

	require.Len(t, got, 1)
	require.Equal(t, 7.0, got[0].Value)
}

func TestAzureMonitorSource_Poll_NoDataPoints_PublishesNothing(t *testing.T) {
	sut, metrics := setupAzureMonitorSource(t, "Average")

	metrics.On("List", mock.Anything, mock.Anything, mock.Anything).Return(metricsResponse(), nil)

	_, err := sut.Subscribe(t.Context(), cpuRef(), func(context.Context, internal.Sample) {
		t.Fatal("unexpected sample")
	})
	require.NoError(t, err)

	require.NoError(t, sut.Poll(t.Context()))
}

func TestAzureMonitorSource_Poll_NoSubscribers_DoesNotQuery(t *testing.T) {
	sut, _ := setupAzureMonitorSource(t, "Average")

	require.NoError(t, sut.Poll(t.Context()))
}
