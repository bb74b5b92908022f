package ifaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
)

// AzureMetrics is the subset of the Azure Monitor metrics client that we use
// to read resource metrics. *armmonitor.MetricsClient satisfies it.
//
//go:generate mockery --output ./ --name AzureMetrics --filename mock_azure_metrics.go --outpkg ifaces --structname MockAzureMetrics
type AzureMetrics interface {
	List(ctx context.Context, resourceURI string, options *armmonitor.MetricsClientListOptions) (armmonitor.MetricsClientListResponse, error)
}
