package ifaces

import "context"

// GCPSecrets is an interface for the GCP Secret Manager client.
//
//go:generate mockery --output ./ --name GCPSecrets --filename mock_gcp_secrets.go --outpkg ifaces --structname MockGCPSecrets
type GCPSecrets interface {
	// AccessSecret returns the payload of a secret version, given its full
	// resource name.
	AccessSecret(ctx context.Context, name string) ([]byte, error)

	Close() error
}
