package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSM is an interface which mocks the subset of the SSM client that we use
// for secrets and configuration snapshots.
//
//go:generate mockery --inpackage --name SSM --filename mock_ssm.go --unroll-variadic=false
type SSM interface {
	GetParameter(context.Context, *ssm.GetParameterInput, ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(context.Context, *ssm.PutParameterInput, ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}
