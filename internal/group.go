package internal

import "context"

const (
	LifecycleStateInService   = "InService"
	LifecycleStateTerminating = "Terminating"
)

// Instance is a single machine of an autoscaling group.
type Instance struct {
	ID             string
	LifecycleState string
}

// AutoScalingGroup is the cloud-neutral view of an AWS autoscaling group, an
// Azure scale set or a GCP managed instance group.
type AutoScalingGroup struct {
	Name            string
	MinSize         int
	MaxSize         int
	DesiredCapacity int
	Instances       []Instance
}

// GroupController is implemented by the cloud-specific controllers.
//
//go:generate mockery --output ./ --name GroupController --filename mock_group_controller_test.go --outpkg internal_test
type GroupController interface {
	GetAutoscalingGroup(ctx context.Context) (*AutoScalingGroup, error)

	// SetCapacity sets the desired capacity of the group.
	SetCapacity(ctx context.Context, capacity int) error

	// KillInstance removes an instance from the group and lowers its desired
	// capacity by one.
	KillInstance(ctx context.Context, instanceID string) error

	// WorkerIdentity reads the group and the instance a worker runs on.
	WorkerIdentity(worker *Worker) (GroupID, InstanceID, error)
}
