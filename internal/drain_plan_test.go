package internal_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/metricscalr/internal"
)

func awsIdentity(worker *internal.Worker) (internal.GroupID, internal.InstanceID, error) {
	return worker.InstanceIdentity(internal.AWSMetadataKeys)
}

func workerOn(id, instanceID string, createdAt int32, busy bool) internal.Worker {
	return internal.Worker{
		ID:        id,
		Busy:      busy,
		CreatedAt: createdAt,
		Metadata:  fmt.Sprintf(`{"asg_id": "group", "instance_id": %q}`, instanceID),
	}
}

func inService(ids ...string) []internal.Instance {
	var out []internal.Instance
	for _, id := range ids {
		out = append(out, internal.Instance{ID: id, LifecycleState: internal.LifecycleStateInService})
	}

	return out
}

func TestNewDrainPlan_GroupNameNotSet_ReturnsError(t *testing.T) {
	_, err := internal.NewDrainPlan(&internal.WorkerPool{}, &internal.AutoScalingGroup{}, awsIdentity)

	require.EqualError(t, err, "group name is not set")
}

func TestNewDrainPlan_WorkerWithoutMetadata_ReturnsError(t *testing.T) {
	workerPool := &internal.WorkerPool{Workers: []internal.Worker{{ID: "1", Metadata: "{}"}}}

	_, err := internal.NewDrainPlan(workerPool, &internal.AutoScalingGroup{Name: "group"}, awsIdentity)

	require.ErrorContains(t, err, "could not identify worker 1")
	require.ErrorContains(t, err, "metadata asg_id not present")
}

func TestNewDrainPlan_WorkerFromOtherGroup_ReturnsError(t *testing.T) {
	workerPool := &internal.WorkerPool{Workers: []internal.Worker{
		{ID: "1", Metadata: `{"asg_id": "other", "instance_id": "i-1"}`},
	}}

	_, err := internal.NewDrainPlan(workerPool, &internal.AutoScalingGroup{Name: "group"}, awsIdentity)

	require.EqualError(t, err, "incorrect worker group: other")
}

func TestDrainPlan_Candidates_IdleWorkersOnInServiceInstancesOldestFirst(t *testing.T) {
	workerPool := &internal.WorkerPool{Workers: []internal.Worker{
		workerOn("newest", "i-1", 30, false),
		workerOn("busy", "i-2", 5, true),
		workerOn("oldest", "i-3", 10, false),
		workerOn("terminating", "i-4", 1, false),
		workerOn("middle", "i-5", 20, false),
	}}

	group := &internal.AutoScalingGroup{
		Name: "group",
		Instances: append(
			inService("i-1", "i-2", "i-3", "i-5"),
			internal.Instance{ID: "i-4", LifecycleState: internal.LifecycleStateTerminating},
		),
	}

	sut, err := internal.NewDrainPlan(workerPool, group, awsIdentity)
	require.NoError(t, err)

	var ids []string
	for _, candidate := range sut.Candidates() {
		ids = append(ids, candidate.Worker.ID)
	}

	require.Equal(t, []string{"oldest", "middle", "newest"}, ids)
	require.Equal(t, internal.InstanceID("i-3"), sut.Candidates()[0].InstanceID)
}

func TestDrainPlan_StrayInstances_ReturnsInstancesWithoutWorkers(t *testing.T) {
	workerPool := &internal.WorkerPool{Workers: []internal.Worker{
		workerOn("1", "i-1", 1, false),
	}}

	group := &internal.AutoScalingGroup{
		Name:      "group",
		Instances: inService("i-3", "i-1", "i-2"),
	}

	sut, err := internal.NewDrainPlan(workerPool, group, awsIdentity)
	require.NoError(t, err)

	require.Equal(t, []string{"i-2", "i-3"}, sut.StrayInstances())
}
