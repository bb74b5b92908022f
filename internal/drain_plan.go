package internal

import (
	"cmp"
	"fmt"
	"slices"
)

// DrainCandidate is an idle worker together with the instance it runs on.
type DrainCandidate struct {
	Worker     Worker
	InstanceID InstanceID
}

// DrainPlan matches the workers of a Spacelift worker pool with the instances
// of the group they run on, so that the group can be shrunk without killing
// busy workers.
type DrainPlan struct {
	WorkerPool *WorkerPool
	Group      *AutoScalingGroup

	inServiceInstanceIDs map[InstanceID]struct{}
	workersByInstanceID  map[InstanceID]Worker
}

func NewDrainPlan(workerPool *WorkerPool, group *AutoScalingGroup, identify func(*Worker) (GroupID, InstanceID, error)) (*DrainPlan, error) {
	if group.Name == "" {
		return nil, fmt.Errorf("group name is not set")
	}

	workersByInstanceID := make(map[InstanceID]Worker)
	inServiceInstanceIDs := make(map[InstanceID]struct{})

	for _, worker := range workerPool.Workers {
		groupID, instanceID, err := identify(&worker)
		if err != nil {
			return nil, fmt.Errorf("could not identify worker %s: %w", worker.ID, err)
		}

		if string(groupID) != group.Name {
			return nil, fmt.Errorf("incorrect worker group: %s", groupID)
		}

		workersByInstanceID[instanceID] = worker
	}

	for _, instance := range group.Instances {
		if instance.LifecycleState != LifecycleStateInService {
			continue
		}

		inServiceInstanceIDs[InstanceID(instance.ID)] = struct{}{}
	}

	return &DrainPlan{
		WorkerPool:           workerPool,
		Group:                group,
		inServiceInstanceIDs: inServiceInstanceIDs,
		workersByInstanceID:  workersByInstanceID,
	}, nil
}

// Candidates returns the idle workers running on in-service instances,
// oldest first.
func (p *DrainPlan) Candidates() []DrainCandidate {
	var out []DrainCandidate

	for instanceID, worker := range p.workersByInstanceID {
		if worker.Busy {
			continue
		}

		if _, ok := p.inServiceInstanceIDs[instanceID]; !ok {
			continue
		}

		out = append(out, DrainCandidate{Worker: worker, InstanceID: instanceID})
	}

	slices.SortFunc(out, func(a, b DrainCandidate) int {
		return cmp.Or(cmp.Compare(a.Worker.CreatedAt, b.Worker.CreatedAt), cmp.Compare(a.Worker.ID, b.Worker.ID))
	})

	return out
}

// StrayInstances returns the in-service instances that don't have a
// corresponding worker in the worker pool, sorted.
func (p *DrainPlan) StrayInstances() []string {
	var out []string

	for instanceID := range p.inServiceInstanceIDs {
		if _, ok := p.workersByInstanceID[instanceID]; !ok {
			out = append(out, string(instanceID))
		}
	}

	slices.Sort(out)

	return out
}
