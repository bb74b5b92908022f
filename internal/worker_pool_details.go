package internal

// WorkerPool is the part of a Spacelift worker pool the autoscaler reads.
// Drained workers are filtered out by Controller.GetWorkerPool.
type WorkerPool struct {
	PendingRuns int32    `graphql:"pendingRuns" json:"pendingRuns"`
	Workers     []Worker `graphql:"workers" json:"workers"`
}

// BusyWorkers returns how many workers are processing a run.
func (p *WorkerPool) BusyWorkers() int {
	var out int

	for _, worker := range p.Workers {
		if worker.Busy {
			out++
		}
	}

	return out
}

type WorkerPoolDetails struct {
	Pool *WorkerPool `graphql:"workerPool(id: $workerPool)"`
}

type WorkerDrainSet struct {
	Worker Worker `graphql:"workerDrainSet(workerPool: $workerPoolId, id: $workerId, drain: $drain)"`
}
