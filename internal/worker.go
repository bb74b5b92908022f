package internal

import (
	"encoding/json"
	"errors"
	"fmt"
)

type GroupID string
type InstanceID string

// MetadataKeys name the worker metadata entries that identify the group and
// the instance a worker runs on.
type MetadataKeys struct {
	Group    string
	Instance string
}

var (
	// AWSMetadataKeys are set by the Spacelift AWS worker pool modules. The
	// Azure modules reuse them.
	AWSMetadataKeys = MetadataKeys{Group: "asg_id", Instance: "instance_id"}

	GCPMetadataKeys = MetadataKeys{Group: "gcp_igm_self_link", Instance: "gcp_instance_self_link"}
)

type Worker struct {
	ID        string `graphql:"id" json:"id"`
	Busy      bool   `graphql:"busy" json:"busy"`
	CreatedAt int32  `graphql:"createdAt" json:"createdAt"`
	Drained   bool   `graphql:"drained" json:"drained"`
	Metadata  string `graphql:"metadata" json:"metadata"`
}

// InstanceIdentity reads the group and the instance the worker runs on from
// its metadata.
func (w *Worker) InstanceIdentity(keys MetadataKeys) (GroupID, InstanceID, error) {
	metadata, err := w.metadata()
	if err != nil {
		return "", "", err
	}

	groupID, groupErr := metadataValue(metadata, keys.Group)
	instanceID, instanceErr := metadataValue(metadata, keys.Instance)

	return GroupID(groupID), InstanceID(instanceID), errors.Join(groupErr, instanceErr)
}

func (w *Worker) metadata() (map[string]string, error) {
	out := make(map[string]string)

	if err := json.Unmarshal([]byte(w.Metadata), &out); err != nil {
		return nil, fmt.Errorf("invalid instance metadata: %w", err)
	}

	return out, nil
}

func metadataValue(metadata map[string]string, key string) (string, error) {
	value, exists := metadata[key]
	if !exists {
		return "", fmt.Errorf("metadata %s not present", key)
	}

	return value, nil
}
