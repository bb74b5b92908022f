package internal_test

import (
	"errors"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/metricscalr/internal"
	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

const (
	gcpProject     = "my-project"
	gcpZone        = "us-central1-a"
	gcpRegion      = "us-central1"
	gcpIGMName     = "my-mig"
	gcpIGMSelfLink = "projects/my-project/zones/us-central1-a/instanceGroupManagers/my-mig"
	gcpSecretName  = "projects/my-project/secrets/api-key/versions/latest"
)

func gcpInstancePath(name string) string {
	return "projects/" + gcpProject + "/zones/" + gcpZone + "/instances/" + name
}

func setupGCPController(t *testing.T, isRegional bool) (*internal.GCPController, *ifaces.MockGCPCompute, *ifaces.MockGCPSecrets) {
	mockCompute := ifaces.NewMockGCPCompute(t)
	mockSecrets := ifaces.NewMockGCPSecrets(t)

	location := gcpZone
	if isRegional {
		location = gcpRegion
	}

	controller := &internal.GCPController{
		Compute:     mockCompute,
		Secrets:     mockSecrets,
		Project:     gcpProject,
		Location:    location,
		IGMName:     gcpIGMName,
		IGMSelfLink: gcpIGMSelfLink,
		IsRegional:  isRegional,
		MinSize:     0,
		MaxSize:     10,
		Tracer:      newTracer(),
	}

	return controller, mockCompute, mockSecrets
}

// GetSecret tests

func TestGCPGetSecret_AccessFails_ReturnsError(t *testing.T) {
	sut, _, mockSecrets := setupGCPController(t, false)

	mockSecrets.On("AccessSecret", mock.Anything, gcpSecretName).Return(nil, errors.New("bacon"))

	_, err := sut.GetSecret(t.Context(), gcpSecretName)

	require.EqualError(t, err, "could not get secret "+gcpSecretName+" from Secret Manager: bacon")
}

func TestGCPGetSecret_EmptyPayload_ReturnsError(t *testing.T) {
	sut, _, mockSecrets := setupGCPController(t, false)

	mockSecrets.On("AccessSecret", mock.Anything, gcpSecretName).Return(nil, nil)

	_, err := sut.GetSecret(t.Context(), gcpSecretName)

	require.EqualError(t, err, "could not find secret "+gcpSecretName+" value in Secret Manager")
}

func TestGCPGetSecret_Success_ReturnsValue(t *testing.T) {
	sut, _, mockSecrets := setupGCPController(t, false)

	mockSecrets.On("AccessSecret", mock.Anything, gcpSecretName).Return([]byte("secret"), nil)

	secret, err := sut.GetSecret(t.Context(), gcpSecretName)

	require.NoError(t, err)
	require.Equal(t, "secret", secret)
}

// GetAutoscalingGroup tests

func TestGCPGetAutoscalingGroup_APICallFails_ReturnsError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("GetInstanceGroupManager", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return(nil, errors.New("bacon"))

	group, err := sut.GetAutoscalingGroup(t.Context())

	require.Nil(t, group)
	require.EqualError(t, err, "could not get GCP IGM details: bacon")
}

func TestGCPGetAutoscalingGroup_IGMHasNoName_ReturnsError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("GetInstanceGroupManager", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return(&computepb.InstanceGroupManager{}, nil)

	group, err := sut.GetAutoscalingGroup(t.Context())

	require.Nil(t, group)
	require.EqualError(t, err, "could not find GCP IGM my-mig")
}

func TestGCPGetAutoscalingGroup_NoTargetSize_ReturnsError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("GetInstanceGroupManager", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return(&computepb.InstanceGroupManager{Name: ptr(gcpIGMName)}, nil)

	group, err := sut.GetAutoscalingGroup(t.Context())

	require.Nil(t, group)
	require.EqualError(t, err, "GCP IGM target size is not set")
}

func TestGCPGetAutoscalingGroup_ListInstancesFails_ReturnsError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("GetInstanceGroupManager", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return(&computepb.InstanceGroupManager{Name: ptr(gcpIGMName), TargetSize: ptr(int32(3))}, nil)
	mockCompute.On("ListManagedInstances", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return(nil, errors.New("bacon"))

	group, err := sut.GetAutoscalingGroup(t.Context())

	require.Nil(t, group)
	require.EqualError(t, err, "could not list GCP IGM instances: bacon")
}

func TestGCPGetAutoscalingGroup_Success_ReturnsGroup(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("GetInstanceGroupManager", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return(&computepb.InstanceGroupManager{Name: ptr(gcpIGMName), TargetSize: ptr(int32(3))}, nil)
	mockCompute.On("ListManagedInstances", mock.Anything, gcpProject, gcpZone, gcpIGMName).
		Return([]*computepb.ManagedInstance{
			{
				Instance:      ptr("https://www.googleapis.com/compute/v1/" + gcpInstancePath("instance-1")),
				CurrentAction: ptr("NONE"),
			},
			{
				Instance:      ptr("https://compute.googleapis.com/compute/v1/" + gcpInstancePath("instance-2")),
				CurrentAction: ptr("DELETING"),
			},
			{Instance: ptr(gcpInstancePath("instance-3"))},
			{CurrentAction: ptr("NONE")},
		}, nil)

	group, err := sut.GetAutoscalingGroup(t.Context())

	require.NoError(t, err)
	require.Equal(t, &internal.AutoScalingGroup{
		Name:            gcpIGMSelfLink,
		MinSize:         0,
		MaxSize:         10,
		DesiredCapacity: 3,
		Instances: []internal.Instance{
			{ID: gcpInstancePath("instance-1"), LifecycleState: internal.LifecycleStateInService},
			{ID: gcpInstancePath("instance-2"), LifecycleState: internal.LifecycleStateTerminating},
			{ID: gcpInstancePath("instance-3"), LifecycleState: "Unknown"},
		},
	}, group)
}

func TestGCPGetAutoscalingGroup_Regional_UsesRegion(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, true)

	mockCompute.On("GetInstanceGroupManager", mock.Anything, gcpProject, gcpRegion, gcpIGMName).
		Return(&computepb.InstanceGroupManager{Name: ptr(gcpIGMName), TargetSize: ptr(int32(0))}, nil)
	mockCompute.On("ListManagedInstances", mock.Anything, gcpProject, gcpRegion, gcpIGMName).
		Return([]*computepb.ManagedInstance{}, nil)

	group, err := sut.GetAutoscalingGroup(t.Context())

	require.NoError(t, err)
	require.Zero(t, group.DesiredCapacity)
	require.Empty(t, group.Instances)
}

// KillInstance tests

func TestGCPKillInstance_DeleteFails_ReturnsError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("DeleteInstance", mock.Anything, gcpProject, gcpZone, gcpIGMName, gcpInstancePath("instance-1")).
		Return(errors.New("bacon"))

	err := sut.KillInstance(t.Context(), gcpInstancePath("instance-1"))

	require.EqualError(t, err, "could not delete GCP IGM instance: bacon")
}

func TestGCPKillInstance_Success_NoError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("DeleteInstance", mock.Anything, gcpProject, gcpZone, gcpIGMName, gcpInstancePath("instance-1")).
		Return(nil)

	err := sut.KillInstance(t.Context(), gcpInstancePath("instance-1"))

	require.NoError(t, err)
}

// SetCapacity tests

func TestGCPSetCapacity_ResizeFails_ReturnsError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, false)

	mockCompute.On("ResizeIGM", mock.Anything, gcpProject, gcpZone, gcpIGMName, int64(5)).
		Return(errors.New("bacon"))

	err := sut.SetCapacity(t.Context(), 5)

	require.EqualError(t, err, "could not resize GCP IGM: bacon")
}

func TestGCPSetCapacity_Regional_Success_NoError(t *testing.T) {
	sut, mockCompute, _ := setupGCPController(t, true)

	mockCompute.On("ResizeIGM", mock.Anything, gcpProject, gcpRegion, gcpIGMName, int64(5)).
		Return(nil)

	err := sut.SetCapacity(t.Context(), 5)

	require.NoError(t, err)
}

// WorkerIdentity tests

func TestGCPWorkerIdentity_ReadsGCPMetadata(t *testing.T) {
	sut, _, _ := setupGCPController(t, false)

	worker := &internal.Worker{
		ID:       "1",
		Metadata: `{"gcp_igm_self_link": "` + gcpIGMSelfLink + `", "gcp_instance_self_link": "` + gcpInstancePath("instance-1") + `"}`,
	}

	groupID, instanceID, err := sut.WorkerIdentity(worker)

	require.NoError(t, err)
	require.Equal(t, internal.GroupID(gcpIGMSelfLink), groupID)
	require.Equal(t, internal.InstanceID(gcpInstancePath("instance-1")), instanceID)
}

// Close tests

func TestGCPClose_JoinsClientErrors(t *testing.T) {
	sut, mockCompute, mockSecrets := setupGCPController(t, false)

	mockCompute.On("Close").Return(errors.New("compute"))
	mockSecrets.On("Close").Return(errors.New("secrets"))

	err := sut.Close()

	require.EqualError(t, err, "compute\nsecrets")
}

func TestGCPClose_NoClients_NoError(t *testing.T) {
	require.NoError(t, (&internal.GCPController{}).Close())
}
