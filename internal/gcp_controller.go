package internal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/iterator"

	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

// gcpIGMSelfLinkRegex matches GCP IGM self-links in both zonal and regional formats.
// Formats:
//
//	Zonal: projects/{project}/zones/{zone}/instanceGroupManagers/{name}
//	Regional: projects/{project}/regions/{region}/instanceGroupManagers/{name}
var gcpIGMSelfLinkRegex = regexp.MustCompile(`^projects/([^/]+)/(zones|regions)/([^/]+)/instanceGroupManagers/([^/]+)$`)

// gcpInstanceURLPrefixes are stripped from the instance URLs returned by the
// GCP API, so that instances are identified by resource path.
var gcpInstanceURLPrefixes = []string{
	"https://www.googleapis.com/compute/v1/",
	"https://compute.googleapis.com/compute/v1/",
}

// GCPController controls a GCP managed instance group (IGM), zonal or
// regional. Like a scale set, an IGM without an autoscaler has no size
// limits of its own, so the configured ones are reported.
type GCPController struct {
	// Clients.
	Compute ifaces.GCPCompute
	Secrets ifaces.GCPSecrets

	// Configuration.
	Project     string
	Location    string // Zone for zonal IGMs, region for regional IGMs
	IGMName     string
	IGMSelfLink string
	IsRegional  bool
	MinSize     int
	MaxSize     int

	// Telemetry.
	Tracer trace.Tracer
}

// igmID holds parsed components of an IGM self-link.
type igmID struct {
	Project    string
	Location   string
	Name       string
	IsRegional bool
}

type gcpZonalComputeClient struct {
	igmClient *compute.InstanceGroupManagersClient
}

type gcpRegionalComputeClient struct {
	igmClient *compute.RegionInstanceGroupManagersClient
}

type gcpSecretsClient struct {
	client *secretmanager.Client
}

// NewGCPController creates a new GCP controller instance. Close must be
// called to release its clients.
func NewGCPController(ctx context.Context, cfg *RuntimeConfig, tracer trace.Tracer) (*GCPController, error) {
	parsedIGM, err := parseGCPIGMSelfLink(cfg.GCPIGMSelfLink)
	if err != nil {
		return nil, fmt.Errorf("could not parse GCP IGM self-link: %w", err)
	}

	if cfg.AutoscalingMaxSize < cfg.AutoscalingMinSize {
		return nil, fmt.Errorf("AUTOSCALING_MAX_SIZE (%d) must be greater than or equal to AUTOSCALING_MIN_SIZE (%d)",
			cfg.AutoscalingMaxSize, cfg.AutoscalingMinSize)
	}

	ctrl := &GCPController{
		Project:     parsedIGM.Project,
		Location:    parsedIGM.Location,
		IGMName:     parsedIGM.Name,
		IGMSelfLink: cfg.GCPIGMSelfLink,
		IsRegional:  parsedIGM.IsRegional,
		MinSize:     int(cfg.AutoscalingMinSize),
		MaxSize:     int(cfg.AutoscalingMaxSize),
		Tracer:      tracer,
	}

	smClient, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create GCP Secret Manager client: %w", err)
	}
	ctrl.Secrets = &gcpSecretsClient{client: smClient}

	if parsedIGM.IsRegional {
		regionIGMClient, err := compute.NewRegionInstanceGroupManagersRESTClient(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("could not create GCP Regional Instance Group Managers client: %w", err), ctrl.Close())
		}
		ctrl.Compute = &gcpRegionalComputeClient{igmClient: regionIGMClient}
	} else {
		zonalIGMClient, err := compute.NewInstanceGroupManagersRESTClient(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("could not create GCP Instance Group Managers client: %w", err), ctrl.Close())
		}
		ctrl.Compute = &gcpZonalComputeClient{igmClient: zonalIGMClient}
	}

	return ctrl, nil
}

// GetSecret reads a secret version from Secret Manager, given its full
// resource name.
func (c *GCPController) GetSecret(ctx context.Context, name string) (string, error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.secretmanager.getsecret")
	defer span.End()

	payload, err := c.Secrets.AccessSecret(ctx, name)
	if err != nil {
		return "", fmt.Errorf("could not get secret %s from Secret Manager: %w", name, err)
	}

	if len(payload) == 0 {
		return "", fmt.Errorf("could not find secret %s value in Secret Manager", name)
	}

	return string(payload), nil
}

// GetAutoscalingGroup returns the IGM details. The group is named after the
// IGM self-link, which is what workers report in their metadata.
func (c *GCPController) GetAutoscalingGroup(ctx context.Context) (*AutoScalingGroup, error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.igm.get")
	defer span.End()

	igm, err := c.Compute.GetInstanceGroupManager(ctx, c.Project, c.Location, c.IGMName)
	if err != nil {
		return nil, fmt.Errorf("could not get GCP IGM details: %w", err)
	}

	if igm.Name == nil {
		return nil, fmt.Errorf("could not find GCP IGM %s", c.IGMName)
	}

	if igm.TargetSize == nil {
		return nil, errors.New("GCP IGM target size is not set")
	}

	managedInstances, err := c.Compute.ListManagedInstances(ctx, c.Project, c.Location, c.IGMName)
	if err != nil {
		return nil, fmt.Errorf("could not list GCP IGM instances: %w", err)
	}

	out := &AutoScalingGroup{
		Name:            c.IGMSelfLink,
		MinSize:         c.MinSize,
		MaxSize:         c.MaxSize,
		DesiredCapacity: int(*igm.TargetSize),
		Instances:       make([]Instance, 0, len(managedInstances)),
	}

	for _, mi := range managedInstances {
		if mi.Instance == nil {
			continue
		}

		currentAction := "Unknown"
		if mi.CurrentAction != nil {
			currentAction = *mi.CurrentAction
		}

		instance := Instance{
			ID:             stripGCPInstanceURLPrefix(*mi.Instance),
			LifecycleState: mapGCPCurrentActionToLifecycleState(currentAction),
		}

		out.Instances = append(out.Instances, instance)
	}

	span.SetAttributes(
		attribute.Int("desired_capacity", out.DesiredCapacity),
		attribute.Int("instances", len(out.Instances)),
	)

	return out, nil
}

func (c *GCPController) SetCapacity(ctx context.Context, capacity int) error {
	ctx, span := c.Tracer.Start(ctx, "gcp.igm.resize")
	defer span.End()

	span.SetAttributes(attribute.Int("desired_capacity", capacity))

	if err := c.Compute.ResizeIGM(ctx, c.Project, c.Location, c.IGMName, int64(capacity)); err != nil {
		return fmt.Errorf("could not resize GCP IGM: %w", err)
	}

	return nil
}

// KillInstance deletes an instance from the IGM, which lowers its target
// size by one.
func (c *GCPController) KillInstance(ctx context.Context, instanceID string) error {
	ctx, span := c.Tracer.Start(ctx, "gcp.igm.deleteInstance")
	defer span.End()

	span.SetAttributes(attribute.String("instance_id", instanceID))

	if err := c.Compute.DeleteInstance(ctx, c.Project, c.Location, c.IGMName, instanceID); err != nil {
		return fmt.Errorf("could not delete GCP IGM instance: %w", err)
	}

	return nil
}

func (c *GCPController) WorkerIdentity(worker *Worker) (GroupID, InstanceID, error) {
	return worker.InstanceIdentity(GCPMetadataKeys)
}

// Close releases all client resources associated with the GCPController.
func (c *GCPController) Close() error {
	var computeErr, secretsErr error
	if c.Compute != nil {
		computeErr = c.Compute.Close()
	}
	if c.Secrets != nil {
		secretsErr = c.Secrets.Close()
	}
	return errors.Join(computeErr, secretsErr)
}

func (c *gcpSecretsClient) AccessSecret(ctx context.Context, name string) ([]byte, error) {
	secret, err := c.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, err
	}

	if secret.Payload == nil {
		return nil, nil
	}

	return secret.Payload.Data, nil
}

func (c *gcpSecretsClient) Close() error {
	return c.client.Close()
}

func (c *gcpZonalComputeClient) GetInstanceGroupManager(ctx context.Context, project, zone, name string) (*computepb.InstanceGroupManager, error) {
	return c.igmClient.Get(ctx, &computepb.GetInstanceGroupManagerRequest{
		Project:              project,
		Zone:                 zone,
		InstanceGroupManager: name,
	})
}

func (c *gcpZonalComputeClient) ListManagedInstances(ctx context.Context, project, zone, name string) ([]*computepb.ManagedInstance, error) {
	it := c.igmClient.ListManagedInstances(ctx, &computepb.ListManagedInstancesInstanceGroupManagersRequest{
		Project:              project,
		Zone:                 zone,
		InstanceGroupManager: name,
	})

	return collectManagedInstances(it.Next)
}

func (c *gcpZonalComputeClient) DeleteInstance(ctx context.Context, project, zone, igmName, instanceURL string) error {
	op, err := c.igmClient.DeleteInstances(ctx, &computepb.DeleteInstancesInstanceGroupManagerRequest{
		Project:              project,
		Zone:                 zone,
		InstanceGroupManager: igmName,
		InstanceGroupManagersDeleteInstancesRequestResource: &computepb.InstanceGroupManagersDeleteInstancesRequest{
			Instances: []string{instanceURL},
		},
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (c *gcpZonalComputeClient) ResizeIGM(ctx context.Context, project, zone, name string, newSize int64) error {
	op, err := c.igmClient.Resize(ctx, &computepb.ResizeInstanceGroupManagerRequest{
		Project:              project,
		Zone:                 zone,
		InstanceGroupManager: name,
		Size:                 int32(newSize),
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (c *gcpZonalComputeClient) Close() error {
	return c.igmClient.Close()
}

func (c *gcpRegionalComputeClient) GetInstanceGroupManager(ctx context.Context, project, region, name string) (*computepb.InstanceGroupManager, error) {
	return c.igmClient.Get(ctx, &computepb.GetRegionInstanceGroupManagerRequest{
		Project:              project,
		Region:               region,
		InstanceGroupManager: name,
	})
}

func (c *gcpRegionalComputeClient) ListManagedInstances(ctx context.Context, project, region, name string) ([]*computepb.ManagedInstance, error) {
	it := c.igmClient.ListManagedInstances(ctx, &computepb.ListManagedInstancesRegionInstanceGroupManagersRequest{
		Project:              project,
		Region:               region,
		InstanceGroupManager: name,
	})

	return collectManagedInstances(it.Next)
}

func (c *gcpRegionalComputeClient) DeleteInstance(ctx context.Context, project, region, igmName, instanceURL string) error {
	op, err := c.igmClient.DeleteInstances(ctx, &computepb.DeleteInstancesRegionInstanceGroupManagerRequest{
		Project:              project,
		Region:               region,
		InstanceGroupManager: igmName,
		RegionInstanceGroupManagersDeleteInstancesRequestResource: &computepb.RegionInstanceGroupManagersDeleteInstancesRequest{
			Instances: []string{instanceURL},
		},
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (c *gcpRegionalComputeClient) ResizeIGM(ctx context.Context, project, region, name string, newSize int64) error {
	op, err := c.igmClient.Resize(ctx, &computepb.ResizeRegionInstanceGroupManagerRequest{
		Project:              project,
		Region:               region,
		InstanceGroupManager: name,
		Size:                 int32(newSize),
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (c *gcpRegionalComputeClient) Close() error {
	return c.igmClient.Close()
}

func collectManagedInstances(next func() (*computepb.ManagedInstance, error)) ([]*computepb.ManagedInstance, error) {
	var instances []*computepb.ManagedInstance

	for {
		instance, err := next()
		if errors.Is(err, iterator.Done) {
			return instances, nil
		}
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}
}

// parseGCPIGMSelfLink parses a GCP Instance Group Manager self-link, zonal
// or regional.
func parseGCPIGMSelfLink(selfLink string) (*igmID, error) {
	if selfLink == "" {
		return nil, errors.New("IGM self-link cannot be empty")
	}

	matches := gcpIGMSelfLinkRegex.FindStringSubmatch(selfLink)
	if matches == nil {
		return nil, fmt.Errorf("invalid IGM self-link format: %q does not match expected pattern "+
			"projects/{project}/zones/{zone}/instanceGroupManagers/{name} or "+
			"projects/{project}/regions/{region}/instanceGroupManagers/{name}", selfLink)
	}

	return &igmID{
		Project:    matches[1],
		Location:   matches[3],
		Name:       matches[4],
		IsRegional: matches[2] == "regions",
	}, nil
}

// stripGCPInstanceURLPrefix strips the URL prefix from a GCP instance URL,
// returning only the resource path.
func stripGCPInstanceURLPrefix(instanceURL string) string {
	for _, prefix := range gcpInstanceURLPrefixes {
		if strings.HasPrefix(instanceURL, prefix) {
			return strings.TrimPrefix(instanceURL, prefix)
		}
	}
	return instanceURL
}

// mapGCPCurrentActionToLifecycleState maps the currentAction of a managed
// instance to a lifecycle state. An instance is available when its
// currentAction is NONE; transitional actions (CREATING, RECREATING,
// RESTARTING...) are kept as they are.
// See: https://cloud.google.com/compute/docs/reference/rest/v1/instanceGroupManagers/listManagedInstances
func mapGCPCurrentActionToLifecycleState(currentAction string) string {
	switch currentAction {
	case "NONE":
		return LifecycleStateInService
	case "DELETING":
		return LifecycleStateTerminating
	default:
		return currentAction
	}
}
