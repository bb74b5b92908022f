package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

// AzureController controls an Azure Virtual Machine Scale Set (VMSS).
//
// A scale set has no minimum or maximum size of its own, so the configured
// ones are reported instead.
type AzureController struct {
	// Clients.
	Compute  ifaces.AzureCompute
	KeyVault ifaces.AzureKeyVault

	// Configuration.
	AzureResourceGroupName string
	AzureVMSSName          string
	MinSize                int
	MaxSize                int

	// Telemetry.
	Tracer trace.Tracer
}

// azureComputeClient wraps the Azure Compute SDK clients to implement the
// AzureCompute interface.
type azureComputeClient struct {
	vmssClient   *armcompute.VirtualMachineScaleSetsClient
	vmssVMClient *armcompute.VirtualMachineScaleSetVMsClient
}

func (c *azureComputeClient) GetVMScaleSet(ctx context.Context, resourceGroupName string, vmScaleSetName string) (*armcompute.VirtualMachineScaleSet, error) {
	resp, err := c.vmssClient.Get(ctx, resourceGroupName, vmScaleSetName, nil)
	if err != nil {
		return nil, err
	}
	return &resp.VirtualMachineScaleSet, nil
}

func (c *azureComputeClient) ListVMScaleSetVMs(ctx context.Context, resourceGroupName string, vmScaleSetName string) ([]*armcompute.VirtualMachineScaleSetVM, error) {
	pager := c.vmssVMClient.NewListPager(resourceGroupName, vmScaleSetName, nil)
	var vms []*armcompute.VirtualMachineScaleSetVM

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		vms = append(vms, page.Value...)
	}

	return vms, nil
}

func (c *azureComputeClient) UpdateVMScaleSetCapacity(ctx context.Context, resourceGroupName string, vmScaleSetName string, capacity int64) error {
	poller, err := c.vmssClient.BeginUpdate(ctx, resourceGroupName, vmScaleSetName, armcompute.VirtualMachineScaleSetUpdate{
		SKU: &armcompute.SKU{Capacity: &capacity},
	}, nil)
	if err != nil {
		return err
	}

	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (c *azureComputeClient) DeleteVMScaleSetVM(ctx context.Context, resourceGroupName string, vmScaleSetName string, instanceID string) error {
	poller, err := c.vmssVMClient.BeginDelete(ctx, resourceGroupName, vmScaleSetName, instanceID, nil)
	if err != nil {
		return err
	}

	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

// azureKeyVaultClient wraps the Azure Key Vault SDK client to implement the
// AzureKeyVault interface.
type azureKeyVaultClient struct {
	client *azsecrets.Client
}

func (c *azureKeyVaultClient) GetSecret(ctx context.Context, secretName string) (azsecrets.GetSecretResponse, error) {
	return c.client.GetSecret(ctx, secretName, "", nil)
}

// AzureResource is a parsed Azure resource ID.
type AzureResource struct {
	SubscriptionID    string
	ResourceGroupName string
	Name              string
}

// ParseVMSSResourceID parses a resource ID of the form
// /subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Compute/virtualMachineScaleSets/{vmssName}
func ParseVMSSResourceID(resourceID string) (AzureResource, error) {
	resourceParts := strings.Split(resourceID, "/")
	if len(resourceParts) < 9 {
		return AzureResource{}, fmt.Errorf("could not parse Azure VMSS resource ID: invalid format")
	}

	var out AzureResource
	for i := 0; i+1 < len(resourceParts); i++ {
		switch resourceParts[i] {
		case "subscriptions":
			out.SubscriptionID = resourceParts[i+1]
		case "resourceGroups":
			out.ResourceGroupName = resourceParts[i+1]
		case "virtualMachineScaleSets":
			out.Name = resourceParts[i+1]
		}
	}

	if out.SubscriptionID == "" || out.ResourceGroupName == "" || out.Name == "" {
		return AzureResource{}, fmt.Errorf("could not parse Azure VMSS resource ID: missing required components")
	}

	return out, nil
}

// ParseKeyVaultSecret splits a secret reference into the vault URL and the
// secret name. Supported formats:
//
//  1. Full URL: https://{vault-name}.vault.azure.net/secrets/{secret-name}
//  2. Vault/secret: {vault-name}/{secret-name}
func ParseKeyVaultSecret(input string) (vaultURL, secretName string, err error) {
	switch {
	case strings.HasPrefix(input, "https://"):
		vaultURL, secretName, found := strings.Cut(input, "/secrets/")
		if !found || secretName == "" {
			return "", "", fmt.Errorf("invalid Key Vault URL format: %s (expected https://{vault}.vault.azure.net/secrets/{secret})", input)
		}
		return vaultURL, secretName, nil
	case strings.Contains(input, "/"):
		vault, secretName, _ := strings.Cut(input, "/")
		return fmt.Sprintf("https://%s.vault.azure.net", vault), secretName, nil
	}

	return "", "", fmt.Errorf("invalid Key Vault configuration: %s (expected format: {vault}/{secret} or https://{vault}.vault.azure.net/secrets/{secret})", input)
}

// NewAzureController creates a new Azure controller instance. The Key Vault
// client points at the vault holding the Spacelift API key.
func NewAzureController(cred azcore.TokenCredential, cfg *RuntimeConfig, tracer trace.Tracer) (*AzureController, error) {
	resource, err := ParseVMSSResourceID(cfg.AzureVMSSResourceID)
	if err != nil {
		return nil, err
	}

	vmssClient, err := armcompute.NewVirtualMachineScaleSetsClient(resource.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure VMSS client: %w", err)
	}

	vmssVMClient, err := armcompute.NewVirtualMachineScaleSetVMsClient(resource.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure VMSS VM client: %w", err)
	}

	vaultURL, _, err := ParseKeyVaultSecret(cfg.SpaceliftAPISecretName)
	if err != nil {
		return nil, err
	}

	kvClient, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure Key Vault client: %w", err)
	}

	return &AzureController{
		Compute: &azureComputeClient{
			vmssClient:   vmssClient,
			vmssVMClient: vmssVMClient,
		},
		KeyVault:               &azureKeyVaultClient{client: kvClient},
		AzureResourceGroupName: resource.ResourceGroupName,
		AzureVMSSName:          resource.Name,
		MinSize:                int(cfg.AutoscalingMinSize),
		MaxSize:                int(cfg.AutoscalingMaxSize),
		Tracer:                 tracer,
	}, nil
}

// GetSecret reads a secret from Key Vault. The reference is parsed like the
// one given to NewAzureController; only its secret name is used.
func (c *AzureController) GetSecret(ctx context.Context, reference string) (string, error) {
	ctx, span := c.Tracer.Start(ctx, "azure.keyvault.getsecret")
	defer span.End()

	_, secretName, err := ParseKeyVaultSecret(reference)
	if err != nil {
		return "", err
	}

	secret, err := c.KeyVault.GetSecret(ctx, secretName)
	if err != nil {
		return "", fmt.Errorf("could not get secret %s from Key Vault: %w", secretName, err)
	}

	if secret.Value == nil {
		return "", fmt.Errorf("could not find secret %s value in Key Vault", secretName)
	}

	return *secret.Value, nil
}

// GetAutoscalingGroup returns the scale set details.
func (c *AzureController) GetAutoscalingGroup(ctx context.Context) (*AutoScalingGroup, error) {
	ctx, span := c.Tracer.Start(ctx, "azure.vmss.get")
	defer span.End()

	vmss, err := c.Compute.GetVMScaleSet(ctx, c.AzureResourceGroupName, c.AzureVMSSName)
	if err != nil {
		return nil, fmt.Errorf("could not get Azure VMSS details: %w", err)
	}

	if vmss.Name == nil {
		return nil, fmt.Errorf("could not find Azure VMSS %s", c.AzureVMSSName)
	}

	if vmss.SKU == nil || vmss.SKU.Capacity == nil {
		return nil, errors.New("Azure VMSS capacity is not set")
	}

	vms, err := c.Compute.ListVMScaleSetVMs(ctx, c.AzureResourceGroupName, c.AzureVMSSName)
	if err != nil {
		return nil, fmt.Errorf("could not list Azure VMSS VM instances: %w", err)
	}

	out := &AutoScalingGroup{
		Name:            *vmss.Name,
		MinSize:         c.MinSize,
		MaxSize:         c.MaxSize,
		DesiredCapacity: int(*vmss.SKU.Capacity),
		Instances:       make([]Instance, 0, len(vms)),
	}

	for _, vm := range vms {
		if vm.InstanceID == nil {
			continue
		}

		instance := Instance{ID: *vm.InstanceID, LifecycleState: "Unknown"}

		if vm.Properties != nil && vm.Properties.ProvisioningState != nil {
			instance.LifecycleState = azureLifecycleState(*vm.Properties.ProvisioningState)
		}

		out.Instances = append(out.Instances, instance)
	}

	span.SetAttributes(
		attribute.Int("desired_capacity", out.DesiredCapacity),
		attribute.Int("instances", len(out.Instances)),
	)

	return out, nil
}

// Azure reports provisioning states (Succeeded, Creating, Deleting...)
// rather than lifecycle states.
func azureLifecycleState(provisioningState string) string {
	switch provisioningState {
	case "Succeeded":
		return LifecycleStateInService
	case "Deleting":
		return LifecycleStateTerminating
	}

	return provisioningState
}

func (c *AzureController) SetCapacity(ctx context.Context, capacity int) error {
	ctx, span := c.Tracer.Start(ctx, "azure.vmss.scale")
	defer span.End()

	span.SetAttributes(attribute.Int("desired_capacity", capacity))

	if err := c.Compute.UpdateVMScaleSetCapacity(ctx, c.AzureResourceGroupName, c.AzureVMSSName, int64(capacity)); err != nil {
		return fmt.Errorf("could not update Azure VMSS capacity: %w", err)
	}

	return nil
}

// KillInstance deletes a VM instance from the scale set, which lowers its
// capacity by one.
func (c *AzureController) KillInstance(ctx context.Context, instanceID string) error {
	ctx, span := c.Tracer.Start(ctx, "azure.vmss.deleteVM")
	defer span.End()

	span.SetAttributes(attribute.String("instance_id", instanceID))

	if err := c.Compute.DeleteVMScaleSetVM(ctx, c.AzureResourceGroupName, c.AzureVMSSName, instanceID); err != nil {
		return fmt.Errorf("could not delete Azure VMSS VM instance: %w", err)
	}

	return nil
}

func (c *AzureController) WorkerIdentity(worker *Worker) (GroupID, InstanceID, error) {
	return worker.InstanceIdentity(AWSMetadataKeys)
}
