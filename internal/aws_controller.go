package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/metricscalr/internal/ifaces"
)

// AWSController controls an EC2 autoscaling group.
type AWSController struct {
	// Clients.
	Autoscaling ifaces.Autoscaling
	EC2         ifaces.EC2
	SSM         ifaces.SSM

	// Configuration.
	AWSAutoscalingGroupName string

	// Telemetry.
	Tracer trace.Tracer
}

// LoadAWSConfig loads the default AWS configuration with tracing middleware.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("could not load AWS configuration: %w", err)
	}

	otelaws.AppendMiddlewares(&awsConfig.APIOptions)

	return awsConfig, nil
}

// NewAWSController creates a new AWS controller instance.
func NewAWSController(awsConfig aws.Config, cfg *RuntimeConfig, tracer trace.Tracer) (*AWSController, error) {
	arnParts := strings.Split(cfg.AutoscalingGroupARN, "/")
	if len(arnParts) != 2 {
		return nil, fmt.Errorf("could not parse autoscaling group ARN")
	}

	return &AWSController{
		Autoscaling:             autoscaling.NewFromConfig(awsConfig),
		EC2:                     ec2.NewFromConfig(awsConfig),
		SSM:                     ssm.NewFromConfig(awsConfig),
		AWSAutoscalingGroupName: arnParts[1],
		Tracer:                  tracer,
	}, nil
}

// GetSecret reads a secure string parameter from SSM.
func (c *AWSController) GetSecret(ctx context.Context, name string) (string, error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ssm.getsecret")
	defer span.End()

	output, err := c.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})

	switch {
	case err != nil:
		return "", fmt.Errorf("could not get secret %s from SSM: %w", name, err)
	case output.Parameter == nil:
		return "", fmt.Errorf("could not find secret %s in SSM", name)
	case output.Parameter.Value == nil:
		return "", fmt.Errorf("could not find secret %s value in SSM", name)
	}

	return *output.Parameter.Value, nil
}

// GetAutoscalingGroup returns the autoscaling group details from AWS.
//
// It makes sure that the autoscaling group exists and that there is only
// one autoscaling group with the given name.
func (c *AWSController) GetAutoscalingGroup(ctx context.Context) (*AutoScalingGroup, error) {
	ctx, span := c.Tracer.Start(ctx, "aws.asg.get")
	defer span.End()

	output, err := c.Autoscaling.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{c.AWSAutoscalingGroupName},
	})
	if err != nil {
		return nil, fmt.Errorf("could not get autoscaling group details: %w", err)
	}

	if len(output.AutoScalingGroups) == 0 {
		return nil, fmt.Errorf("could not find autoscaling group %s", c.AWSAutoscalingGroupName)
	} else if len(output.AutoScalingGroups) > 1 {
		return nil, fmt.Errorf("found more than one autoscaling group with name %s", c.AWSAutoscalingGroupName)
	}

	asg := output.AutoScalingGroups[0]

	if asg.DesiredCapacity == nil {
		return nil, errors.New("autoscaling group desired capacity is not set")
	}

	out := &AutoScalingGroup{
		Name:            aws.ToString(asg.AutoScalingGroupName),
		MinSize:         int(aws.ToInt32(asg.MinSize)),
		MaxSize:         -1,
		DesiredCapacity: int(*asg.DesiredCapacity),
		Instances:       make([]Instance, 0, len(asg.Instances)),
	}

	if asg.MaxSize != nil {
		out.MaxSize = int(*asg.MaxSize)
	}

	for _, instance := range asg.Instances {
		out.Instances = append(out.Instances, Instance{
			ID:             aws.ToString(instance.InstanceId),
			LifecycleState: awsLifecycleState(string(instance.LifecycleState)),
		})
	}

	span.SetAttributes(
		attribute.Int("desired_capacity", out.DesiredCapacity),
		attribute.Int("instances", len(out.Instances)),
	)

	return out, nil
}

func awsLifecycleState(state string) string {
	switch {
	case state == "InService":
		return LifecycleStateInService
	case strings.HasPrefix(state, "Terminating"):
		return LifecycleStateTerminating
	}

	return state
}

func (c *AWSController) SetCapacity(ctx context.Context, capacity int) error {
	ctx, span := c.Tracer.Start(ctx, "aws.asg.setcapacity")
	defer span.End()

	span.SetAttributes(attribute.Int("desired_capacity", capacity))

	_, err := c.Autoscaling.SetDesiredCapacity(ctx, &autoscaling.SetDesiredCapacityInput{
		AutoScalingGroupName: aws.String(c.AWSAutoscalingGroupName),
		DesiredCapacity:      aws.Int32(int32(capacity)),
	})
	if err != nil {
		return fmt.Errorf("could not set desired capacity: %w", err)
	}

	return nil
}

func (c *AWSController) KillInstance(ctx context.Context, instanceID string) error {
	ctx, span := c.Tracer.Start(ctx, "aws.killinstance")
	defer span.End()

	span.SetAttributes(attribute.String("instance_id", instanceID))

	_, err := c.Autoscaling.DetachInstances(ctx, &autoscaling.DetachInstancesInput{
		AutoScalingGroupName:           aws.String(c.AWSAutoscalingGroupName),
		InstanceIds:                    []string{instanceID},
		ShouldDecrementDesiredCapacity: aws.Bool(true),
	})
	if err != nil && !strings.Contains(err.Error(), "is not part of Auto Scaling group") {
		return fmt.Errorf("could not detach instance from autoscaling group: %w", err)
	}

	if _, err := c.EC2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
	}); err != nil {
		return fmt.Errorf("could not terminate detached instance: %w", err)
	}

	return nil
}

func (c *AWSController) WorkerIdentity(worker *Worker) (GroupID, InstanceID, error) {
	return worker.InstanceIdentity(AWSMetadataKeys)
}
