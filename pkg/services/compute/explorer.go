package compute

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
)

// Explorer aggregates EC2 instance state for one account. Results are
// recomputed per call; nothing is cached across requests.
type Explorer interface {
	ListInstances(ctx context.Context) ([]domain.Instance, error)
	Summarize(ctx context.Context) (domain.InstanceSummary, error)
}

type explorer struct {
	client awsclients.EC2API
}

func NewExplorer(client awsclients.EC2API) Explorer {
	return &explorer{client: client}
}

func (e *explorer) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	resp, err := e.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe EC2 instances: %w", err)
	}

	instances := make([]domain.Instance, 0)
	for _, reservation := range resp.Reservations {
		for _, inst := range reservation.Instances {
			name := "Unnamed"
			for _, tag := range inst.Tags {
				if aws.ToString(tag.Key) == "Name" {
					name = aws.ToString(tag.Value)
					break
				}
			}

			platform := string(inst.Platform)
			if platform == "" {
				platform = "linux"
			}

			var az string
			if inst.Placement != nil {
				az = aws.ToString(inst.Placement.AvailabilityZone)
			}

			var state string
			if inst.State != nil {
				state = string(inst.State.Name)
			}

			instances = append(instances, domain.Instance{
				ID:               aws.ToString(inst.InstanceId),
				Name:             name,
				State:            state,
				Type:             string(inst.InstanceType),
				PublicIP:         inst.PublicIpAddress,
				PrivateIP:        inst.PrivateIpAddress,
				AvailabilityZone: az,
				LaunchTime:       inst.LaunchTime,
				Platform:         platform,
			})
		}
	}

	return instances, nil
}

func (e *explorer) Summarize(ctx context.Context) (domain.InstanceSummary, error) {
	resp, err := e.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return domain.InstanceSummary{}, fmt.Errorf("describe EC2 instances: %w", err)
	}

	var summary domain.InstanceSummary
	for _, reservation := range resp.Reservations {
		for _, inst := range reservation.Instances {
			summary.Total++
			if inst.State == nil {
				continue
			}
			switch inst.State.Name {
			case "running":
				summary.Running++
			case "stopped":
				summary.Stopped++
			}
		}
	}
	summary.Other = summary.Total - summary.Running - summary.Stopped

	return summary, nil
}
