package security

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
	"github.com/cloudops-tools/cloudops/pkg/services/fanout"
)

// Finding kinds emitted by the posture battery.
const (
	KindBucketPublicAccess = "S3_PUBLIC_ACCESS"
	KindBucketCheckFailed  = "S3_CHECK_FAILED"
	KindGroupOpenToWorld   = "SG_OPEN_TO_WORLD"
)

// Deductions per finding. They accumulate without a per-check cap; the final
// score is floor-clamped at zero.
const (
	deductPublicBucket = 15
	deductCheckFailed  = 5
	deductCriticalPort = 25
	deductOpenPort     = 10
	maxScore           = 100
	anywhereCIDRv4     = "0.0.0.0/0"
	anywhereCIDRv6     = "::/0"
)

// Engine runs the fixed security check battery and reduces its findings into
// a bounded score. Each check is fault-isolated: total unavailability of one
// check contributes zero findings and zero deductions instead of aborting
// the evaluation.
type Engine interface {
	Evaluate(ctx context.Context) (domain.PostureResult, error)
}

type engine struct {
	s3Client  awsclients.S3API
	ec2Client awsclients.EC2API
	width     int
}

func NewEngine(s3Client awsclients.S3API, ec2Client awsclients.EC2API) Engine {
	return &engine{s3Client: s3Client, ec2Client: ec2Client, width: fanout.DefaultWidth}
}

// checkOutcome pairs a finding with its score deduction.
type checkOutcome struct {
	finding   domain.Finding
	deduction int
}

func (e *engine) Evaluate(ctx context.Context) (domain.PostureResult, error) {
	var bucketOutcomes, groupOutcomes []checkOutcome

	// The two checks are independent; run them concurrently. Neither
	// returns an error: an unavailable check simply contributes nothing.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bucketOutcomes = e.checkBucketAccessBlocks(gctx)
		return nil
	})
	g.Go(func() error {
		groupOutcomes = e.checkSecurityGroups(gctx)
		return nil
	})
	_ = g.Wait()

	return reduce(append(bucketOutcomes, groupOutcomes...)), nil
}

// checkBucketAccessBlocks verifies that every bucket has all four
// public-access-block flags set. An unreadable block configuration is itself
// a LOW finding, never a hard error.
func (e *engine) checkBucketAccessBlocks(ctx context.Context) []checkOutcome {
	resp, err := e.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		names = append(names, aws.ToString(b.Name))
	}

	results := fanout.Map(ctx, e.width, names, func(ctx context.Context, name string) (bool, error) {
		out, err := e.s3Client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			return false, err
		}
		cfg := out.PublicAccessBlockConfiguration
		allBlocked := cfg != nil &&
			aws.ToBool(cfg.BlockPublicAcls) &&
			aws.ToBool(cfg.BlockPublicPolicy) &&
			aws.ToBool(cfg.IgnorePublicAcls) &&
			aws.ToBool(cfg.RestrictPublicBuckets)
		return allBlocked, nil
	})

	var outcomes []checkOutcome
	for i, r := range results {
		name := names[i]
		switch {
		case r.Err != nil:
			outcomes = append(outcomes, checkOutcome{
				finding: domain.Finding{
					Kind:     KindBucketCheckFailed,
					Severity: domain.SeverityLow,
					Resource: name,
					Message:  fmt.Sprintf("Could not verify public access settings for bucket %q", name),
				},
				deduction: deductCheckFailed,
			})
		case !r.Value:
			outcomes = append(outcomes, checkOutcome{
				finding: domain.Finding{
					Kind:     KindBucketPublicAccess,
					Severity: domain.SeverityHigh,
					Resource: name,
					Message:  fmt.Sprintf("S3 bucket %q may have public access enabled", name),
				},
				deduction: deductPublicBucket,
			})
		}
	}
	return outcomes
}

// checkSecurityGroups flags ingress rules open to the world on ports other
// than 80 and 443. A rule with no explicit port covers all ports and is
// flagged as well.
func (e *engine) checkSecurityGroups(ctx context.Context) []checkOutcome {
	resp, err := e.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{})
	if err != nil {
		return nil
	}

	var outcomes []checkOutcome
	for _, sg := range resp.SecurityGroups {
		groupName := aws.ToString(sg.GroupName)
		groupRef := fmt.Sprintf("%s (%s)", groupName, aws.ToString(sg.GroupId))

		for _, rule := range sg.IpPermissions {
			openV4 := false
			for _, r := range rule.IpRanges {
				if aws.ToString(r.CidrIp) == anywhereCIDRv4 {
					openV4 = true
					break
				}
			}
			openV6 := false
			for _, r := range rule.Ipv6Ranges {
				if aws.ToString(r.CidrIpv6) == anywhereCIDRv6 {
					openV6 = true
					break
				}
			}
			if !openV4 && !openV6 {
				continue
			}

			port := int(aws.ToInt32(rule.FromPort))
			if port == 80 || port == 443 {
				continue
			}

			portLabel := fmt.Sprintf("%d", port)
			if rule.FromPort == nil {
				portLabel = "ALL"
			}

			severity := domain.SeverityMedium
			deduction := deductOpenPort
			if port == 22 || port == 3389 {
				severity = domain.SeverityCritical
				deduction = deductCriticalPort
			}

			outcomes = append(outcomes, checkOutcome{
				finding: domain.Finding{
					Kind:     KindGroupOpenToWorld,
					Severity: severity,
					Resource: groupRef,
					Message:  fmt.Sprintf("Security group %q allows port %s from %s", groupName, portLabel, anywhereCIDRv4),
				},
				deduction: deduction,
			})
		}
	}
	return outcomes
}

// reduce folds outcomes into the final result: score starts at maxScore,
// every deduction applies, and the total clamps to a floor of zero.
func reduce(outcomes []checkOutcome) domain.PostureResult {
	result := domain.PostureResult{
		Score:    maxScore,
		Findings: make([]domain.Finding, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		result.Score -= o.deduction
		result.Findings = append(result.Findings, o.finding)

		switch o.finding.Severity {
		case domain.SeverityCritical:
			result.Critical++
		case domain.SeverityHigh:
			result.High++
		case domain.SeverityMedium:
			result.Medium++
		case domain.SeverityLow:
			result.Low++
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}
	result.Posture = domain.PostureBand(result.Score)

	return result
}
