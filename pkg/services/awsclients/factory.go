package awsclients

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
)

// BillingRegion is where Cost Explorer and Budgets must be called; both are
// global services reachable only through us-east-1.
const BillingRegion = "us-east-1"

// Factory creates a ClientSet from a resolved credential binding. Swap this
// in tests to inject mock clients.
type Factory func(binding domain.AccountBinding) *ClientSet

// Config builds an aws.Config carrying the binding's static credentials.
// No I/O happens here; credential problems surface on first use.
func Config(binding domain.AccountBinding) aws.Config {
	return aws.Config{
		Region: binding.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			binding.AccessKeyID,
			binding.SecretAccessKey,
			"",
		),
	}
}

// NewClientSet is the production Factory. It is pure and safe to call
// concurrently from multiple aggregators within one request.
func NewClientSet(binding domain.AccountBinding) *ClientSet {
	cfg := Config(binding)

	billingCfg := cfg
	billingCfg.Region = BillingRegion

	return &ClientSet{
		EC2:          ec2.NewFromConfig(cfg),
		S3:           s3.NewFromConfig(cfg),
		CloudWatch:   cloudwatch.NewFromConfig(cfg),
		CostExplorer: costexplorer.NewFromConfig(billingCfg),
		Budgets:      budgets.NewFromConfig(billingCfg),
		STS:          sts.NewFromConfig(cfg),
	}
}
