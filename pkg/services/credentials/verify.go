package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
)

// Verifier checks a key pair against STS GetCallerIdentity and produces the
// binding that may then be stored. Inject newSTS in tests.
type Verifier struct {
	newSTS func(cfg aws.Config) awsclients.STSAPI
}

func NewVerifier() *Verifier {
	return &Verifier{
		newSTS: func(cfg aws.Config) awsclients.STSAPI {
			return sts.NewFromConfig(cfg)
		},
	}
}

func NewVerifierWithSTS(newSTS func(cfg aws.Config) awsclients.STSAPI) *Verifier {
	return &Verifier{newSTS: newSTS}
}

// Verify resolves the caller identity for the supplied key pair. A rejected
// key or signature maps to ErrInvalidCredentials; other failures are wrapped
// as-is so the caller can surface them as upstream errors.
func (v *Verifier) Verify(ctx context.Context, accessKeyID, secretAccessKey, region string) (domain.AccountBinding, error) {
	cfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		),
	)
	if err != nil {
		return domain.AccountBinding{}, fmt.Errorf("load AWS SDK config: %w", err)
	}

	identity, err := v.newSTS(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		if isCredentialRejection(err) {
			return domain.AccountBinding{}, ErrInvalidCredentials
		}
		return domain.AccountBinding{}, fmt.Errorf("verify caller identity: %w", err)
	}

	return domain.AccountBinding{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		Region:          region,
		AccountID:       aws.ToString(identity.Account),
		ARN:             aws.ToString(identity.Arn),
		CallerUserID:    aws.ToString(identity.UserId),
	}, nil
}

func isCredentialRejection(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "InvalidClientTokenId", "SignatureDoesNotMatch", "UnrecognizedClientException":
		return true
	}
	return false
}
