package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
	"github.com/cloudops-tools/cloudops/pkg/services/fanout"
)

// allUsersGroupURI is the well-known ACL grantee that marks a bucket as
// world-readable.
const allUsersGroupURI = "http://acs.amazonaws.com/groups/global/AllUsers"

// defaultBucketRegion is reported when the location lookup fails or returns
// an empty constraint (S3 encodes us-east-1 as the empty string).
const defaultBucketRegion = "us-east-1"

// Explorer aggregates S3 bucket inventory for one account.
type Explorer interface {
	// ListBuckets lists every bucket and enriches each with its region and
	// ACL-derived public flag. Enrichment failures degrade to defaults; they
	// never drop a bucket or abort the listing. Output preserves the
	// upstream listing order.
	ListBuckets(ctx context.Context) ([]domain.Bucket, error)
}

type explorer struct {
	client awsclients.S3API
	width  int
}

func NewExplorer(client awsclients.S3API) Explorer {
	return &explorer{client: client, width: fanout.DefaultWidth}
}

// lookupKind discriminates the two per-bucket sub-lookups so both can share
// one bounded fan-out pool.
type lookupKind int

const (
	lookupRegion lookupKind = iota
	lookupACL
)

type bucketLookup struct {
	bucket string
	kind   lookupKind
}

func (e *explorer) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	resp, err := e.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list S3 buckets: %w", err)
	}

	buckets := make([]domain.Bucket, len(resp.Buckets))
	lookups := make([]bucketLookup, 0, 2*len(resp.Buckets))
	for i, b := range resp.Buckets {
		buckets[i] = domain.Bucket{
			Name:      aws.ToString(b.Name),
			CreatedAt: b.CreationDate,
			Region:    defaultBucketRegion,
		}
		lookups = append(lookups,
			bucketLookup{bucket: buckets[i].Name, kind: lookupRegion},
			bucketLookup{bucket: buckets[i].Name, kind: lookupACL},
		)
	}

	type lookupResult struct {
		region string
		public bool
	}

	results := fanout.Map(ctx, e.width, lookups, func(ctx context.Context, l bucketLookup) (lookupResult, error) {
		switch l.kind {
		case lookupRegion:
			region, err := e.bucketRegion(ctx, l.bucket)
			return lookupResult{region: region}, err
		default:
			public, err := e.bucketIsPublic(ctx, l.bucket)
			return lookupResult{public: public}, err
		}
	})

	// Lookups were emitted in pairs, so results[2i] is bucket i's region and
	// results[2i+1] its ACL verdict. Failed slots keep their defaults.
	for i := range buckets {
		if r := results[2*i]; r.Err == nil {
			buckets[i].Region = r.Value.region
		}
		if r := results[2*i+1]; r.Err == nil {
			buckets[i].Public = r.Value.public
		}
	}

	return buckets, nil
}

func (e *explorer) bucketRegion(ctx context.Context, bucket string) (string, error) {
	loc, err := e.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", fmt.Errorf("get location for bucket %s: %w", bucket, err)
	}
	if loc.LocationConstraint == "" {
		return defaultBucketRegion, nil
	}
	return string(loc.LocationConstraint), nil
}

func (e *explorer) bucketIsPublic(ctx context.Context, bucket string) (bool, error) {
	acl, err := e.client.GetBucketAcl(ctx, &s3.GetBucketAclInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return false, fmt.Errorf("get ACL for bucket %s: %w", bucket, err)
	}
	for _, grant := range acl.Grants {
		if grant.Grantee != nil && aws.ToString(grant.Grantee.URI) == allUsersGroupURI {
			return true, nil
		}
	}
	return false, nil
}
