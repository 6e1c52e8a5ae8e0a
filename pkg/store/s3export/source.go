// Package s3export reads a board export stored as a JSON object in S3.
package s3export

import (
	"context"
	"fmt"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/store/monday"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const SourceName = "s3"

// ObjectGetter is the subset of the S3 API the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Source struct {
	client ObjectGetter
	bucket string
	key    string
}

// New loads the default AWS credential chain for region and returns a source for s3://bucket/key.
func New(ctx context.Context, bucket, key, region string) (*Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewWithClient(s3.NewFromConfig(cfg), bucket, key)
}

func NewWithClient(client ObjectGetter, bucket, key string) (*Source, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("bucket and key are required")
	}
	return &Source{client: client, bucket: bucket, key: key}, nil
}

func (s *Source) Name() string {
	return SourceName
}

func (s *Source) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, &domain.FetchError{Source: SourceName, Err: fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)}
	}
	defer func() {
		if cerr := out.Body.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Msg("failed to close s3 object body")
		}
	}()

	items, err := monday.DecodeItems(out.Body)
	if err != nil {
		return nil, &domain.FetchError{Source: SourceName, Err: err}
	}

	zerolog.Ctx(ctx).Debug().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Int("items", len(items)).
		Msg("loaded board export")
	return items, nil
}
