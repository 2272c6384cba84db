package mapping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// maxObjectSize caps how much of an S3 object is read as a table.
const maxObjectSize = 1 << 20

// ObjectGetter is the subset of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a table from an S3 object. A missing key is reported as
// fs.ErrNotExist so LoadTable treats it like a missing file.
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
}

// NewS3Source returns a source for s3://bucket/key.
func NewS3Source(client ObjectGetter, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

func (s *S3Source) Load(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%s: %w", s.Path(), fs.ErrNotExist)
		}
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxObjectSize {
		return nil, fmt.Errorf("mapping: %s exceeds %d bytes", s.Path(), maxObjectSize)
	}
	return data, nil
}

func (s *S3Source) Path() string {
	return "s3://" + s.bucket + "/" + s.key
}

// NewS3Client builds an S3 client for region. Empty credentials produce
// anonymous requests, which is enough for public buckets. A non-empty
// endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Client(region, endpoint string, creds aws.Credentials) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	}
	if creds.AccessKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return creds, nil
			}))
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}
