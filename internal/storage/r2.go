// Package storage downloads resumes from a Cloudflare R2 bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/muhammadolammi/hrworkflow/internal/config"
)

// Scheme prefixes a resume source that lives in the bucket.
const Scheme = "r2://"

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// R2 reads objects from one bucket.
type R2 struct {
	client objectGetter
	bucket string
}

// NewR2 builds an S3 client against the account's R2 endpoint.
func NewR2(ctx context.Context, cfg config.R2Config) (*R2, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("R2 storage is not configured: set R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY and R2_SECRET_KEY")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})
	return &R2{client: client, bucket: cfg.Bucket}, nil
}

// Download returns the object body for key.
func (r *R2) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// ObjectKey returns the key of an "r2://" source.
func ObjectKey(source string) (string, bool) {
	key, ok := strings.CutPrefix(source, Scheme)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
