// Package storage streams uploaded files to an S3 bucket and hands back the
// public URL under which they are served.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"coursedeck/internal/config"
)

// Uploader is the minimal surface handlers need; satisfied by S3Uploader and
// by test fakes.
type Uploader interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Uploader builds a client from static credentials. A non-empty
// S3Endpoint switches the client to an S3-compatible backend such as MinIO.
func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// Put stores the body under key and returns the object's public URL.
func (u *S3Uploader) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %q: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

// ObjectKey prefixes the original filename with a random UUID so concurrent
// uploads of identically-named files never collide.
func ObjectKey(filename string) string {
	return fmt.Sprintf("%s-%s", uuid.New(), filename)
}
