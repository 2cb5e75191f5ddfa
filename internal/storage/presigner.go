// Package storage grants time-limited access to course resources held in
// S3-compatible object storage. Object bodies never flow through this
// process; callers get presigned URLs and talk to storage directly.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"learnai/backend/internal/config"
)

// FilePresigner signs object URLs without touching object bodies.
type FilePresigner interface {
	PresignGetObject(ctx context.Context, key string, expiry time.Duration) (string, error)
	PresignPutObject(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// S3Presigner generates presigned URLs against S3-compatible object storage.
// Path-style addressing keeps it working with MinIO and other non-AWS
// endpoints.
type S3Presigner struct {
	presignClient *s3.PresignClient
	bucket        string
}

// NewS3Presigner creates a presigner from the storage section of the config.
func NewS3Presigner(cfg *config.Config) (*S3Presigner, error) {
	if !cfg.HasS3Config() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	s3Client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3KeyID, cfg.S3Secret, "",
		),
		BaseEndpoint: aws.String(cfg.S3Endpoint),
		UsePathStyle: true,
	})

	return &S3Presigner{
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.S3Bucket,
	}, nil
}

// PresignGetObject generates a presigned GET URL for the object at key.
func (p *S3Presigner) PresignGetObject(ctx context.Context, key string, expiry time.Duration) (string, error) {
	result, err := p.presignClient.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(expiry),
	)
	if err != nil {
		return "", fmt.Errorf("presign GetObject for %q: %w", key, err)
	}
	return result.URL, nil
}

// PresignPutObject generates a presigned PUT URL for uploading to key.
func (p *S3Presigner) PresignPutObject(ctx context.Context, key string, expiry time.Duration) (string, error) {
	result, err := p.presignClient.PresignPutObject(ctx,
		&s3.PutObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(expiry),
	)
	if err != nil {
		return "", fmt.Errorf("presign PutObject for %q: %w", key, err)
	}
	return result.URL, nil
}

// DisabledPresigner stands in when object storage is not configured. Every
// grant request fails so the API degrades to metadata-only behavior.
type DisabledPresigner struct{}

func (DisabledPresigner) PresignGetObject(context.Context, string, time.Duration) (string, error) {
	return "", fmt.Errorf("object storage is not configured")
}

func (DisabledPresigner) PresignPutObject(context.Context, string, time.Duration) (string, error) {
	return "", fmt.Errorf("object storage is not configured")
}
