package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for the S3 archive backend.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Archive implements Client using AWS S3 (or S3-compatible stores like MinIO).
type S3Archive struct {
	client *s3.Client
	bucket string
}

// NewS3Archive creates an S3-backed Client.
func NewS3Archive(ctx context.Context, cfg S3Config) (*S3Archive, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &S3Archive{client: client, bucket: cfg.Bucket}, nil
}

func (a *S3Archive) key(orgID, kind, id string) string {
	return orgID + "/" + kind + "/" + id + ".json"
}

func (a *S3Archive) put(ctx context.Context, key string, data []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (a *S3Archive) get(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (a *S3Archive) PutScore(ctx context.Context, orgID, scoreID string, data []byte) error {
	return a.put(ctx, a.key(orgID, "scores", scoreID), data)
}

func (a *S3Archive) GetScore(ctx context.Context, orgID, scoreID string) ([]byte, error) {
	return a.get(ctx, a.key(orgID, "scores", scoreID))
}

func (a *S3Archive) PutSnapshot(ctx context.Context, orgID, scoreID string, data []byte) error {
	return a.put(ctx, a.key(orgID, "snapshots", scoreID), data)
}

func (a *S3Archive) GetSnapshot(ctx context.Context, orgID, scoreID string) ([]byte, error) {
	return a.get(ctx, a.key(orgID, "snapshots", scoreID))
}
