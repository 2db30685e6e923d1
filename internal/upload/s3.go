package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"scholarship-portal/internal/config"
	"scholarship-portal/internal/imaging"
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend writes uploads to a bucket under <prefix>/<uuid>.<ext>.
type S3Backend struct {
	client  objectPutter
	bucket  string
	prefix  string
	baseURL string
	newID   func() string
}

// NewS3Backend loads AWS credentials from the default chain.
func NewS3Backend(ctx context.Context, cfg config.S3Config) (*S3Backend, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("upload: s3 bucket is required")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newS3Backend(s3.NewFromConfig(awsCfg), cfg, awsCfg.Region), nil
}

func newS3Backend(client objectPutter, cfg config.S3Config, region string) *S3Backend {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}
	return &S3Backend{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		baseURL: base,
		newID:   func() string { return uuid.NewString() },
	}
}

func (b *S3Backend) Store(ctx context.Context, f imaging.File) (string, error) {
	ext := imaging.Ext(f.ContentType)
	if ext == "" {
		ext = strings.ToLower(path.Ext(f.Name))
	}
	key := path.Join(b.prefix, b.newID()+ext)
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(b.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(f.Data),
		ContentType:  aws.String(f.ContentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return b.baseURL + "/" + key, nil
}
