package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
)

// Config holds S3-compatible object store settings. PublicEndpoint, when
// set, is used for presigned URLs so browsers resolve them outside the
// cluster network.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	PublicEndpoint  string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
}

// Configured reports whether enough settings are present to presign URLs
func (c Config) Configured() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// presignEndpoint picks the endpoint presigned URLs are built against
func (c Config) presignEndpoint() string {
	if c.PublicEndpoint != "" {
		return c.PublicEndpoint
	}
	return c.Endpoint
}

// S3Store implements storage.ObjectStore over an S3-compatible bucket
type S3Store struct {
	cfg     Config
	presign *s3.PresignClient
	logger  coreport.Logger
}

// NewS3Store creates a new S3Store instance. A store built from an
// incomplete config is still usable; PresignGet reports the missing setup.
func NewS3Store(ctx context.Context, cfg Config, logger coreport.Logger) (*S3Store, error) {
	store := &S3Store{cfg: cfg, logger: logger}
	if !cfg.Configured() {
		logger.Warn("Object store not configured, signed downloads disabled", nil)
		return store, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := cfg.presignEndpoint(); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	store.presign = s3.NewPresignClient(client)
	return store, nil
}

// PresignGet returns a signed GET URL for the object key
func (s *S3Store) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.presign == nil {
		return "", errs.ErrStorageNotConfigured
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		s.logger.Error("Failed to presign object URL", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: presigning %s: %s", errs.ErrInternalServer, key, err.Error())
	}

	return req.URL, nil
}
