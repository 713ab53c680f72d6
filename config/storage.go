package config

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage drivers for uploaded images
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// StorageConfig selects and configures the image storage backend
type StorageConfig struct {
	Driver string

	// Local driver
	MediaRoot string
	MediaURL  string

	// S3 driver
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Key      string
	S3Secret   string
	S3BaseURL  string
	S3Presign  bool
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:     getEnv("STORAGE_DRIVER", StorageLocal),
		MediaRoot:  getEnv("MEDIA_ROOT", "./media"),
		MediaURL:   getEnv("MEDIA_URL", "/media"),
		S3Bucket:   getEnv("S3_BUCKET_NAME", ""),
		S3Region:   getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint: getEnv("S3_ENDPOINT", ""),
		S3Key:      getSecret("S3_KEY", "s3_key", ""),
		S3Secret:   getSecret("S3_SECRET", "s3_secret", ""),
		S3BaseURL:  getEnv("S3_URL", ""),
		S3Presign:  os.Getenv("S3_PRESIGN") == "true",
	}
}

// NewS3Client initializes the S3 client from the storage configuration.
// Static credentials and a custom endpoint are optional (MinIO, R2).
func NewS3Client(ctx context.Context, cfg StorageConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3Key != "" && cfg.S3Secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.S3Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		})
	}

	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}
