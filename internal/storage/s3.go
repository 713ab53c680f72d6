package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageza/recipe-api/backend/config"
)

// presignExpiry bounds the lifetime of presigned image URLs.
const presignExpiry = 15 * time.Minute

// S3Disk stores files as objects in a single bucket. Works with AWS S3 and
// S3-compatible services such as MinIO or R2.
type S3Disk struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

// NewS3Disk wraps client for the bucket named in cfg. When cfg.S3Presign is
// set, URL returns time-limited presigned GET URLs instead of public ones.
func NewS3Disk(client *s3.Client, cfg config.StorageConfig) *S3Disk {
	baseURL := strings.TrimRight(cfg.S3BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
	d := &S3Disk{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}
	if cfg.S3Presign {
		d.presign = s3.NewPresignClient(client)
	}
	return d
}

func (d *S3Disk) Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := d.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func (d *S3Disk) Delete(ctx context.Context, path string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", path, err)
	}
	return nil
}

func (d *S3Disk) Exists(ctx context.Context, path string) (bool, error) {
	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("storage/s3: head %s: %w", path, err)
}

func (d *S3Disk) URL(ctx context.Context, path string) (string, error) {
	if d.presign == nil {
		return d.baseURL + "/" + strings.TrimLeft(path, "/"), nil
	}
	req, err := d.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("storage/s3: presign %s: %w", path, err)
	}
	return req.URL, nil
}
