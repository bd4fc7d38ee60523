// Package storage wraps object storage for user uploads: avatars and
// conversation-history exports.
package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"learnloop/internal/config"
)

// Uploader stores objects and returns their public URLs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

type minioUploader struct {
	client *minio.Client
	cfg    *config.StorageConfig

	ensureOnce sync.Once
	ensureErr  error
}

// NewUploader creates an object-storage uploader. The bucket is created
// lazily on first upload.
func NewUploader(cfg *config.StorageConfig) (Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}
	return &minioUploader{client: client, cfg: cfg}, nil
}

func (u *minioUploader) ensureBucket(ctx context.Context) error {
	u.ensureOnce.Do(func() {
		exists, err := u.client.BucketExists(ctx, u.cfg.Bucket)
		if err != nil {
			u.ensureErr = err
			return
		}
		if !exists {
			u.ensureErr = u.client.MakeBucket(ctx, u.cfg.Bucket, minio.MakeBucketOptions{})
		}
	})
	return u.ensureErr
}

func (u *minioUploader) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if err := u.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("storage: bucket: %w", err)
	}

	_, err := u.client.PutObject(ctx, u.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}

	if u.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", u.cfg.PublicBaseURL, u.cfg.Bucket, key), nil
	}
	scheme := "http"
	if u.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.Endpoint, u.cfg.Bucket, key), nil
}
