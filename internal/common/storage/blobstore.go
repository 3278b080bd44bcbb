// internal/common/storage/blobstore.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"corpsite-backend/internal/common/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore persists uploaded files (resumes, images) under generated
// object keys and hands the key back as the blob reference.
type BlobStore struct {
	client *minio.Client
	bucket string
}

// NewBlobStore creates an S3-compatible blob store client.
func NewBlobStore(cfg config.StorageConfig) (*BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store client: %w", err)
	}

	return &BlobStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (b *BlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket: %w", err)
		}
	}
	return nil
}

// Put stores the file bytes under a generated key, keeping the original
// extension, and returns the key as the blob reference.
func (b *BlobStore) Put(ctx context.Context, data []byte, suggestedName string) (string, error) {
	key := uuid.New().String() + filepath.Ext(suggestedName)

	_, err := b.client.PutObject(
		ctx,
		b.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		},
	)
	if err != nil {
		return "", fmt.Errorf("blob put object: %w", err)
	}

	return key, nil
}
