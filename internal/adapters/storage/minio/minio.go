package minio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio spanning the temporary and permanent buckets
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	for _, bucket := range []string{cfg.TempBucket, cfg.PermanentBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket: %w", err)
			}
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// StatTemporary returns the observable properties of a temporary blob
func (a *Adapter) StatTemporary(ctx context.Context, key string) (*port.ObjectInfo, error) {
	return a.stat(ctx, a.config.TempBucket, key)
}

// StatPermanent returns the observable properties of a permanent blob
func (a *Adapter) StatPermanent(ctx context.Context, key string) (*port.ObjectInfo, error) {
	return a.stat(ctx, a.config.PermanentBucket, key)
}

func (a *Adapter) stat(ctx context.Context, bucket string, key string) (*port.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s/%s: %w", bucket, key, domain.ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return &port.ObjectInfo{
		Key:            key,
		SizeBytes:      info.Size,
		ContentType:    info.ContentType,
		ChecksumSHA256: info.UserMetadata["Checksum-Sha256"],
	}, nil
}

// CopyToPermanent performs a server-side copy from the temporary bucket to
// the permanent bucket. The source blob is never mutated; re-copying onto
// the same destination key overwrites it.
func (a *Adapter) CopyToPermanent(ctx context.Context, tempKey string, permKey string) error {
	src := minio.CopySrcOptions{
		Bucket: a.config.TempBucket,
		Object: tempKey,
	}
	dst := minio.CopyDestOptions{
		Bucket: a.config.PermanentBucket,
		Object: permKey,
	}

	if _, err := a.client.CopyObject(ctx, dst, src); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s/%s: %w", a.config.TempBucket, tempKey, domain.ErrBlobNotFound)
		}
		return fmt.Errorf("failed to copy object: %w", err)
	}

	return nil
}

// DeleteTemporary deletes a blob from the temporary bucket
func (a *Adapter) DeleteTemporary(ctx context.Context, key string) error {
	return a.delete(ctx, a.config.TempBucket, key)
}

// DeletePermanent deletes a blob from the permanent bucket
func (a *Adapter) DeletePermanent(ctx context.Context, key string) error {
	return a.delete(ctx, a.config.PermanentBucket, key)
}

func (a *Adapter) delete(ctx context.Context, bucket string, key string) error {
	err := a.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", bucket))

	return nil
}

// GeneratePresignedTempUpload generates a presigned PUT URL into the temporary bucket
func (a *Adapter) GeneratePresignedTempUpload(ctx context.Context, key string, checksumSha256 string) (string, map[string]string, *time.Time, error) {
	requestHeaders := make(http.Header)
	requestHeaders.Set("x-amz-checksum-sha256", checksumSha256)
	requestHeaders.Set("x-amz-sdk-checksum-algorithm", "SHA256")
	requestHeaders.Set("x-amz-meta-checksum-sha256", checksumSha256)

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.TempBucket, key, a.config.UploadPresignedDuration, nil, requestHeaders)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.UploadPresignedDuration)

	return presignedURL.String(), a.headerToMap(requestHeaders), &expiresAt, nil
}

// GeneratePresignedDownload generates a presigned GET URL for a permanent blob
func (a *Adapter) GeneratePresignedDownload(ctx context.Context, permKey string) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.PermanentBucket, permKey, a.config.DownloadSignedURLDuration, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.DownloadSignedURLDuration)

	return presignedURL.String(), &expiresAt, nil
}

func (a *Adapter) headerToMap(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
