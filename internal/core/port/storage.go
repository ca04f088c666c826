package port

import (
	"context"
	"time"
)

// ObjectInfo holds the externally observable properties of a blob
type ObjectInfo struct {
	Key            string
	SizeBytes      int64
	ContentType    string
	ChecksumSHA256 string
}

// BlobStorage is an interface to define object storage interactions
// across the temporary and permanent buckets
type BlobStorage interface {
	StatTemporary(ctx context.Context, key string) (*ObjectInfo, error)
	StatPermanent(ctx context.Context, key string) (*ObjectInfo, error)

	// CopyToPermanent performs a server-side copy of a temporary blob to a
	// permanent key. The source is never mutated.
	CopyToPermanent(ctx context.Context, tempKey string, permKey string) error

	DeleteTemporary(ctx context.Context, key string) error
	DeletePermanent(ctx context.Context, key string) error

	GeneratePresignedTempUpload(ctx context.Context, key string, checksumSha256 string) (string, map[string]string, *time.Time, error)
	GeneratePresignedDownload(ctx context.Context, permKey string) (string, *time.Time, error)
}
