package evidence

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nik45114/upkeep/types"
)

// MinioConfig holds the object-store connection settings.
type MinioConfig struct {
	// Endpoint is the host:port of the S3-compatible endpoint.
	Endpoint string

	// AccessKey and SecretKey authenticate the client.
	AccessKey string
	SecretKey string

	// UseSSL enables TLS on the connection.
	UseSSL bool

	// Bucket holds the evidence objects. Default: "upkeep-evidence".
	Bucket string
}

// Minio is an S3-compatible implementation of types.EvidenceStore.
type Minio struct {
	client *minio.Client
	bucket string
}

var _ types.EvidenceStore = (*Minio)(nil)

// NewMinio dials the object store and ensures the evidence bucket exists.
//
// Parameters:
//   - ctx: Context bounding the bucket check
//   - cfg: Connection settings; Bucket defaults to "upkeep-evidence"
//
// Returns:
//   - *Minio: Ready-to-use evidence store
//   - error: Client creation or bucket setup failure
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		bucket = "upkeep-evidence"
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return &Minio{client: client, bucket: bucket}, nil
}

// PutEvidence uploads the evidence payload and returns its opaque reference.
//
// The reference has the form "bucket/cycle/taskType/unit" and is what the
// task row stores in EvidenceRef.
func (m *Minio) PutEvidence(ctx context.Context, key types.TaskKey, r io.Reader, size int64, contentType string) (string, error) {
	objectName := ObjectName(key)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload evidence for %s: %w", key, err)
	}

	return m.bucket + "/" + objectName, nil
}

// ObjectName derives the object path for a task's evidence.
func ObjectName(key types.TaskKey) string {
	return fmt.Sprintf("%s/%s/%s", key.CycleKey, key.TaskTypeID, key.UnitID)
}
