// Package filestore moves bulk files in and out of Google Cloud Storage.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"

	"stockyard/internal/domain/upload"
	"stockyard/pkg/logger"
)

// GCSStore implements upload.FileStore against one bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a file store bound to the given bucket.
func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{
		client: client,
		bucket: bucket,
	}
}

// Download fetches the object at key. Objects with a .gz suffix are
// decompressed transparently.
func (s *GCSStore) Download(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", key, err)
	}
	defer reader.Close()

	var body io.Reader = reader
	if strings.HasSuffix(key, ".gz") {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream %s: %w", key, err)
		}
		defer gz.Close()
		body = gz
	}

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	return payload, nil
}

// UploadFailedRecords writes the failed set as a gzipped JSON artifact under
// errors/<kind>/.
func (s *GCSStore) UploadFailedRecords(ctx context.Context, kind string, records []upload.FailedRecord) error {
	key := failedRecordsKey(kind)

	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	writer.ContentType = "application/json"
	writer.ContentEncoding = "gzip"

	gz := gzip.NewWriter(writer)
	if err := json.NewEncoder(gz).Encode(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("encode failed records: %w", err)
	}
	if err := gz.Close(); err != nil {
		_ = writer.Close()
		return fmt.Errorf("flush gzip stream: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("upload failed records to %s: %w", key, err)
	}

	logger.Info(ctx, "uploaded failed records artifact", "key", key, "count", len(records))
	return nil
}

func failedRecordsKey(kind string) string {
	return fmt.Sprintf("errors/%s/errors-%d.json.gz", kind, time.Now().UnixMilli())
}

// Ensure interface compliance.
var _ upload.FileStore = (*GCSStore)(nil)
