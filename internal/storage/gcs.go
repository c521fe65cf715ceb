package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// GCSStore uploads objects to a Google Cloud Storage bucket. Credentials come
// from the ambient environment (service account on Cloud Run, ADC locally).
type GCSStore struct {
	bucket *gcs.BucketHandle
	name   string
}

// NewGCSStore creates a store writing into the named bucket.
func NewGCSStore(ctx context.Context, bucketName string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: create gcs client: %w", err)
	}
	return &GCSStore{bucket: client.Bucket(bucketName), name: bucketName}, nil
}

// Save uploads the object and returns its public URL. The bucket is expected
// to allow public reads; the service does not mint signed URLs.
func (s *GCSStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}

	w := s.bucket.Object(cleanKey).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("storage: upload %s: %w", cleanKey, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: finalize %s: %w", cleanKey, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, cleanKey), nil
}

var _ Store = (*GCSStore)(nil)
