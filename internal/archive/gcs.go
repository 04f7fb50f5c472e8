package archive

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSArchive implements Client using Google Cloud Storage.
type GCSArchive struct {
	client *gcs.Client
	bucket string
}

// NewGCSArchive creates a GCS-backed Client.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSArchive(ctx context.Context, bucket string) (*GCSArchive, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSArchive{client: client, bucket: bucket}, nil
}

func (a *GCSArchive) key(orgID, kind, id string) string {
	return orgID + "/" + kind + "/" + id + ".json"
}

func (a *GCSArchive) put(ctx context.Context, key string, data []byte) error {
	w := a.client.Bucket(a.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (a *GCSArchive) get(ctx context.Context, key string) ([]byte, error) {
	r, err := a.client.Bucket(a.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (a *GCSArchive) PutScore(ctx context.Context, orgID, scoreID string, data []byte) error {
	return a.put(ctx, a.key(orgID, "scores", scoreID), data)
}

func (a *GCSArchive) GetScore(ctx context.Context, orgID, scoreID string) ([]byte, error) {
	return a.get(ctx, a.key(orgID, "scores", scoreID))
}

func (a *GCSArchive) PutSnapshot(ctx context.Context, orgID, scoreID string, data []byte) error {
	return a.put(ctx, a.key(orgID, "snapshots", scoreID), data)
}

func (a *GCSArchive) GetSnapshot(ctx context.Context, orgID, scoreID string) ([]byte, error) {
	return a.get(ctx, a.key(orgID, "snapshots", scoreID))
}
