// Package storage holds attachment bytes. The real implementation is a
// Google Cloud Storage bucket reached through the Firebase app; tests use
// the in-memory store.
package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore reads, writes and deletes opaque byte blobs by path.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type GCSStore struct {
	bucket *gcs.BucketHandle
}

// NewGCSStore resolves the app's default bucket.
func NewGCSStore(ctx context.Context, app *firebase.App) (*GCSStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, err
	}
	return &GCSStore{bucket: bucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, path, contentType string, r io.Reader) error {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *GCSStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(path).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	return r, err
}

func (s *GCSStore) Delete(ctx context.Context, path string) error {
	err := s.bucket.Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	return err
}
