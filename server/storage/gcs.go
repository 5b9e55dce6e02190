package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/cyclopcam/logs"
)

// StoreGCS keeps blobs in a Google Cloud Storage bucket, for hosted
// installations where the server has no durable local disk.
type StoreGCS struct {
	bucket *gcs.BucketHandle
	log    logs.Log
}

func NewStoreGCS(log logs.Log, bucketName string) (*StoreGCS, error) {
	client, err := gcs.NewClient(context.Background())
	if err != nil {
		return nil, err
	}
	return &StoreGCS{
		bucket: client.Bucket(bucketName),
		log:    log,
	}, nil
}

func (s *StoreGCS) Put(name string, src io.Reader) (int64, error) {
	ctx := context.Background()
	w := s.bucket.Object(name).NewWriter(ctx)
	n, err := io.Copy(w, src)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (s *StoreGCS) Open(name string) (io.ReadCloser, int64, error) {
	ctx := context.Background()
	r, err := s.bucket.Object(name).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, 0, ErrNotFound
	} else if err != nil {
		return nil, 0, err
	}
	return r, r.Attrs.Size, nil
}

func (s *StoreGCS) Delete(name string) error {
	ctx := context.Background()
	err := s.bucket.Object(name).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
