// Package storage is the blob store for enrollment attachments (identity
// documents, baptism certificates). Blobs are opaque; all metadata lives on
// the enrollment row.
package storage

import (
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// Store is an abstraction over a blob store.
type Store interface {
	// Put writes the blob under name, replacing any previous content, and
	// returns the number of bytes written.
	Put(name string, src io.Reader) (int64, error)
	// Open returns the blob content and its size. ErrNotFound if absent.
	Open(name string) (io.ReadCloser, int64, error)
	// Delete removes the blob. Deleting an absent blob is not an error.
	Delete(name string) error
}
