// Package blobstore persists the raw bytes of uploaded files.
//
// A blob is addressed by a location string produced by Store.Location. The
// location is what file nodes record, and derived blobs such as thumbnails
// live at the same location plus a suffix.
package blobstore

import "context"

type Store interface {
	// Location maps a fresh blob name to the location it will be stored at.
	Location(name string) string
	Write(ctx context.Context, location string, data []byte) error
	// Read returns common.ErrorNotFound when nothing is stored at location.
	Read(ctx context.Context, location string) ([]byte, error)
	Remove(ctx context.Context, location string) error
}
