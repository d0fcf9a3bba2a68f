// Package storage abstracts the object-storage service media is uploaded
// to. Two logical buckets are in play: a private default and a public one
// for CDN-style assets, selected per upload call.
package storage

import (
	"context"
	"io"
)

// UploadObjectOptions control a single object write.
type UploadObjectOptions struct {
	ContentType string
	// Upsert overwrites an existing object at the same path; without it the
	// write fails if the path is taken.
	Upsert bool
}

// ObjectInfo describes one listed object, named relative to the listing
// prefix.
type ObjectInfo struct {
	Name string
	Size int64
}

// ObjectStorage is the contract the upload service consumes.
type ObjectStorage interface {
	// Upload writes the object body to bucket/path.
	Upload(ctx context.Context, bucket, path string, body io.Reader, opts UploadObjectOptions) error

	// PublicURL returns the URL under which bucket/path is served. It is a
	// pure computation; it does not verify the object exists.
	PublicURL(bucket, path string) string

	// List returns objects under prefix whose names contain search
	// (empty search matches everything).
	List(ctx context.Context, bucket, prefix, search string) ([]ObjectInfo, error)

	// Remove deletes the given object paths from the bucket.
	Remove(ctx context.Context, bucket string, paths []string) error
}
