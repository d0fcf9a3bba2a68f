// Package media defines the client-side representation of picked media
// assets and the stateless processor that transforms them before upload.
package media

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates picked assets. It determines which processing
// operations are legal: resize only for images, compress/thumbnail only for
// videos.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// MediaFile is a picked-but-not-yet-uploaded asset. The ID is unique for the
// lifetime of the upload session; a retried upload reuses the same MediaFile.
type MediaFile struct {
	ID       string
	URI      string // local filesystem path
	Type     Kind
	Name     string
	Size     int64
	MimeType string

	Width  int
	Height int

	// Duration is set for videos only.
	Duration time.Duration

	// Derived marks assets produced by the processor (thumbnails). The
	// upload service never derives from a derived file, which bounds the
	// thumbnail recursion to exactly one level.
	Derived bool
}

// NewFileID generates a client-unique media file identifier.
func NewFileID() string {
	return fmt.Sprintf("file_%s", uuid.NewString())
}

// ResizeOptions describes an image resize request. Quality is in (0, 1];
// zero means the default (0.8).
type ResizeOptions struct {
	Width   int
	Height  int
	Quality float64
}
