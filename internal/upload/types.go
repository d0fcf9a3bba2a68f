package upload

import "github.com/voyageapp/voyage-client/internal/media"

// Options direct a pick or upload call.
type Options struct {
	// Folder is the storage prefix; empty means common.DefaultUploadFolder.
	Folder string

	// Resize is applied to picked images when set.
	Resize *media.ResizeOptions

	// Compress applies video compression to picked videos.
	Compress bool

	// GenerateThumbnail uploads a derived still next to a video upload.
	GenerateThumbnail bool

	// UsePublicBucket routes the upload to the CDN-style public bucket
	// instead of the access-controlled private one. The routing decision is
	// made per call, not per service instance.
	UsePublicBucket bool
}

// Result is the outcome of one upload call. Success implies FilePath and
// PublicURL are set; failure implies Error is set. Immutable once returned.
type Result struct {
	Success      bool
	FileID       string
	FilePath     string // server-relative storage path, for backend linkage
	PublicURL    string
	ThumbnailURL string
	Error        string
}
