package upload

import (
	"context"
	"time"
)

// PickKind selects what the library picker offers.
type PickKind string

const (
	PickImages PickKind = "images"
	PickVideos PickKind = "videos"
	PickAll    PickKind = "all"
)

// Asset is the platform picker's description of a selected item. Fields the
// platform cannot supply are left zero; the upload service fills defaults.
type Asset struct {
	URI      string
	FileName string
	FileSize int64
	MimeType string
	Width    int
	Height   int
	Duration time.Duration
	IsVideo  bool
}

// Picker models the device media picker and camera.
//
// Permission requests fail with common.ErrPermissionDenied when the user has
// denied access. Pick and capture calls return (nil, nil) when the user
// cancels: cancellation is not an error.
type Picker interface {
	RequestLibraryPermission(ctx context.Context) error
	RequestCameraPermission(ctx context.Context) error

	PickFromLibrary(ctx context.Context, kind PickKind) (*Asset, error)
	CaptureFromCamera(ctx context.Context) (*Asset, error)
}
