// Package upload orchestrates media acquisition and upload: picking assets
// from the device, running them through the media processor, writing bytes
// to object storage with per-file progress, and routing between the public
// and private buckets.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/logging"
	"github.com/voyageapp/voyage-client/internal/media"
	"github.com/voyageapp/voyage-client/internal/storage"
)

// Buckets names the two logical storage destinations.
type Buckets struct {
	Private string
	Public  string
}

// Service is the end-to-end upload orchestrator. Progress for in-flight and
// finished uploads is held per service instance and read via Progress.
//
// At most one upload may be in flight per file id; concurrent calls for
// different ids are safe.
type Service struct {
	picker    Picker
	processor *media.Processor
	store     storage.ObjectStorage
	buckets   Buckets
	progress  *tracker
	log       logging.Logger
}

func NewService(picker Picker, processor *media.Processor, store storage.ObjectStorage, buckets Buckets, log logging.Logger) *Service {
	return &Service{
		picker:    picker,
		processor: processor,
		store:     store,
		buckets:   buckets,
		progress:  newTracker(),
		log:       log,
	}
}

// PickImage requests library permission and lets the user select an image.
// Returns (nil, nil) on cancellation. The Resize option is applied when set.
func (s *Service) PickImage(ctx context.Context, opts *Options) (*media.MediaFile, error) {
	if err := s.picker.RequestLibraryPermission(ctx); err != nil {
		return nil, fmt.Errorf("media library: %w", err)
	}

	asset, err := s.picker.PickFromLibrary(ctx, PickImages)
	if err != nil {
		return nil, fmt.Errorf("pick image: %w", err)
	}
	if asset == nil {
		return nil, nil
	}

	file := s.wrapAsset(asset, false)
	return s.applyTransforms(ctx, file, opts), nil
}

// PickImageFromCamera requests camera permission and captures a photo.
func (s *Service) PickImageFromCamera(ctx context.Context, opts *Options) (*media.MediaFile, error) {
	if err := s.picker.RequestCameraPermission(ctx); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	asset, err := s.picker.CaptureFromCamera(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture image: %w", err)
	}
	if asset == nil {
		return nil, nil
	}

	file := s.wrapAsset(asset, false)
	return s.applyTransforms(ctx, file, opts), nil
}

// PickVideo requests library permission and lets the user select a video.
func (s *Service) PickVideo(ctx context.Context, opts *Options) (*media.MediaFile, error) {
	if err := s.picker.RequestLibraryPermission(ctx); err != nil {
		return nil, fmt.Errorf("media library: %w", err)
	}

	asset, err := s.picker.PickFromLibrary(ctx, PickVideos)
	if err != nil {
		return nil, fmt.Errorf("pick video: %w", err)
	}
	if asset == nil {
		return nil, nil
	}

	file := s.wrapAsset(asset, true)
	return s.applyTransforms(ctx, file, opts), nil
}

// PickMedia lets the user select either an image or a video.
func (s *Service) PickMedia(ctx context.Context, opts *Options) (*media.MediaFile, error) {
	if err := s.picker.RequestLibraryPermission(ctx); err != nil {
		return nil, fmt.Errorf("media library: %w", err)
	}

	asset, err := s.picker.PickFromLibrary(ctx, PickAll)
	if err != nil {
		return nil, fmt.Errorf("pick media: %w", err)
	}
	if asset == nil {
		return nil, nil
	}

	file := s.wrapAsset(asset, asset.IsVideo)
	return s.applyTransforms(ctx, file, opts), nil
}

// UploadFile runs the per-file upload state machine. Storage failures are
// captured into the Result and the progress record rather than returned as
// errors, so callers always get a structured outcome. There is no automatic
// retry at this layer.
func (s *Service) UploadFile(ctx context.Context, file media.MediaFile, opts *Options) Result {
	if opts == nil {
		opts = &Options{}
	}

	s.progress.advance(file.ID, 0, StatusPending)

	folder := opts.Folder
	if folder == "" {
		folder = common.DefaultUploadFolder
	}
	path := fmt.Sprintf("%s/%s_%s", folder, file.ID, file.Name)
	bucket := s.bucketFor(opts)

	data, err := os.ReadFile(file.URI)
	if err != nil {
		s.progress.fail(file.ID, err.Error())
		return Result{FileID: file.ID, Error: err.Error()}
	}

	s.progress.advance(file.ID, 25, StatusUploading)

	err = s.store.Upload(ctx, bucket, path, bytes.NewReader(data), storage.UploadObjectOptions{
		ContentType: file.MimeType,
		Upsert:      true,
	})
	if err != nil {
		s.log.Error(ctx, "upload failed", "file_id", file.ID, "bucket", bucket, "path", path, "error", err)
		s.progress.fail(file.ID, err.Error())
		return Result{FileID: file.ID, Error: err.Error()}
	}

	s.progress.advance(file.ID, 75, StatusUploading)

	publicURL := s.store.PublicURL(bucket, path)

	var thumbnailURL string
	if file.Type == media.KindVideo && !file.Derived && opts.GenerateThumbnail {
		thumbnailURL = s.uploadThumbnail(ctx, file, folder, opts.UsePublicBucket)
	}

	s.progress.advance(file.ID, 100, StatusCompleted)

	return Result{
		Success:      true,
		FileID:       file.ID,
		FilePath:     path,
		PublicURL:    publicURL,
		ThumbnailURL: thumbnailURL,
	}
}

// uploadThumbnail derives a still from the video and uploads it next to the
// parent under <folder>/thumbnails. Failures are logged and swallowed: the
// parent upload stays successful without a thumbnail URL.
func (s *Service) uploadThumbnail(ctx context.Context, file media.MediaFile, folder string, usePublic bool) string {
	thumb, err := s.processor.GenerateThumbnail(ctx, file)
	if err != nil {
		s.log.Warn(ctx, "thumbnail generation failed", "file_id", file.ID, "error", err)
		return ""
	}

	res := s.UploadFile(ctx, thumb, &Options{
		Folder:          folder + "/thumbnails",
		UsePublicBucket: usePublic,
	})
	if !res.Success {
		s.log.Warn(ctx, "thumbnail upload failed", "file_id", file.ID, "error", res.Error)
		return ""
	}
	return res.PublicURL
}

// UploadMultiple fans out one UploadFile call per file and waits for all of
// them to settle. Results are returned in input order; one item's failure
// never aborts the others.
func (s *Service) UploadMultiple(ctx context.Context, files []media.MediaFile, opts *Options) []Result {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i] = s.UploadFile(gctx, f, opts)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	return results
}

// DeleteFile is the best-effort deletion by file id: it scans the default
// uploads folder for the first object whose name contains fileID and removes
// it. Files uploaded under a custom folder are not found by this routine;
// use DeleteByPath with the path from Result.FilePath instead.
func (s *Service) DeleteFile(ctx context.Context, fileID string, opts *Options) bool {
	if opts == nil {
		opts = &Options{}
	}
	bucket := s.bucketFor(opts)

	infos, err := s.store.List(ctx, bucket, common.DefaultUploadFolder, fileID)
	if err != nil || len(infos) == 0 {
		if err != nil {
			s.log.Error(ctx, "delete: list failed", "file_id", fileID, "error", err)
		}
		return false
	}

	path := fmt.Sprintf("%s/%s", common.DefaultUploadFolder, infos[0].Name)
	if err := s.store.Remove(ctx, bucket, []string{path}); err != nil {
		s.log.Error(ctx, "delete: remove failed", "file_id", fileID, "path", path, "error", err)
		return false
	}
	return true
}

// DeleteByPath removes the exact storage path returned in Result.FilePath.
func (s *Service) DeleteByPath(ctx context.Context, filePath string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	if err := s.store.Remove(ctx, s.bucketFor(opts), []string{filePath}); err != nil {
		return fmt.Errorf("delete %s: %w", filePath, err)
	}
	return nil
}

// Progress returns a snapshot of the progress record for fileID, or nil if
// the id was never uploaded by this service instance. Intended for periodic
// polling by the UI layer.
func (s *Service) Progress(fileID string) *Progress {
	return s.progress.get(fileID)
}

func (s *Service) bucketFor(opts *Options) string {
	if opts.UsePublicBucket {
		return s.buckets.Public
	}
	return s.buckets.Private
}

// wrapAsset turns a picker asset into a MediaFile with a fresh id, filling
// defaults for fields the platform did not supply.
func (s *Service) wrapAsset(asset *Asset, isVideo bool) media.MediaFile {
	kind := media.KindImage
	ext, fallbackMime := "jpg", "image/jpeg"
	if isVideo {
		kind = media.KindVideo
		ext, fallbackMime = "mp4", "video/mp4"
	}

	name := asset.FileName
	if name == "" {
		name = fmt.Sprintf("%s_%d.%s", kind, time.Now().UnixMilli(), ext)
	}

	mime := asset.MimeType
	if mime == "" {
		if detected, err := mimetype.DetectFile(asset.URI); err == nil {
			mime = detected.String()
		} else {
			mime = fallbackMime
		}
	}

	size := asset.FileSize
	if size == 0 {
		if info, err := os.Stat(asset.URI); err == nil {
			size = info.Size()
		}
	}

	return media.MediaFile{
		ID:       media.NewFileID(),
		URI:      asset.URI,
		Type:     kind,
		Name:     name,
		Size:     size,
		MimeType: mime,
		Width:    asset.Width,
		Height:   asset.Height,
		Duration: asset.Duration,
	}
}

// applyTransforms runs the per-kind processing requested by opts.
func (s *Service) applyTransforms(ctx context.Context, file media.MediaFile, opts *Options) *media.MediaFile {
	if opts == nil {
		return &file
	}
	switch {
	case file.Type == media.KindImage && opts.Resize != nil:
		file = s.processor.ResizeImage(ctx, file, opts.Resize)
	case file.Type == media.KindVideo && opts.Compress:
		file = s.processor.CompressVideo(ctx, file)
	}
	return &file
}
