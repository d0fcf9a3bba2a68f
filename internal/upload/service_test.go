package upload

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/logging"
	"github.com/voyageapp/voyage-client/internal/media"
	"github.com/voyageapp/voyage-client/internal/storage"
)

type uploadedObject struct {
	Bucket      string
	Path        string
	Data        []byte
	ContentType string
	Upsert      bool
}

// fakeStore implements storage.ObjectStorage in memory.
type fakeStore struct {
	mu       sync.Mutex
	uploads  []uploadedObject
	failPath func(path string) error // per-path upload failure injection
	onUpload func(path string)       // observation hook, called before recording
	listed   []storage.ObjectInfo
	listErr  error
	removed  [][]string
	remErr   error
}

func (f *fakeStore) Upload(_ context.Context, bucket, path string, body io.Reader, opts storage.UploadObjectOptions) error {
	if f.onUpload != nil {
		f.onUpload(path)
	}
	if f.failPath != nil {
		if err := f.failPath(path); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, uploadedObject{
		Bucket: bucket, Path: path, Data: data,
		ContentType: opts.ContentType, Upsert: opts.Upsert,
	})
	return nil
}

func (f *fakeStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("https://cdn.test/%s/%s", bucket, path)
}

func (f *fakeStore) List(_ context.Context, _, _, search string) ([]storage.ObjectInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []storage.ObjectInfo
	for _, info := range f.listed {
		if search == "" || strings.Contains(info.Name, search) {
			out = append(out, info)
		}
	}
	return out, nil
}

func (f *fakeStore) Remove(_ context.Context, _ string, paths []string) error {
	if f.remErr != nil {
		return f.remErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, paths)
	return nil
}

type fakePicker struct {
	libraryErr error
	cameraErr  error
	asset      *Asset
	pickErr    error
	gotKind    PickKind
}

func (f *fakePicker) RequestLibraryPermission(context.Context) error { return f.libraryErr }
func (f *fakePicker) RequestCameraPermission(context.Context) error  { return f.cameraErr }

func (f *fakePicker) PickFromLibrary(_ context.Context, kind PickKind) (*Asset, error) {
	f.gotKind = kind
	return f.asset, f.pickErr
}

func (f *fakePicker) CaptureFromCamera(context.Context) (*Asset, error) {
	return f.asset, f.pickErr
}

type stubFrames struct {
	err error
}

func (s *stubFrames) ExtractFrame(context.Context, string, time.Duration) (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	return image.NewNRGBA(image.Rect(0, 0, 4, 4)), nil
}

func newTestService(t *testing.T, picker Picker, store *fakeStore) *Service {
	t.Helper()
	return newTestServiceFrames(t, picker, store, &stubFrames{})
}

func newTestServiceFrames(t *testing.T, picker Picker, store *fakeStore, frames media.FrameExtractor) *Service {
	t.Helper()
	proc := media.NewProcessor(frames, logging.Nop())
	return NewService(picker, proc, store, Buckets{Private: "media", Public: "media-public"}, logging.Nop())
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testMediaFile(t *testing.T, kind media.Kind) media.MediaFile {
	t.Helper()
	ext := "jpg"
	mime := "image/jpeg"
	if kind == media.KindVideo {
		ext, mime = "mp4", "video/mp4"
	}
	name := "asset." + ext
	return media.MediaFile{
		ID:       media.NewFileID(),
		URI:      writeTempFile(t, name, "payload-bytes"),
		Type:     kind,
		Name:     name,
		Size:     13,
		MimeType: mime,
		Duration: 5 * time.Second,
	}
}

func TestUploadFile_SuccessPathAndProgress(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, &fakePicker{}, store)
	file := testMediaFile(t, media.KindImage)

	// Observe progress mid-flight: by the time bytes hit storage the record
	// must read 25/uploading.
	var midFlight *Progress
	store.onUpload = func(string) { midFlight = svc.Progress(file.ID) }

	res := svc.UploadFile(context.Background(), file, nil)

	require.True(t, res.Success)
	assert.Equal(t, file.ID, res.FileID)
	assert.Equal(t, fmt.Sprintf("uploads/%s_%s", file.ID, file.Name), res.FilePath)
	assert.Equal(t, "https://cdn.test/media/"+res.FilePath, res.PublicURL)
	assert.Empty(t, res.Error)

	require.NotNil(t, midFlight)
	assert.Equal(t, 25, midFlight.Progress)
	assert.Equal(t, StatusUploading, midFlight.Status)

	final := svc.Progress(file.ID)
	require.NotNil(t, final)
	assert.Equal(t, 100, final.Progress)
	assert.Equal(t, StatusCompleted, final.Status)

	require.Len(t, store.uploads, 1)
	up := store.uploads[0]
	assert.Equal(t, "media", up.Bucket)
	assert.Equal(t, "image/jpeg", up.ContentType)
	assert.True(t, up.Upsert)
	assert.Equal(t, "payload-bytes", string(up.Data))
}

func TestUploadFile_BucketRouting(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, &fakePicker{}, store)
	file := testMediaFile(t, media.KindImage)

	res := svc.UploadFile(context.Background(), file, &Options{UsePublicBucket: true, Folder: "pets/photos"})

	require.True(t, res.Success)
	require.Len(t, store.uploads, 1)
	assert.Equal(t, "media-public", store.uploads[0].Bucket)
	assert.Equal(t, fmt.Sprintf("pets/photos/%s_%s", file.ID, file.Name), store.uploads[0].Path)
	assert.True(t, strings.HasPrefix(res.PublicURL, "https://cdn.test/media-public/"))
}

func TestUploadFile_StorageErrorIsCapturedNotThrown(t *testing.T) {
	store := &fakeStore{failPath: func(string) error { return errors.New("quota exceeded") }}
	svc := newTestService(t, &fakePicker{}, store)
	file := testMediaFile(t, media.KindImage)

	res := svc.UploadFile(context.Background(), file, nil)

	assert.False(t, res.Success)
	assert.Equal(t, file.ID, res.FileID)
	assert.Contains(t, res.Error, "quota exceeded")
	assert.Empty(t, res.FilePath)

	p := svc.Progress(file.ID)
	require.NotNil(t, p)
	assert.Equal(t, StatusError, p.Status)
	assert.Equal(t, 0, p.Progress)
}

func TestUploadFile_UnreadableSourceFails(t *testing.T) {
	svc := newTestService(t, &fakePicker{}, &fakeStore{})

	file := media.MediaFile{ID: "gone", URI: "/does/not/exist", Type: media.KindImage, Name: "x.jpg"}
	res := svc.UploadFile(context.Background(), file, nil)

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, StatusError, svc.Progress("gone").Status)
}

func TestUploadFile_VideoThumbnailUploadedAlongside(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, &fakePicker{}, store)
	file := testMediaFile(t, media.KindVideo)

	res := svc.UploadFile(context.Background(), file, &Options{Folder: "pets/videos", GenerateThumbnail: true})

	require.True(t, res.Success)
	require.Len(t, store.uploads, 2)

	var thumbPath string
	for _, up := range store.uploads {
		if strings.Contains(up.Path, "/thumbnails/") {
			thumbPath = up.Path
		}
	}
	require.NotEmpty(t, thumbPath, "expected a thumbnail object")
	assert.True(t, strings.HasPrefix(thumbPath, "pets/videos/thumbnails/"))
	assert.Contains(t, thumbPath, file.ID+"_thumbnail")
	assert.Equal(t, "https://cdn.test/media/"+thumbPath, res.ThumbnailURL)

	// Thumbnail gets its own progress record, also terminal.
	assert.Equal(t, StatusCompleted, svc.Progress(file.ID+"_thumbnail").Status)
}

func TestUploadFile_ThumbnailFailureDoesNotFailParent(t *testing.T) {
	store := &fakeStore{}
	svc := newTestServiceFrames(t, &fakePicker{}, store, &stubFrames{err: errors.New("no codec")})
	file := testMediaFile(t, media.KindVideo)

	res := svc.UploadFile(context.Background(), file, &Options{GenerateThumbnail: true})

	assert.True(t, res.Success)
	assert.Empty(t, res.ThumbnailURL)
	assert.Len(t, store.uploads, 1)
}

func TestUploadFile_ThumbnailUploadErrorSwallowed(t *testing.T) {
	store := &fakeStore{failPath: func(path string) error {
		if strings.Contains(path, "/thumbnails/") {
			return errors.New("thumbnail bucket down")
		}
		return nil
	}}
	svc := newTestService(t, &fakePicker{}, store)
	file := testMediaFile(t, media.KindVideo)

	res := svc.UploadFile(context.Background(), file, &Options{GenerateThumbnail: true})

	assert.True(t, res.Success)
	assert.Empty(t, res.ThumbnailURL)
}

func TestUploadMultiple_BatchIndependenceAndOrder(t *testing.T) {
	fileA := testMediaFile(t, media.KindImage)
	fileB := testMediaFile(t, media.KindImage)

	store := &fakeStore{failPath: func(path string) error {
		if strings.Contains(path, fileA.ID) {
			return errors.New("network reset")
		}
		return nil
	}}
	svc := newTestService(t, &fakePicker{}, store)

	results := svc.UploadMultiple(context.Background(), []media.MediaFile{fileA, fileB}, nil)

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.Equal(t, fileA.ID, results[0].FileID)
	assert.True(t, results[1].Success)
	assert.Equal(t, fileB.ID, results[1].FileID)
}

func TestPickImage_PermissionDenied(t *testing.T) {
	svc := newTestService(t, &fakePicker{libraryErr: common.ErrPermissionDenied}, &fakeStore{})

	_, err := svc.PickImage(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestPickImage_CancellationYieldsNil(t *testing.T) {
	svc := newTestService(t, &fakePicker{asset: nil}, &fakeStore{})

	file, err := svc.PickImage(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestPickImage_WrapsAssetWithDefaults(t *testing.T) {
	uri := writeTempFile(t, "photo", "not-really-a-jpeg")
	picker := &fakePicker{asset: &Asset{URI: uri, Width: 640, Height: 480}}
	svc := newTestService(t, picker, &fakeStore{})

	file, err := svc.PickImage(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, PickImages, picker.gotKind)
	assert.NotEmpty(t, file.ID)
	assert.Equal(t, media.KindImage, file.Type)
	assert.True(t, strings.HasPrefix(file.Name, "image_"))
	assert.NotEmpty(t, file.MimeType)
	assert.Equal(t, int64(len("not-really-a-jpeg")), file.Size)
	assert.Equal(t, 640, file.Width)
}

func TestPickVideo_KeepsPlatformMetadata(t *testing.T) {
	uri := writeTempFile(t, "clip.mp4", "video-bytes")
	picker := &fakePicker{asset: &Asset{
		URI: uri, FileName: "clip.mp4", FileSize: 11,
		MimeType: "video/mp4", Duration: 42 * time.Second, IsVideo: true,
	}}
	svc := newTestService(t, picker, &fakeStore{})

	file, err := svc.PickVideo(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, PickVideos, picker.gotKind)
	assert.Equal(t, media.KindVideo, file.Type)
	assert.Equal(t, "clip.mp4", file.Name)
	assert.Equal(t, "video/mp4", file.MimeType)
	assert.Equal(t, 42*time.Second, file.Duration)
}

func TestPickMedia_TypeFollowsAsset(t *testing.T) {
	uri := writeTempFile(t, "clip.mp4", "video-bytes")
	picker := &fakePicker{asset: &Asset{URI: uri, FileName: "clip.mp4", IsVideo: true}}
	svc := newTestService(t, picker, &fakeStore{})

	file, err := svc.PickMedia(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, PickAll, picker.gotKind)
	assert.Equal(t, media.KindVideo, file.Type)
}

func TestPickImage_ResizeApplied(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.jpg")
	require.NoError(t, imaging.Save(imaging.New(400, 300, color.NRGBA{R: 200, G: 120, B: 40, A: 255}), src))

	picker := &fakePicker{asset: &Asset{URI: src, FileName: "big.jpg", MimeType: "image/jpeg", Width: 400, Height: 300}}
	svc := newTestService(t, picker, &fakeStore{})

	file, err := svc.PickImage(context.Background(), &Options{Resize: &media.ResizeOptions{Width: 100, Height: 75}})
	require.NoError(t, err)
	require.NotNil(t, file)
	t.Cleanup(func() { os.Remove(file.URI) })

	assert.Equal(t, 100, file.Width)
	assert.Equal(t, 75, file.Height)
	assert.NotEqual(t, src, file.URI)
}

func TestDeleteFile_SearchesDefaultFolder(t *testing.T) {
	store := &fakeStore{listed: []storage.ObjectInfo{{Name: "f1_cat.jpg"}}}
	svc := newTestService(t, &fakePicker{}, store)

	ok := svc.DeleteFile(context.Background(), "f1", nil)
	require.True(t, ok)
	require.Len(t, store.removed, 1)
	assert.Equal(t, []string{"uploads/f1_cat.jpg"}, store.removed[0])
}

func TestDeleteFile_NotFoundOrListErrorIsFalse(t *testing.T) {
	svc := newTestService(t, &fakePicker{}, &fakeStore{})
	assert.False(t, svc.DeleteFile(context.Background(), "missing", nil))

	svc = newTestService(t, &fakePicker{}, &fakeStore{listErr: errors.New("offline")})
	assert.False(t, svc.DeleteFile(context.Background(), "f1", nil))
}

func TestDeleteByPath_ExactPath(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, &fakePicker{}, store)

	require.NoError(t, svc.DeleteByPath(context.Background(), "pets/photos/f1_cat.jpg", &Options{UsePublicBucket: true}))
	require.Len(t, store.removed, 1)
	assert.Equal(t, []string{"pets/photos/f1_cat.jpg"}, store.removed[0])

	store.remErr = errors.New("denied")
	assert.Error(t, svc.DeleteByPath(context.Background(), "pets/photos/f1_cat.jpg", nil))
}
