package media

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/logging"
)

func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	path := filepath.Join(t.TempDir(), "test.jpg")
	require.NoError(t, imaging.Save(img, path))
	return path
}

type fakeFrameExtractor struct {
	frame image.Image
	err   error
	gotAt time.Duration
}

func (f *fakeFrameExtractor) ExtractFrame(_ context.Context, _ string, at time.Duration) (image.Image, error) {
	f.gotAt = at
	if f.err != nil {
		return nil, f.err
	}
	return f.frame, nil
}

func TestResizeImage_ProducesResizedFile(t *testing.T) {
	p := NewProcessor(nil, logging.Nop())

	path := writeTestImage(t, 800, 600)
	info, err := os.Stat(path)
	require.NoError(t, err)

	file := MediaFile{
		ID: NewFileID(), URI: path, Type: KindImage,
		Name: "test.jpg", Size: info.Size(), MimeType: "image/jpeg",
		Width: 800, Height: 600,
	}

	got := p.ResizeImage(context.Background(), file, &ResizeOptions{Width: 200, Height: 150})

	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, KindImage, got.Type)
	assert.NotEqual(t, file.URI, got.URI)
	assert.Equal(t, 200, got.Width)
	assert.Equal(t, 150, got.Height)
	assert.Greater(t, got.Size, int64(0))
	t.Cleanup(func() { os.Remove(got.URI) })
}

func TestResizeImage_NoopForVideosAndNilOptions(t *testing.T) {
	p := NewProcessor(nil, logging.Nop())

	video := MediaFile{ID: "v1", Type: KindVideo, URI: "/nonexistent.mp4"}
	assert.Equal(t, video, p.ResizeImage(context.Background(), video, &ResizeOptions{Width: 10, Height: 10}))

	img := MediaFile{ID: "i1", Type: KindImage, URI: "/nonexistent.jpg"}
	assert.Equal(t, img, p.ResizeImage(context.Background(), img, nil))
}

func TestResizeImage_FailureReturnsOriginal(t *testing.T) {
	p := NewProcessor(nil, logging.Nop())

	file := MediaFile{ID: "i1", Type: KindImage, URI: "/does/not/exist.jpg", Size: 123}
	got := p.ResizeImage(context.Background(), file, &ResizeOptions{Width: 10, Height: 10})

	assert.Equal(t, file, got)
}

func TestCompressVideo_Passthrough(t *testing.T) {
	p := NewProcessor(nil, logging.Nop())

	video := MediaFile{ID: "v1", Type: KindVideo, URI: "/clip.mp4", Size: 999}
	assert.Equal(t, video, p.CompressVideo(context.Background(), video))
}

func TestGenerateThumbnail_DerivedImage(t *testing.T) {
	frame := imaging.New(320, 240, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	fx := &fakeFrameExtractor{frame: frame}
	p := NewProcessor(fx, logging.Nop())

	video := MediaFile{
		ID: "vid1", URI: "/clip.mp4", Type: KindVideo,
		Name: "clip.mp4", Duration: 30 * time.Second,
	}

	thumb, err := p.GenerateThumbnail(context.Background(), video)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(thumb.URI) })

	assert.Equal(t, "vid1_thumbnail", thumb.ID)
	assert.Equal(t, KindImage, thumb.Type)
	assert.Equal(t, "clip.mp4_thumbnail.jpg", thumb.Name)
	assert.Equal(t, "image/jpeg", thumb.MimeType)
	assert.True(t, thumb.Derived)
	assert.Equal(t, 320, thumb.Width)
	assert.Equal(t, 240, thumb.Height)
	assert.Greater(t, thumb.Size, int64(0))
	assert.Equal(t, time.Second, fx.gotAt)
}

func TestGenerateThumbnail_ShortClipCapturesStart(t *testing.T) {
	fx := &fakeFrameExtractor{frame: imaging.New(10, 10, color.NRGBA{})}
	p := NewProcessor(fx, logging.Nop())

	video := MediaFile{ID: "v", Type: KindVideo, Name: "v.mp4", Duration: 300 * time.Millisecond}
	thumb, err := p.GenerateThumbnail(context.Background(), video)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(thumb.URI) })

	assert.Equal(t, time.Duration(0), fx.gotAt)
}

func TestGenerateThumbnail_RejectsNonVideo(t *testing.T) {
	p := NewProcessor(&fakeFrameExtractor{}, logging.Nop())

	_, err := p.GenerateThumbnail(context.Background(), MediaFile{ID: "i", Type: KindImage})
	assert.ErrorIs(t, err, common.ErrNotAVideo)
}

func TestGenerateThumbnail_ExtractorFailurePropagates(t *testing.T) {
	fx := &fakeFrameExtractor{err: errors.New("codec unavailable")}
	p := NewProcessor(fx, logging.Nop())

	_, err := p.GenerateThumbnail(context.Background(), MediaFile{ID: "v", Type: KindVideo, Duration: 5 * time.Second})
	assert.ErrorContains(t, err, "extract frame")
}
