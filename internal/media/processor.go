package media

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/logging"
)

// thumbnailCapturePoint is how far into a video the representative frame is
// taken. Clips shorter than this are captured at the start.
const thumbnailCapturePoint = time.Second

// FrameExtractor captures a single frame of a video at the given offset.
// Frame capture is a platform capability (camera stack / media codecs), so it
// is injected rather than implemented here.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, uri string, at time.Duration) (image.Image, error)
}

// Processor performs pure, stateless transformations of a MediaFile's bytes
// and metadata. It reads and writes temporary local files; it never touches
// the network or progress state.
type Processor struct {
	frames FrameExtractor
	log    logging.Logger
}

func NewProcessor(frames FrameExtractor, log logging.Logger) *Processor {
	return &Processor{frames: frames, log: log}
}

// ResizeImage returns a new MediaFile with updated URI, size and dimensions.
// It is a no-op for non-image files or a nil opts. Internal failures (I/O,
// codec) are logged and the original file is returned unchanged: resize
// failures are non-fatal to the upload flow.
func (p *Processor) ResizeImage(ctx context.Context, file MediaFile, opts *ResizeOptions) MediaFile {
	if opts == nil || file.Type != KindImage {
		return file
	}

	img, err := imaging.Open(file.URI)
	if err != nil {
		p.log.Error(ctx, "resize: open image", "file_id", file.ID, "error", err)
		return file
	}

	resized := imaging.Resize(img, opts.Width, opts.Height, imaging.Lanczos)

	quality := opts.Quality
	if quality <= 0 || quality > 1 {
		quality = 0.8
	}

	out, err := os.CreateTemp("", "voyage-resize-*.jpg")
	if err != nil {
		p.log.Error(ctx, "resize: create temp file", "file_id", file.ID, "error", err)
		return file
	}
	out.Close()

	if err := imaging.Save(resized, out.Name(), imaging.JPEGQuality(int(quality*100))); err != nil {
		p.log.Error(ctx, "resize: encode image", "file_id", file.ID, "error", err)
		os.Remove(out.Name())
		return file
	}

	info, err := os.Stat(out.Name())
	if err != nil {
		p.log.Error(ctx, "resize: stat output", "file_id", file.ID, "error", err)
		return file
	}

	bounds := resized.Bounds()
	file.URI = out.Name()
	file.Size = info.Size()
	file.Width = bounds.Dx()
	file.Height = bounds.Dy()
	return file
}

// CompressVideo is an extension point and currently a passthrough. A future
// implementation must preserve ID and Type and only alter URI and Size.
func (p *Processor) CompressVideo(ctx context.Context, file MediaFile) MediaFile {
	if file.Type != KindVideo {
		return file
	}
	p.log.Debug(ctx, "video compression not implemented, passing through", "file_id", file.ID)
	return file
}

// GenerateThumbnail produces a new image MediaFile holding a representative
// frame of the video, captured one second into playback (or at the start for
// shorter clips). The result carries a derived ID of the form
// "<original>_thumbnail" and Derived=true.
func (p *Processor) GenerateThumbnail(ctx context.Context, videoFile MediaFile) (MediaFile, error) {
	if videoFile.Type != KindVideo {
		return MediaFile{}, common.ErrNotAVideo
	}

	at := thumbnailCapturePoint
	if videoFile.Duration > 0 && videoFile.Duration < at {
		at = 0
	}

	frame, err := p.frames.ExtractFrame(ctx, videoFile.URI, at)
	if err != nil {
		return MediaFile{}, fmt.Errorf("extract frame: %w", err)
	}

	out, err := os.CreateTemp("", "voyage-thumb-*.jpg")
	if err != nil {
		return MediaFile{}, fmt.Errorf("create temp file: %w", err)
	}
	out.Close()

	if err := imaging.Save(frame, out.Name(), imaging.JPEGQuality(80)); err != nil {
		os.Remove(out.Name())
		return MediaFile{}, fmt.Errorf("encode thumbnail: %w", err)
	}

	info, err := os.Stat(out.Name())
	if err != nil {
		return MediaFile{}, fmt.Errorf("stat thumbnail: %w", err)
	}

	bounds := frame.Bounds()
	return MediaFile{
		ID:       videoFile.ID + "_thumbnail",
		URI:      out.Name(),
		Type:     KindImage,
		Name:     videoFile.Name + "_thumbnail.jpg",
		Size:     info.Size(),
		MimeType: "image/jpeg",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Derived:  true,
	}, nil
}
