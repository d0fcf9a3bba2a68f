package media

import (
	"context"
	"errors"
	"image"
	"time"
)

var errNoFrameSupport = errors.New("video frame extraction is not available on this platform")

// NoFrameSupport is the FrameExtractor for platforms without a video
// decoder. Thumbnail generation fails cleanly and uploads proceed without
// one.
type NoFrameSupport struct{}

func (NoFrameSupport) ExtractFrame(context.Context, string, time.Duration) (image.Image, error) {
	return nil, errNoFrameSupport
}
