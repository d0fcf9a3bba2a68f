package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/voyageapp/voyage-client/internal/upload"
)

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".m4v": {}, ".webm": {}, ".avi": {},
}

// pathPicker is the CLI stand-in for the device media picker: it prompts for
// a local file path. An empty line cancels, matching the picker contract.
type pathPicker struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPathPicker(reader *bufio.Reader, out io.Writer) *pathPicker {
	return &pathPicker{reader: reader, out: out}
}

func (p *pathPicker) RequestLibraryPermission(context.Context) error { return nil }
func (p *pathPicker) RequestCameraPermission(context.Context) error  { return nil }

func (p *pathPicker) PickFromLibrary(_ context.Context, kind upload.PickKind) (*upload.Asset, error) {
	path, err := GetSimpleText(p.reader, fmt.Sprintf("Path to %s file (empty to cancel)", kind), p.out)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	return p.assetFor(path), nil
}

func (p *pathPicker) CaptureFromCamera(ctx context.Context) (*upload.Asset, error) {
	return p.PickFromLibrary(ctx, upload.PickImages)
}

func (p *pathPicker) assetFor(path string) *upload.Asset {
	ext := strings.ToLower(filepath.Ext(path))
	_, isVideo := videoExtensions[ext]
	return &upload.Asset{
		URI:      path,
		FileName: filepath.Base(path),
		IsVideo:  isVideo,
	}
}
