package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/voyageapp/voyage-client/internal/media"
	"github.com/voyageapp/voyage-client/internal/upload"
)

const avatarEdge = 512

func avatarUploadOptions() *upload.Options {
	return &upload.Options{
		Folder:          "pets/avatars",
		UsePublicBucket: true,
		Resize:          &media.ResizeOptions{Width: avatarEdge, Height: avatarEdge},
	}
}

// Upload picks a local media file and uploads it, echoing progress until the
// transfer settles.
func (a *App) Upload(ctx context.Context) error {
	file, err := a.uploads.PickMedia(ctx, nil)
	if err != nil {
		fmt.Println(a.tr.T("upload.failed", err))
		return err
	}
	if file == nil {
		return nil
	}

	folder, err := GetSimpleText(a.reader, "Destination folder (empty for default)", os.Stdout)
	if err != nil {
		return err
	}

	opts := &upload.Options{Folder: folder, GenerateThumbnail: file.Type == media.KindVideo}
	fmt.Println(a.tr.T("upload.in_progress", file.Name))

	done := make(chan upload.Result, 1)
	go func() { done <- a.uploads.UploadFile(ctx, *file, opts) }()

	ticker := time.NewTicker(a.config.ProgressPollInterval)
	defer ticker.Stop()
	for {
		select {
		case res := <-done:
			if !res.Success {
				fmt.Println(a.tr.T("upload.failed", res.Error))
				return fmt.Errorf("%s", res.Error)
			}
			fmt.Println(a.tr.T("upload.done"))
			fmt.Printf("Path: %s\nURL:  %s\n", res.FilePath, res.PublicURL)
			if res.ThumbnailURL != "" {
				fmt.Printf("Thumbnail: %s\n", res.ThumbnailURL)
			}
			return nil
		case <-ticker.C:
			if p := a.uploads.Progress(file.ID); p != nil {
				fmt.Printf("  %d%% (%s)\n", p.Progress, p.Status)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// DeleteUpload removes an object by the exact path printed after an upload.
func (a *App) DeleteUpload(ctx context.Context, path string) error {
	if err := a.uploads.DeleteByPath(ctx, path, nil); err != nil {
		fmt.Println(a.tr.T("error.server"))
		return err
	}
	fmt.Println("Deleted", path)
	return nil
}
