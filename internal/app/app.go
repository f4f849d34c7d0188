package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/youruser/ccrop/internal/cli"
	"github.com/youruser/ccrop/internal/clipboard"
	"github.com/youruser/ccrop/internal/failure"
	"github.com/youruser/ccrop/internal/fetch"
	imagepkg "github.com/youruser/ccrop/internal/image"
)

// Deps are the collaborators Run talks to. Clipboard is required unless
// the request sets NoClipboard.
type Deps struct {
	Fetcher   fetch.Fetcher
	Clipboard clipboard.ImageSetter
	Log       *zap.Logger

	// ClipboardHold bounds how long Run waits for a clipboard manager to
	// take over the copied image. Zero means clipboard.DefaultHold.
	ClipboardHold time.Duration
}

// Run downloads, crops and saves one image, then copies it to the clipboard
// unless the request opts out. The first error stops the run; a file that
// was already written stays on disk.
func Run(ctx context.Context, stdout io.Writer, req cli.Request, deps Deps) error {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("url", req.URL), zap.String("output", req.Output))

	fmt.Fprintln(stdout, "Downloading...")
	start := time.Now()
	data, err := deps.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return err
	}
	log.Debug("downloaded", zap.Int("bytes", len(data)), zap.Duration("took", time.Since(start)))

	fmt.Fprintln(stdout, "Processing...")
	img, err := imagepkg.Decode(data)
	if err != nil {
		return err
	}
	log.Debug("decoded", zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	cropped := imagepkg.CircularCrop(img)

	if err := imagepkg.Save(cropped, req.Output); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved to %s\n", req.Output)

	if req.NoClipboard {
		log.Debug("clipboard skipped")
		return nil
	}
	if deps.Clipboard == nil {
		return failure.New(failure.Clipboard, "no clipboard configured")
	}
	if err := clipboard.Copy(deps.Clipboard, cropped); err != nil {
		return err
	}
	log.Debug("copied to clipboard", zap.Int("size", cropped.Bounds().Dx()))

	if h, ok := deps.Clipboard.(clipboard.Holder); ok {
		hold := deps.ClipboardHold
		if hold <= 0 {
			hold = clipboard.DefaultHold
		}
		h.Hold(hold)
	}
	return nil
}
