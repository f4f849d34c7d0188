package clipboard

import (
	"image"
	"time"

	"github.com/youruser/ccrop/internal/failure"
)

// ImageSetter is the only clipboard capability the pipeline needs.
// rgba holds width*height pixels, 4 bytes each, rows packed without padding.
type ImageSetter interface {
	SetImage(width, height int, rgba []byte) error
}

// Holder is implemented by setters whose content disappears when the
// process exits. Hold blocks for at most max.
type Holder interface {
	Hold(max time.Duration) bool
}

// DefaultHold is how long a run stays alive after copying so a clipboard
// manager can take over the selection.
const DefaultHold = 2 * time.Second

// Copy hands img to setter as raw RGBA. Failures are reported as failure.Clipboard.
func Copy(setter ImageSetter, img *image.NRGBA) error {
	w, h, pix := RawRGBA(img)
	if err := setter.SetImage(w, h, pix); err != nil {
		if failure.KindOf(err) == failure.Clipboard {
			return err
		}
		return failure.Wrap(failure.Clipboard, err)
	}
	return nil
}

// RawRGBA returns img's dimensions and its pixels packed row by row.
func RawRGBA(img *image.NRGBA) (int, int, []byte) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 0, w*h*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[i:i+w*4]...)
	}
	return w, h, pix
}
