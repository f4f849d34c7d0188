package imagepkg

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers the WebP decoder

	"github.com/youruser/ccrop/internal/failure"
)

// Decode sniffs the format of data and returns it as an NRGBA buffer anchored at (0,0).
// Sources without an alpha channel come back fully opaque.
func Decode(data []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, failure.Wrap(failure.ImageDecode, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, failure.New(failure.ImageDecode, "image has zero dimension")
	}
	return imaging.Clone(img), nil
}
