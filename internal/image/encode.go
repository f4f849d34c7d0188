package imagepkg

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/youruser/ccrop/internal/failure"
)

// Save writes img to path in the format named by its extension.
// An unknown extension fails before the file is created.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return &failure.Error{
			Kind: failure.FileWrite,
			Msg:  fmt.Sprintf("Failed to save to '%s': %v", path, err),
			Err:  err,
		}
	}
	return nil
}

// EncodePNG returns PNG bytes of img.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
