package imagepkg

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"
)

// CircularCrop cuts the centered square out of img and clears every pixel
// outside its inscribed circle to transparent black. Pixels on the circle
// itself are kept.
//
// The square offset truncates, so an odd difference between the sides
// leaves the extra column or row on the right or bottom.
func CircularCrop(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	size := w
	if h < size {
		size = h
	}
	if size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	xOff := (w - size) / 2
	yOff := (h - size) / 2
	origin := b.Min.Add(image.Pt(xOff, yOff))
	square := imaging.Crop(img, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(size, size))})

	// NewNRGBA is zeroed, so only pixels inside the circle need writing.
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	radius := float32(size) / 2
	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		dy := float32(y) - cy
		row := y * square.Stride
		for x := 0; x < size; x++ {
			dx := float32(x) - cx
			if math32.Sqrt(dx*dx+dy*dy) > radius {
				continue
			}
			i := row + x*4
			copy(out.Pix[y*out.Stride+x*4:y*out.Stride+x*4+4], square.Pix[i:i+4])
		}
	}
	return out
}
