package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/ccrop/internal/failure"
)

func noiseImage(w, h int, seed int64) *image.NRGBA {
	r := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	r.Read(img.Pix)
	return img
}

func encode(t *testing.T, img image.Image, f imaging.Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, f))
	return buf.Bytes()
}

func insideCircle(x, y, size int) bool {
	r := float32(size) / 2
	dx, dy := float32(x)-r, float32(y)-r
	return math32.Sqrt(dx*dx+dy*dy) <= r
}

func TestDecode_PNGRoundTrip(t *testing.T) {
	src := noiseImage(7, 5, 1)

	got, err := Decode(encode(t, src, imaging.PNG))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 7, 5), got.Bounds())
	assert.Equal(t, src.Pix, got.Pix)
}

func TestDecode_AddsOpaqueAlpha(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range gray.Pix {
		gray.Pix[i] = 0x80
	}

	got, err := Decode(encode(t, gray, imaging.PNG))
	require.NoError(t, err)
	require.Len(t, got.Pix, 4*3*4)
	for i := 3; i < len(got.Pix); i += 4 {
		assert.Equal(t, uint8(255), got.Pix[i])
	}
}

func TestDecode_JPEG(t *testing.T) {
	src := imaging.New(16, 8, color.NRGBA{R: 200, G: 10, B: 10, A: 255})

	got, err := Decode(encode(t, src, imaging.JPEG))
	require.NoError(t, err)
	assert.Equal(t, 16, got.Bounds().Dx())
	assert.Equal(t, 8, got.Bounds().Dy())
	assert.Equal(t, uint8(255), got.Pix[3])
}

func TestDecode_Failures(t *testing.T) {
	png := encode(t, noiseImage(10, 10, 2), imaging.PNG)
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("this is not an image, just a text file\n")},
		{"empty", nil},
		{"truncated png", png[:len(png)/2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.Equal(t, failure.ImageDecode, failure.KindOf(err))
		})
	}
}

func TestCircularCrop_Dimensions(t *testing.T) {
	for _, sz := range [][2]int{{1, 1}, {2, 2}, {100, 60}, {60, 100}, {5, 2}, {3, 9}, {33, 33}} {
		out := CircularCrop(noiseImage(sz[0], sz[1], 3))
		side := sz[0]
		if sz[1] < side {
			side = sz[1]
		}
		assert.Equal(t, image.Rect(0, 0, side, side), out.Bounds(), "%v", sz)
		assert.Len(t, out.Pix, side*side*4)
	}
}

func TestCircularCrop_MaskRule(t *testing.T) {
	for _, sz := range [][2]int{{40, 40}, {41, 30}, {30, 41}, {17, 64}} {
		w, h := sz[0], sz[1]
		src := noiseImage(w, h, int64(w*h))
		out := CircularCrop(src)

		size := out.Bounds().Dx()
		xOff, yOff := (w-size)/2, (h-size)/2
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				got := out.NRGBAAt(x, y)
				if insideCircle(x, y, size) {
					require.Equal(t, src.NRGBAAt(x+xOff, y+yOff), got, "pixel (%d,%d) of %v", x, y, sz)
				} else {
					require.Equal(t, color.NRGBA{}, got, "pixel (%d,%d) of %v", x, y, sz)
				}
			}
		}
	}
}

func TestCircularCrop_Deterministic(t *testing.T) {
	src := noiseImage(81, 47, 9)
	a := CircularCrop(src)
	b := CircularCrop(src)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestCircularCrop_DoesNotAliasSource(t *testing.T) {
	src := noiseImage(10, 10, 4)
	before := append([]byte(nil), src.Pix...)

	out := CircularCrop(src)
	out.Pix[len(out.Pix)/2] ^= 0xff

	assert.Equal(t, before, src.Pix)
}

func TestCircularCrop_SquareHasNoOffset(t *testing.T) {
	src := noiseImage(9, 9, 5)
	out := CircularCrop(src)
	assert.Equal(t, src.NRGBAAt(4, 4), out.NRGBAAt(4, 4))
	assert.Equal(t, src.NRGBAAt(1, 4), out.NRGBAAt(1, 4))
	assert.Equal(t, src.NRGBAAt(4, 1), out.NRGBAAt(4, 1))
}

func TestCircularCrop_BoundaryIncluded(t *testing.T) {
	src := imaging.New(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	out := CircularCrop(src)

	// radius 1 centered at (1,1): (0,1) and (1,0) are exactly on the circle.
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, out.NRGBAAt(0, 1))
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, out.NRGBAAt(1, 1))
}

func TestCircularCrop_OffsetTruncates(t *testing.T) {
	src := noiseImage(5, 2, 6)
	out := CircularCrop(src)
	// (5-2)/2 == 1
	assert.Equal(t, src.NRGBAAt(2, 1), out.NRGBAAt(1, 1))
}

func TestCircularCrop_KeepsTranslucency(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	out := CircularCrop(imaging.New(6, 6, c))
	assert.Equal(t, c, out.NRGBAAt(3, 3))
}

func TestCircularCrop_NonZeroOrigin(t *testing.T) {
	src := noiseImage(30, 20, 7)
	sub := src.SubImage(image.Rect(5, 5, 25, 15)).(*image.NRGBA)

	out := CircularCrop(sub)
	require.Equal(t, image.Rect(0, 0, 10, 10), out.Bounds())
	// sub is 20x10, so the square starts 5 columns in: absolute (10,5).
	assert.Equal(t, src.NRGBAAt(15, 10), out.NRGBAAt(5, 5))
}

func TestCircularCrop_Empty(t *testing.T) {
	out := CircularCrop(image.NewNRGBA(image.Rect(0, 0, 0, 4)))
	assert.True(t, out.Bounds().Empty())
	assert.Empty(t, out.Pix)
}

func TestCircularCrop_Landscape100x60(t *testing.T) {
	fill := color.NRGBA{R: 12, G: 200, B: 90, A: 255}
	out := CircularCrop(imaging.New(100, 60, fill))

	require.Equal(t, image.Rect(0, 0, 60, 60), out.Bounds())
	for _, p := range []image.Point{{0, 0}, {59, 0}, {0, 59}, {59, 59}} {
		assert.Equal(t, color.NRGBA{}, out.NRGBAAt(p.X, p.Y), "corner %v", p)
	}
	assert.Equal(t, fill, out.NRGBAAt(30, 30))
}

func TestSave_ByExtension(t *testing.T) {
	dir := t.TempDir()
	img := CircularCrop(noiseImage(12, 12, 8))

	for _, name := range []string{"out.png", "out.jpg", "out.JPEG", "out.gif", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(img, path), name)
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size())
	}

	got, err := imaging.Open(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	assert.Equal(t, img.Pix, imaging.Clone(got).Pix)
}

func TestSave_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.xyz", "noext"} {
		path := filepath.Join(dir, name)
		err := Save(noiseImage(4, 4, 9), path)
		require.Error(t, err)
		assert.Equal(t, failure.FileWrite, failure.KindOf(err))
		assert.Contains(t, err.Error(), path)
		assert.NoFileExists(t, path)
	}
}

func TestSave_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.png")
	err := Save(noiseImage(4, 4, 10), path)
	require.Error(t, err)
	assert.Equal(t, failure.FileWrite, failure.KindOf(err))
}

func TestEncodePNG(t *testing.T) {
	img := noiseImage(3, 3, 11)
	data, err := EncodePNG(img)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)
}
