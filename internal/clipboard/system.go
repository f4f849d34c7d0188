package clipboard

import (
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
	sysclip "golang.design/x/clipboard"

	"github.com/youruser/ccrop/internal/failure"
	imagepkg "github.com/youruser/ccrop/internal/image"
)

// System writes to the OS clipboard. Access is acquired on first use.
//
// On X11 the selection is served by this process, so the image is only
// pasteable while the process is alive. Callers should Hold before exiting.
type System struct {
	log *zap.Logger

	once    sync.Once
	initErr error
	init    func() error
	write   func(sysclip.Format, []byte) <-chan struct{}

	// closed once another owner replaces our selection
	changed <-chan struct{}
}

func NewSystem(log *zap.Logger) *System {
	return &System{
		log:   log,
		init:  sysclip.Init,
		write: sysclip.Write,
	}
}

// SetImage PNG-encodes the raw pixels, since that is the only image
// format the platform layer accepts, and publishes them.
func (s *System) SetImage(width, height int, rgba []byte) error {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return failure.Newf(failure.Clipboard, "invalid image payload: %dx%d with %d bytes", width, height, len(rgba))
	}

	s.once.Do(func() {
		s.initErr = s.init()
	})
	if s.initErr != nil {
		return failure.Wrap(failure.Clipboard, s.initErr)
	}

	img := &image.NRGBA{
		Pix:    rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	data, err := imagepkg.EncodePNG(img)
	if err != nil {
		return failure.Wrap(failure.Clipboard, err)
	}
	changed := s.write(sysclip.FmtImage, data)
	if changed == nil {
		return failure.New(failure.Clipboard, "clipboard rejected the image")
	}
	s.changed = changed
	s.log.Debug("image copied to clipboard", zap.Int("width", width), zap.Int("height", height), zap.Int("png_bytes", len(data)))
	return nil
}

// Hold keeps serving the last image until another owner (usually a
// clipboard manager) takes the selection or max elapses. It reports whether
// ownership moved on. Without a prior successful SetImage it returns at once.
func (s *System) Hold(max time.Duration) bool {
	if s.changed == nil {
		return false
	}
	timer := time.NewTimer(max)
	defer timer.Stop()
	select {
	case <-s.changed:
		s.log.Debug("clipboard ownership handed over")
		return true
	case <-timer.C:
		s.log.Debug("clipboard hold expired", zap.Duration("after", max))
		return false
	}
}
