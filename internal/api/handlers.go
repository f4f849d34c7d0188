package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/ccrop/internal/failure"
	"github.com/youruser/ccrop/internal/fetch"
	imagepkg "github.com/youruser/ccrop/internal/image"
)

type Handlers struct {
	fetcher fetch.Fetcher
	log     *zap.Logger
}

func NewHandlers(f fetch.Fetcher, log *zap.Logger) *Handlers {
	return &Handlers{fetcher: f, log: log}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// crop downloads ?url=, applies the circular crop and replies with a PNG.
func (h *Handlers) crop(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url query parameter", "kind": failure.InvalidURL.String()})
		return
	}

	data, err := h.fetcher.Fetch(c.Request.Context(), url)
	if err != nil {
		h.fail(c, err)
		return
	}
	img, err := imagepkg.Decode(data)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := imagepkg.EncodePNG(imagepkg.CircularCrop(img))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", out)
}

func (h *Handlers) fail(c *gin.Context, err error) {
	kind := failure.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case failure.InvalidURL:
		status = http.StatusBadRequest
	case failure.Network:
		status = http.StatusBadGateway
	case failure.ImageDecode:
		status = http.StatusUnprocessableEntity
	}
	h.log.Warn("crop failed", zap.String("kind", kind.String()), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind.String()})
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
