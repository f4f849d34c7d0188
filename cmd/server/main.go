package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/youruser/ccrop/internal/api"
	"github.com/youruser/ccrop/internal/cli"
	"github.com/youruser/ccrop/internal/fetch"
	"github.com/youruser/ccrop/internal/logging"
)

// maxSourceBytes caps each downloaded source image.
const maxSourceBytes = 20 << 20

func main() {
	level := zapcore.InfoLevel
	if os.Getenv("VERBOSE") != "" {
		level = zapcore.DebugLevel
	}
	log := logging.NewLevel(os.Stderr, level)
	defer log.Sync() //nolint:errcheck

	gin.SetMode(gin.ReleaseMode)
	h := api.NewHandlers(fetch.NewPublic("ccrop-server/"+cli.Version, maxSourceBytes), log)
	r := api.NewRouter(h, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("starting server", zap.String("addr", "http://localhost:"+port))
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped", zap.Error(err))
	}
}
