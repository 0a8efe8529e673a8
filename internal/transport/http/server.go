package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/config"
	"github.com/vovakirdan/roomcast-server/internal/core"
)

// NewServer builds the HTTP server: health, the WebSocket endpoint and a
// small read-only API.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))
	router.GET("/api/rooms", listRoomsHandler(hub))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// LoggerMiddleware logs every HTTP request after it completes.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
