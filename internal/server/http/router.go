package httpserver

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"xiangqi/internal/server/game"
)

// NewRouter 设置路由。webDir 为空时不挂静态文件
func NewRouter(mgr *game.Manager, logger *slog.Logger, webDir string) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	h := NewHandler(mgr, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	api := r.Group("/api")
	{
		api.POST("/new_game", h.NewGame)
		api.POST("/state", h.State)
		api.POST("/click", h.Click)
		api.POST("/play", h.Play)
		api.POST("/undo", h.Undo)
		api.POST("/reset", h.Reset)
		api.GET("/health", h.Health)
	}

	RegisterStaticRoutes(r, webDir)
	return r
}

// requestLogger 每个请求一行 debug 日志
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}
