package server

import (
	"log/slog"
	"net/http"
	"time"

	"sectorlens/internal/config"
	"sectorlens/internal/handler"
	"sectorlens/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, analyzeHandler *handler.AnalyzeHandler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(requestLogger(), gin.CustomRecovery(handler.Recover))

	allowedOrigins := []string{"http://localhost:" + cfg.Port}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := r.Group("/api")
	api.POST("/analyze-country", analyzeHandler.AnalyzeCountry)
	api.GET("/health", analyzeHandler.GetHealth)

	index, err := web.IndexHTML()
	if err != nil {
		return nil, err
	}
	assets, err := web.Assets()
	if err != nil {
		return nil, err
	}

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.StaticFS("/assets", http.FS(assets))

	return r, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
