package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alexsisay/alemu-portfolio-backend/internal/metrics"
)

type RouterConfig struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(cfg.Logger), Recover(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(Instrument(cfg.Metrics))
	}
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/", h.Index)

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/profile", h.Profile)
	api.GET("/blog", h.ListPosts)
	api.GET("/blog/:id", h.GetPost)
	api.GET("/dashboard", h.Dashboard)
	api.GET("/ai-status", h.AIStatus)
	api.POST("/ai-chat", h.Chat)

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
