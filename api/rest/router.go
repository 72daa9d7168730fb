package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cavebound/delved/config"
	"github.com/cavebound/delved/middleware"
)

// NewRouter assembles the gin engine with the standard middleware chain and
// the debug routes.
func NewRouter(cfg *config.Config, h *DebugHandler, logger *zap.Logger) *gin.Engine {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.TraceID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RateLimit(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst))

	r.GET("/health", h.Health)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(cfg.Server.AdminKey))
	{
		admin.GET("/state", h.State)
		admin.GET("/monsters", h.Monsters)
		admin.GET("/config", h.Config)
		admin.GET("/tasks", h.Tasks)
		admin.POST("/advance", h.Advance)
	}
	return r
}
