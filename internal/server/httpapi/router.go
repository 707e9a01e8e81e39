// Package httpapi exposes the task store over HTTP with gin: the /tasks
// routes, CORS, request ids and access logging.
package httpapi

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine serving the task routes.
func NewRouter(svc *tasks.Service, logger logging.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))
	r.Use(cors.New(corsConfig(allowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	h := NewTaskHandler(svc, logger)
	registerTaskRoutes(r.Group(common.TasksPath), h)
	return r
}

func registerTaskRoutes(g *gin.RouterGroup, h *TaskHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", common.RequestIDHeaderName},
		ExposeHeaders: []string{"Content-Length", "Content-Type", common.RequestIDHeaderName},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
