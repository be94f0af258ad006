package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	httpmw "github.com/a-shrinked-org/plato-unchained/internal/infrastructure/http/middleware"
	"github.com/a-shrinked-org/plato-unchained/pkg/config"
	pkgjwt "github.com/a-shrinked-org/plato-unchained/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	summaryHandler *SummaryHandler
	jwtManager     *pkgjwt.Manager
}

// NewRouter creates a new router with all handlers. jwtManager may be nil,
// which leaves the API open.
func NewRouter(cfg *config.Config, summaryHandler *SummaryHandler, jwtManager *pkgjwt.Manager) *Router {
	return &Router{
		cfg:            cfg,
		summaryHandler: summaryHandler,
		jwtManager:     jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.jwtManager != nil {
		v1.Use(httpmw.EchoAuth(rt.jwtManager))
	}

	v1.POST("/summaries", rt.summaryHandler.Create)
	v1.POST("/summaries/asr", rt.summaryHandler.CreateFromASR)
	v1.GET("/summaries/:id", rt.summaryHandler.Get)
	v1.GET("/summaries/:id/artifact", rt.summaryHandler.GetArtifact)
	v1.GET("/runs/:id", rt.summaryHandler.GetRun)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
