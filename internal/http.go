package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"evaluation-backend/internal/config"
	"evaluation-backend/internal/evaluation"
	"evaluation-backend/internal/routes"
	"evaluation-backend/internal/storage"
)

// corsHeaders allows any origin, matching the kiosk deployment where
// devices are served from whatever host fronts the displays.
func corsHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// requestTimeout bounds every store operation through the request
// context, so a wedged read fails the request instead of hanging.
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func HTTPServer() *gin.Engine {
	r := gin.Default()

	r.LoadHTMLGlob("web/templates/*")

	r.Use(corsHeaders)

	if config.Cfg.RequestTimeout > 0 {
		r.Use(requestTimeout(time.Duration(config.Cfg.RequestTimeout) * time.Second))
	}

	r.NoRoute(routes.NotFoundHandler())

	return r
}

// RegisterRoutes wires the API surface. The evaluation service and
// storage provider must already be injected into the gin context by
// the caller's middleware.
func RegisterRoutes(r *gin.Engine, svc *evaluation.Service) {

	// Status page with the endpoint catalog
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html.tmpl", gin.H{
			"ServerTime": svc.NowISO(),
			"Endpoints":  routes.AvailableEndpoints,
		})
	})

	api := r.Group("/api")
	api.Use(routes.ErrorHandler())

	routes.Health(api)
	routes.EvaluationsAPI(api)
	routes.StatisticsAPI(api)
	routes.AdminAPI(api)
}

// InjectProviders returns the middleware that makes the service and
// provider reachable from handlers.
func InjectProviders(svc *evaluation.Service, provider storage.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("Evaluations", svc)
		c.Set("Storage", provider)
		c.Next()
	}
}
