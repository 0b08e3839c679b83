package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AvailableEndpoints is advertised on the index page and in 404 bodies.
var AvailableEndpoints = []string{
	"/api/health",
	"/api/evaluations",
	"/api/submit-evaluation",
	"/api/check-vote/:deviceId",
	"/api/reset-timer",
	"/api/statistics",
}

// NotFoundHandler answers unknown routes with the endpoint catalog.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success":             false,
			"error":               "Endpoint not found",
			"available_endpoints": AvailableEndpoints,
		})
	}
}
