package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(r *gin.RouterGroup) {

	r.GET("/health", func(c *gin.Context) {
		database := "connected"

		provider, err := GetStorageProvider(c)
		if err != nil {
			database = "unavailable"
		} else if err := provider.Ping(c.Request.Context()); err != nil {
			slog.Warn("Health check database ping failed", "error", err)
			database = "unreachable"
		}

		status := "healthy"
		if database != "connected" {
			status = "degraded"
		}

		timestamp := ""
		if svc, err := GetEvaluationService(c); err == nil {
			timestamp = svc.NowISO()
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"timestamp": timestamp,
			"database":  database,
		})
	})
}
