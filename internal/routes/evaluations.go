package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"evaluation-backend/internal/evaluation"
)

// EvaluationsAPI registers the evaluation collection endpoints.
func EvaluationsAPI(r *gin.RouterGroup) {

	// All stored evaluations, newest first
	r.GET("/evaluations", func(c *gin.Context) {
		svc, err := GetEvaluationService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		records, err := svc.List(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"evaluations": records,
			"total":       len(records),
		})
	})

	// New evaluation submission, one per device per local calendar day
	r.POST("/submit-evaluation", func(c *gin.Context) {
		svc, err := GetEvaluationService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		var sub evaluation.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			slog.Warn("Invalid submission payload", "error", err)
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		id, err := svc.Submit(c.Request.Context(), sub)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Evaluation saved successfully",
			"id":      id,
		})
	})

	// Same-day vote check for a device
	r.GET("/check-vote/:deviceId", func(c *gin.Context) {
		svc, err := GetEvaluationService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		deviceID := c.Param("deviceId")
		if deviceID == "" {
			AbortWithError(c, ErrDeviceIDRequired)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"deviceId":      deviceID,
			"hasVotedToday": svc.HasVotedToday(c.Request.Context(), deviceID),
			"timestamp":     svc.NowISO(),
		})
	})
}

// StatisticsAPI registers the aggregate statistics endpoint.
func StatisticsAPI(r *gin.RouterGroup) {
	r.GET("/statistics", func(c *gin.Context) {
		svc, err := GetEvaluationService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		stats, err := svc.Statistics(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"statistics": stats,
		})
	})
}
