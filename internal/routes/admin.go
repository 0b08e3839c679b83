package routes

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"evaluation-backend/internal/config"
	"evaluation-backend/internal/jwt"
)

// AdminOnly guards administrative endpoints. When a secret is
// configured the request must carry a bearer token with the admin
// role; with no secret the guard is a no-op, preserving the historical
// open-reset behavior (warned about at startup).
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Cfg == nil || config.Cfg.Secret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := jwt.DecodeAdminJWT(token, config.Cfg.Secret)
		if err != nil {
			slog.Warn("Rejected admin token", "error", err, "path", c.Request.URL.Path)
			AbortWithError(c, err)
			return
		}

		c.Set("AdminSubject", claims.Subject)
		c.Next()
	}
}

// AdminAPI registers the administrative endpoints.
func AdminAPI(r *gin.RouterGroup) {

	// Clear the vote-control ledger; evaluation history is preserved
	r.POST("/reset-timer", AdminOnly(), func(c *gin.Context) {
		svc, err := GetEvaluationService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if err := svc.ResetVotingWindow(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Voting timer reset successfully",
			"timestamp": svc.NowISO(),
		})
	})
}
