package routes

import (
	"github.com/gin-gonic/gin"

	"evaluation-backend/internal/evaluation"
	"evaluation-backend/internal/storage"
)

// Context keys set by the server bootstrap middleware.
const (
	ctxEvaluations = "Evaluations"
	ctxStorage     = "Storage"
)

// GetEvaluationService returns the evaluation service injected into
// the request context by the server bootstrap.
func GetEvaluationService(c *gin.Context) (*evaluation.Service, error) {
	value, ok := c.Get(ctxEvaluations)
	if !ok {
		return nil, ErrServiceNotAvailable
	}
	svc, ok := value.(*evaluation.Service)
	if !ok {
		return nil, ErrServiceNotAvailable
	}
	return svc, nil
}

// GetStorageProvider returns the storage provider injected into the
// request context by the server bootstrap.
func GetStorageProvider(c *gin.Context) (storage.Provider, error) {
	value, ok := c.Get(ctxStorage)
	if !ok {
		return nil, ErrServiceNotAvailable
	}
	provider, ok := value.(storage.Provider)
	if !ok {
		return nil, ErrServiceNotAvailable
	}
	return provider, nil
}
