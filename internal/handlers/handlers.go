package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/ytgenius-golang/internal/generation"
	"github.com/01moynul/ytgenius-golang/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Service *generation.Service
	Store   store.Store // only used by the health check; nil when the DB is down at startup
	Logger  *zap.Logger
}

func New(svc *generation.Service, st store.Store, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{Service: svc, Store: st, Logger: logger}
}

// statusFor maps a failure category to its HTTP status.
func statusFor(kind generation.Kind) int {
	switch kind {
	case generation.KindBadRequest:
		return http.StatusBadRequest
	case generation.KindUnauthenticated:
		return http.StatusUnauthorized
	case generation.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case generation.KindServiceUnavailable, generation.KindMisconfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"detail": msg}. Only the generic message reaches the
// client; the cause is logged.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var genErr *generation.Error
	if !errors.As(err, &genErr) {
		h.Logger.Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}

	status := statusFor(genErr.Kind)
	if genErr.Err != nil {
		h.Logger.Warn("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("kind", genErr.Kind.String()),
			zap.Int("status", status),
			zap.Error(genErr.Err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"detail": genErr.Message})
}
