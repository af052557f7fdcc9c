package middleware

import (
	"errors"
	"net/http"

	"github.com/01moynul/ytgenius-golang/internal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// AuthMiddleware resolves the bearer token into an Identity before any
// handler runs. Nothing downstream, including the datastore, is touched
// for a request that fails here.
func AuthMiddleware(resolver auth.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Check the resolver is configured ---
		if resolver == nil {
			logger.Error("identity resolver not initialized")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "Service is not configured. Please try again later."})
			return
		}

		// 2. --- Get Authorization Header ---
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "No Token"})
			return
		}

		// 3. --- Resolve the identity ---
		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			cause := "invalid_token"
			if errors.Is(err, auth.ErrResolverTimeout) {
				cause = "timeout"
			}
			logger.Warn("authentication failed",
				zap.String("cause", cause),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication Timeout/Error"})
			return
		}

		// 4. --- Success ---
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware.
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok && identity != nil
}
