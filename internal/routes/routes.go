package routes

import (
	"net/http"

	"github.com/01moynul/ytgenius-golang/internal/auth"
	"github.com/01moynul/ytgenius-golang/internal/handlers"
	"github.com/01moynul/ytgenius-golang/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// CORSMiddleware tells the browser which origins may call the API.
// allowOrigin "*" (the default) admits any frontend.
func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		// 1. Allowed origin
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)

		// 2. Credentials are only allowed together with a concrete origin
		if allowOrigin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		// 3. Allow the headers we actually use ("Authorization" carries the bearer token)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")

		// 4. Allow the HTTP methods we use in our API
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		// 5. Handle the "Preflight" OPTIONS request
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Options configures SetupRouter.
type Options struct {
	Resolver        auth.Resolver
	Logger          *zap.Logger
	CORSAllowOrigin string
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// --- APPLY THE CORS GUARD ---
	router.Use(CORSMiddleware(opts.CORSAllowOrigin))

	// --- Public Routes ---
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		// --- Protected Routes (Login Required) ---
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(opts.Resolver, logger))
		{
			protected.POST("/generate", h.Generate)
			protected.GET("/profile", h.GetProfile)
			protected.GET("/history", h.GetHistory)
		}
	}

	return router
}
