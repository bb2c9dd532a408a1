package router

import (
	"github.com/gin-gonic/gin"

	"github.com/avelina-r/foodgram/backend/internal/api"
	"github.com/avelina-r/foodgram/backend/internal/middleware"
)

// Options bundles the handlers and middleware the router composes
type Options struct {
	AuthHandler      *api.AuthHandler
	UserHandler      *api.UserHandler
	ReferenceHandler *api.ReferenceHandler
	RecipeHandler    *api.RecipeHandler
	HealthHandler    *api.HealthHandler
	TokenValidator   middleware.TokenValidator
	RateLimiter      *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Auth, reference data and recipe reads are reachable without a token;
	// a token on the read routes only adds the per-viewer annotations
	opts.AuthHandler.RegisterRoutes(v1)
	opts.ReferenceHandler.RegisterRoutes(v1)
	opts.HealthHandler.RegisterRoutes(v1)

	reads := v1.Group("")
	reads.Use(middleware.OptionalAuthMiddleware(opts.TokenValidator))
	opts.RecipeHandler.RegisterReadRoutes(reads)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(opts.TokenValidator))
	if opts.RateLimiter != nil {
		protected.Use(opts.RateLimiter.Middleware())
	}
	opts.UserHandler.RegisterRoutes(protected)
	opts.RecipeHandler.RegisterRoutes(protected)

	return router
}
