package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/api"
	"github.com/avelina-r/foodgram/backend/internal/middleware"
	"github.com/avelina-r/foodgram/backend/internal/router"
	"github.com/avelina-r/foodgram/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New wires the services, handlers and routes. redisClient and s3cfg may be
// nil; the server then runs without rate limiting, list caching and image
// upload.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	referenceService := service.NewReferenceService(db)
	recipeService := service.NewRecipeService(db)
	listService := service.NewShoppingListService(db, redisClient)
	relationService := service.NewRelationService(db, listService)

	var imageService *service.ImageService
	if s3cfg != nil {
		imageService = service.NewImageService(s3cfg)
	}

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     120,
			KeyPrefix: "foodgram:rate_limit",
		})
	}

	engine := router.SetupRouter(router.Options{
		AuthHandler:      api.NewAuthHandler(authService),
		UserHandler:      api.NewUserHandler(userService, relationService, cfg.Limits),
		ReferenceHandler: api.NewReferenceHandler(referenceService, cfg.Limits),
		RecipeHandler: api.NewRecipeHandler(
			recipeService, relationService, listService, userService, imageService, cfg.Limits),
		HealthHandler:  api.NewHealthHandler(db, redisClient),
		TokenValidator: authService,
		RateLimiter:    rateLimiter,
	})

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Engine exposes the router, used by tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
