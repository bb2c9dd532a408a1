package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/internal/database"
)

// HealthHandler reports service liveness for load balancers and monitoring
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler instance. The redis client may
// be nil; the report then omits the cache status.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

// Health pings the database (and redis when configured). An unreachable
// database reports 503 so orchestrators stop routing traffic here.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"database": "down",
		})
		return
	}

	status := gin.H{"status": "ok", "database": "up"}
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			status["cache"] = "down"
		} else {
			status["cache"] = "up"
		}
	}
	c.JSON(http.StatusOK, status)
}
