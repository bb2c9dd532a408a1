package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avelina-r/foodgram/backend/config"
)

type pageParams struct {
	Limit  int
	Offset int
}

// parsePageParams reads page and limit query parameters, clamped to the
// configured bounds. Pages are 1-based.
func parsePageParams(c *gin.Context, limits config.Limits) pageParams {
	limit := limits.DefaultPageSize
	if raw := strings.TrimSpace(c.Query(limits.QueryLimit)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > limits.MaxPageSize {
		limit = limits.MaxPageSize
	}

	page := 1
	if raw := strings.TrimSpace(c.Query(limits.QueryPage)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	return pageParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
