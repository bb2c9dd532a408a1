package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelina-r/foodgram/backend/internal/apperr"
)

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler maps application errors attached via c.Error to HTTP
// responses and recovers panics. Internal detail is logged, never sent to
// the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := apperr.As(err); ok {
			if appErr.Kind == apperr.KindInternal {
				log.Printf("internal error: %v", appErr)
			}
			c.JSON(appErr.Status(), ErrorResponse{Error: appErr.Message})
			return
		}

		log.Printf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
