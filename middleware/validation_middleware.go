package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/josuebusta/portfolio/dto"
	"github.com/josuebusta/portfolio/logger"
)

// ValidationMiddleware rejects bodies the album handlers cannot bind before
// they reach them.
type ValidationMiddleware struct {
	maxBodyBytes int64
}

func NewValidationMiddleware(maxBodyBytes int64) *ValidationMiddleware {
	return &ValidationMiddleware{maxBodyBytes: maxBodyBytes}
}

func (v *ValidationMiddleware) ValidateRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
			contentType := c.GetHeader("Content-Type")
			if !strings.Contains(contentType, "application/json") {
				logger.Warn(logger.EventValidationFailure, "Rejected request content type", logger.Fields(
					"path", c.Request.URL.Path,
					"content_type", contentType,
					"request_id", RequestIDFrom(c),
				))
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid content type, expected application/json.",
				})
				return
			}
		}

		if v.maxBodyBytes > 0 {
			if c.Request.ContentLength > v.maxBodyBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
					Error: fmt.Sprintf("Request body too large, maximum %d bytes allowed.", v.maxBodyBytes),
				})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, v.maxBodyBytes)
		}

		c.Next()
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}
