package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
)

// ErrCodePayloadTooLarge is returned when a declared Content-Length is over the limit
const ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"

// BodyLimit caps request bodies at maxBytes; zero or less disables the cap.
// A declared length over the cap is refused with 413 before the handler
// runs, and a streamed body fails its read once the cap is crossed.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size", c.GetString(RequestIDKey)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
