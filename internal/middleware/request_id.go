package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/logger"
)

// RequestIDHeader carries the request identifier in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier, echoes it back and
// stores a logger carrying it in the request context.
func RequestID(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = zap.NewNop()
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		reqLogger := base.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.ContextWithLogger(c.Request.Context(), reqLogger))

		c.Next()
	}
}
