package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "kontora/internal/core/context"
)

const HeaderRequestID = "X-Request-ID"

// Trace middleware attaches a request identifier to every request,
// reusing the inbound header when present.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = appctx.NewRequestID()
		}

		ctx := appctx.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
