package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	headerRequestID = "X-Request-ID"

	contextKeyRequestID = "request_id"
	contextKeyLogger    = "logger"
)

// RequestID propagates or mints a request id. The id is stored under
// "request_id" in the gin context, echoed back in the response header and
// bound to a request-scoped logger returned by Logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(contextKeyRequestID, requestID)
		c.Set(contextKeyLogger, log.WithField("request_id", requestID))
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}

// Logger returns the request-scoped log entry. Outside RequestID it falls
// back to the standard logger tagged with whatever request id is set.
func Logger(c *gin.Context) *log.Entry {
	if v, ok := c.Get(contextKeyLogger); ok {
		if entry, ok := v.(*log.Entry); ok {
			return entry
		}
	}
	return log.WithField("request_id", c.GetString(contextKeyRequestID))
}
