package mockscene

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/lokanhome/lokan-go/errors"
	"github.com/lokanhome/lokan-go/logger"
)

const (
	headerRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"
)

// recovery turns handler panics into a 500 AppError body.
func recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", rec),
					"stack":  string(debug.Stack()),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})
				status, body := apperrors.ResponseFor(fmt.Errorf("panic: %v", rec))
				c.AbortWithStatusJSON(status, body)
			}
		}()
		c.Next()
	}
}

// requestID echoes the caller's X-Request-Id or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// bodyLimit caps request bodies at limit bytes.
func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// requestLogger logs every request at a level derived from its status.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		reqLog := log.WithFields(logger.Fields(logger.FieldRequestID, c.GetString(ctxRequestID)))
		fields := logger.Fields(
			logger.FieldMethod, c.Request.Method,
			logger.FieldURL, c.Request.URL.Path,
			logger.FieldStatusCode, status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		)
		switch {
		case status >= 500:
			reqLog.Error("request completed", fields)
		case status >= 400:
			reqLog.Warn("request completed", fields)
		default:
			reqLog.Debug("request completed", fields)
		}
	}
}
