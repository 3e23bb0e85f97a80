package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"

	HeaderRequestID = "X-Request-ID"
)

// RequestContext tags every request with an id (taken from X-Request-ID or
// generated), stores a request-scoped logger and logs the outcome.
func RequestContext(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			reqLogger := logger.With(
				zap.String("request_id", requestID),
				zap.String("ip", c.RealIP()),
			)
			c.Set(ContextKeyRequestID, requestID)
			c.Set(ContextKeyLogger, reqLogger)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			reqLogger.Info("request",
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// GetLogger retrieves the request-scoped logger, or a no-op logger outside
// RequestContext.
func GetLogger(c echo.Context) *zap.Logger {
	if l, ok := c.Get(ContextKeyLogger).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// GetRequestID retrieves the request id set by RequestContext.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}
