package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"lessonplan/pkg/logger"
)

// RequestLog writes one line per request. Bodies are never logged; they carry
// transcripts.
func RequestLog(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			kv := []interface{}{
				"request_id", GetRequestID(c),
				"method", req.Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"bytes_out", c.Response().Size,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			switch status := c.Response().Status; {
			case status >= 500:
				log.Error("request", append(kv, "error", errString(err))...)
			case status >= 400:
				log.Warn("request", kv...)
			default:
				log.Info("request", kv...)
			}
			return nil
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
