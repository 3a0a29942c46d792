package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"
)

// RequestID keeps a caller-supplied X-Request-Id or mints a uuid, and echoes
// it back on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" || len(rid) > 64 {
				rid = uuid.NewString()
			}
			c.Set(ctxRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c echo.Context) string {
	rid, _ := c.Get(ctxRequestID).(string)
	return rid
}
