package middleware

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestID tags every request with an id (the caller's, when it sends one)
// and logs one line per request.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			c.Set(ctxRequestID, id)
			c.Response().Header().Set(HeaderRequestID, id)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Printf("[http] %s %s %d %s id=%s", c.Request().Method, c.Path(), c.Response().Status, time.Since(start).Round(time.Millisecond), id)
			return nil
		}
	}
}

// RequestIDFrom returns the id set by RequestID, or a fresh one when the
// middleware is not installed.
func RequestIDFrom(c echo.Context) string {
	if id, ok := c.Get(ctxRequestID).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
