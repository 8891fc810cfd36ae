package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID attaches a correlation id to the request context so every
// log line from one turn can be tied together.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := context.WithValue(c.Request().Context(), "request_id", uuid.NewString())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
