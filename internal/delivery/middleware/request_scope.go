// Package middleware holds echo middleware shared by the API server.
package middleware

import (
	"log/slog"

	deliverycontext "nudge/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestScope accepts or mints an X-Request-Id and binds it, with a tagged
// logger, to the request context.
func RequestScope(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			ctx, _ := deliverycontext.Scope(req.Context(), logger, req.Header.Get(deliverycontext.HeaderXRequestID))
			requestID := deliverycontext.RequestIDFrom(ctx)

			deliverycontext.SetRequestID(c, requestID)
			c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
