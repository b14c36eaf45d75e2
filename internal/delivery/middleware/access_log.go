package middleware

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "nudge/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccessLog writes one line per request through the request-scoped logger.
// Outside debug mode only failed requests are logged.
func AccessLog(logger *slog.Logger, debug bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				// the error handler has not written yet
				status = http.StatusInternalServerError
				if code, ok := errorStatus(err); ok {
					status = code
				}
			}
			if !debug && status < http.StatusBadRequest {
				return err
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			req := c.Request()
			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			deliverycontext.Logger(req.Context(), logger).LogAttrs(req.Context(), level, "HTTP request", attrs...)

			return err
		}
	}
}

type httpCoder interface {
	HTTPCode() int
}

func errorStatus(err error) (int, bool) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, true
	}

	var coder httpCoder
	if errors.As(err, &coder) {
		return coder.HTTPCode(), true
	}

	return 0, false
}
