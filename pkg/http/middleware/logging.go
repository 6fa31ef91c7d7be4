package middleware

import (
	"time"

	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs every request at debug level, 5xx responses as errors
// and anything slower than slowThreshold as a warning.
func RequestLogging(l *xlogger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error response so the status is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)
			fields := []xlogger.Field{
				xlogger.String("method", req.Method),
				xlogger.String("route", routeLabel(c)),
				xlogger.String("uri", req.RequestURI),
				xlogger.String("remote", c.RealIP()),
				xlogger.Int("status", res.Status),
				xlogger.Duration("latency", latency),
				xlogger.Int64("bytes", res.Size),
			}

			switch {
			case res.Status >= 500:
				l.Error("http request failed", fields...)
			case slowThreshold > 0 && latency >= slowThreshold:
				l.Warn("http request slow", fields...)
			default:
				l.Debug("http request", fields...)
			}
			return nil
		}
	}
}
