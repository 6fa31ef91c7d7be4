package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover converts handler panics into a 500 envelope.
func Recover(l *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					if l != nil {
						l.Error("panic recovered",
							xlogger.Error(perr),
							xlogger.String("route", c.Path()),
							xlogger.String("stack", string(debug.Stack())),
						)
					}
					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
