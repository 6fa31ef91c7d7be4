package http

import (
	"github.com/labstack/echo/v4"

	xutil "StockLens/pkg/util"
)

// ParseIntList parses a comma separated list of positive ints, skipping junk.
func ParseIntList(s string) []int { return xutil.ParseIntList(s) }

// ClientKey returns the key used for per-client rate limiting.
func ClientKey(c echo.Context) string { return c.RealIP() }
