package repository

import "errors"

var (
	// ErrUnavailable means the provider could not deliver any usable data.
	ErrUnavailable = errors.New("market data unavailable")
	// ErrNoData means the provider answered but the series was empty.
	ErrNoData = errors.New("no data returned")
	// ErrInvalidRange is returned for ranges outside the supported set.
	ErrInvalidRange = errors.New("invalid range")
	// ErrSymbolNotFound is returned when the provider does not know a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrInvalidSymbol is returned when a request carries no usable symbol.
	ErrInvalidSymbol = errors.New("symbol required")
	// ErrForbiddenURL is returned for article links outside the public web.
	ErrForbiddenURL = errors.New("url not allowed")
)
