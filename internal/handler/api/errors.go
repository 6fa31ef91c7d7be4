package api

import (
	"context"
	"errors"

	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/services/chart"
	xhttp "StockLens/pkg/http"
)

// toAppError maps domain failures onto the response envelope.
func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	var statusErr *xhttp.StatusError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domrepo.ErrInvalidRange),
		errors.Is(err, domrepo.ErrInvalidSymbol),
		errors.Is(err, domrepo.ErrForbiddenURL):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, chart.ErrNotEnoughPoints):
		return xhttp.UnprocessableError(chart.ErrNotEnoughPoints.Error()).
			WithParam("min_points", chart.MinPoints).
			WithError(err)
	case errors.Is(err, domrepo.ErrSymbolNotFound), errors.Is(err, domrepo.ErrNoData):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	case errors.Is(err, domrepo.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return xhttp.UnavailableError(err.Error()).WithError(err)
	case errors.As(err, &statusErr):
		return xhttp.BadGatewayError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}
