package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

const (
	msgDuplicateFavorite = "Movie is already in your list!"
	msgSaveFailed        = "Your list could not be saved. Please try again."
)

// respondError maps service and catalog errors to a status code. Unknown errors
// are logged and reported with fallback.
func respondError(c echo.Context, err error, fallback string) error {
	var statusErr *tmdb.StatusError
	switch {
	case errors.Is(err, domain.ErrDuplicateEntry):
		return c.JSON(http.StatusConflict, util.Error(msgDuplicateFavorite))
	case errors.Is(err, domain.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, util.Error("movie not found"))
	case errors.Is(err, domain.ErrUnknownGenre):
		return c.JSON(http.StatusNotFound, util.Error("unknown genre"))
	case errors.Is(err, service.ErrUnknownSection):
		return c.JSON(http.StatusNotFound, util.Error("unknown section"))
	case errors.Is(err, service.ErrInvalidCandidate):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidPosterPath):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrPosterMirrorDisabled):
		return c.JSON(http.StatusNotImplemented, util.Error(err.Error()))
	case errors.Is(err, service.ErrPersistenceUnavailable):
		return c.JSON(http.StatusServiceUnavailable, util.Error(msgSaveFailed))
	case errors.Is(err, tmdb.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, util.Error("catalog is busy, try again shortly"))
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, util.Error("catalog request timed out"))
	case errors.As(err, &statusErr):
		log.Printf("catalog error: %v", err)
		return c.JSON(http.StatusBadGateway, util.Error("Failed to fetch movies"))
	default:
		log.Printf("%s: %v", fallback, err)
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}
