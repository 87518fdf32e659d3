package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
	posters   *service.PosterService
	images    tmdb.Images
}

type addFavoriteRequest struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
}

type reorderFavoriteRequest struct {
	MovieID int64 `json:"movie_id"`
	ToRank  *int  `json:"to_rank"`
}

func RegisterFavorites(e *echo.Echo, profiles *service.ProfileService, favorites *service.FavoriteService, posters *service.PosterService, images tmdb.Images) {
	handler := &FavoriteHandler{
		favorites: favorites,
		posters:   posters,
		images:    images,
	}

	protected := e.Group("/api/v1/users/me/favorites", RequireProfile(profiles))
	protected.GET("", handler.listFavorites)
	protected.POST("", handler.addFavorite)
	protected.DELETE("", handler.clearFavorites)
	protected.PUT("/order", handler.reorderFavorite)
	protected.POST("/posters", handler.mirrorPosters)
	protected.DELETE("/:rank", handler.removeFavorite)
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}
	favorites := h.favorites.List(c.Request().Context(), profileID)
	return c.JSON(http.StatusOK, favoritesEnvelope(h.images, favorites))
}

func (h *FavoriteHandler) addFavorite(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}

	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.ID <= 0 {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a positive integer"))
	}

	ctx := c.Request().Context()
	var (
		result *service.AddResult
		err    error
	)
	if req.Title == "" {
		result, err = h.favorites.AddByMovieID(ctx, profileID, req.ID)
	} else {
		result, err = h.favorites.Add(ctx, profileID, domain.Candidate{
			ID:          req.ID,
			Title:       req.Title,
			ReleaseDate: req.ReleaseDate,
			PosterPath:  req.PosterPath,
		})
	}
	if err != nil && (result == nil || !errors.Is(err, service.ErrPersistenceUnavailable)) {
		return respondError(c, err, "could not update favorites")
	}

	body := util.Envelope{
		"favorite":  toFavoriteResponse(h.images, result.Added),
		"message":   fmt.Sprintf("Added %q to the top of your list!", result.Added.Title),
		"favorites": favoritesEnvelope(h.images, result.Favorites),
	}
	if result.Evicted != nil {
		body["evicted"] = toFavoriteResponse(h.images, *result.Evicted)
	}
	if err != nil {
		body["warning"] = msgSaveFailed
	}
	return c.JSON(http.StatusCreated, body)
}

func (h *FavoriteHandler) removeFavorite(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}
	rank, ok := parseRankParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("rank must be an integer"))
	}

	favorites, err := h.favorites.Remove(c.Request().Context(), profileID, rank)
	return h.respondWithList(c, favorites, err)
}

func (h *FavoriteHandler) reorderFavorite(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}

	var req reorderFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.MovieID <= 0 {
		return c.JSON(http.StatusBadRequest, util.Error("movie_id must be a positive integer"))
	}

	if req.ToRank == nil || *req.ToRank < 1 {
		return c.JSON(http.StatusBadRequest, util.Error("to_rank must be a positive integer"))
	}

	favorites, err := h.favorites.Reorder(c.Request().Context(), profileID, req.MovieID, *req.ToRank)
	return h.respondWithList(c, favorites, err)
}

func (h *FavoriteHandler) clearFavorites(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}
	if err := h.favorites.Clear(c.Request().Context(), profileID); err != nil {
		return respondError(c, err, "could not update favorites")
	}
	return c.JSON(http.StatusOK, util.Envelope{"message": "Your list has been cleared"})
}

func (h *FavoriteHandler) mirrorPosters(c echo.Context) error {
	profileID, ok := CurrentProfile(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("profile required"))
	}
	report, err := h.posters.MirrorFavorites(c.Request().Context(), profileID)
	if err != nil {
		return respondError(c, err, "could not mirror posters")
	}
	return c.JSON(http.StatusOK, report)
}

// respondWithList returns the updated list even when saving it failed.
func (h *FavoriteHandler) respondWithList(c echo.Context, favorites *domain.FavoritesCollection, err error) error {
	if err != nil && (favorites == nil || !errors.Is(err, service.ErrPersistenceUnavailable)) {
		return respondError(c, err, "could not update favorites")
	}
	body := favoritesEnvelope(h.images, favorites)
	if err != nil {
		body["warning"] = msgSaveFailed
	}
	return c.JSON(http.StatusOK, body)
}
