package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

const defaultSuggestionLimit = 7

type CatalogHandler struct {
	catalog   *service.CatalogService
	favorites *service.FavoriteService
	images    tmdb.Images
}

func RegisterCatalog(e *echo.Echo, catalog *service.CatalogService, favorites *service.FavoriteService, images tmdb.Images) {
	handler := &CatalogHandler{catalog: catalog, favorites: favorites, images: images}

	g := e.Group("/api/v1/movies")
	g.GET("/sections", handler.listSections)
	g.GET("/sections/:key", handler.getSection)
	g.GET("/search", handler.search)
	g.GET("/genres/:genre", handler.getGenre)
	g.GET("/:id", handler.getMovie)
}

func (h *CatalogHandler) listSections(c echo.Context) error {
	sections, err := h.catalog.Sections(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch movies")
	}
	out := make([]util.Envelope, 0, len(sections))
	for _, section := range sections {
		out = append(out, util.Envelope{
			"key":    section.Key,
			"title":  section.Title,
			"movies": toMovieResponses(h.images, section.Movies),
		})
	}
	return c.JSON(http.StatusOK, util.Data("sections", out))
}

func (h *CatalogHandler) getSection(c echo.Context) error {
	page, err := h.catalog.Section(c.Request().Context(), c.Param("key"), parsePage(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch movies")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"key":           page.Key,
		"title":         page.Title,
		"page":          page.Page,
		"total_pages":   page.TotalPages,
		"total_results": page.TotalResults,
		"movies":        toMovieResponses(h.images, page.Results),
	})
}

func (h *CatalogHandler) search(c echo.Context) error {
	query := c.QueryParam("query")
	limit := parsePositiveQuery(c, "limit", defaultSuggestionLimit)
	movies, err := h.catalog.Search(c.Request().Context(), query, limit)
	if err != nil {
		return respondError(c, err, "Failed to search movies")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"query":   query,
		"results": toMovieResponses(h.images, movies),
	})
}

func (h *CatalogHandler) getGenre(c echo.Context) error {
	page, err := h.catalog.Genre(c.Request().Context(), c.Param("genre"), parsePage(c))
	if err != nil {
		return respondError(c, err, "Failed to fetch movies")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"genre":       page.Slug,
		"name":        page.Name,
		"page":        page.Page,
		"total_pages": page.TotalPages,
		"movies":      toMovieResponses(h.images, page.Results),
	})
}

func (h *CatalogHandler) getMovie(c echo.Context) error {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("movie id must be a positive integer"))
	}
	ctx := c.Request().Context()
	detail, err := h.catalog.Movie(ctx, id)
	if err != nil {
		return respondError(c, err, "Failed to fetch movie")
	}

	resp := toMovieDetailResponse(h.images, detail)
	if h.favorites != nil {
		count, err := h.favorites.PinnedCount(ctx, id)
		switch {
		case err == nil:
			resp.PinnedCount = &count
		case errors.Is(err, ports.ErrNotSupported):
		default:
			log.Printf("pinned count movie=%d: %v", id, err)
		}
	}
	return c.JSON(http.StatusOK, resp)
}
