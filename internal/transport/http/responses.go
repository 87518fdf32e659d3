package http

import (
	"strings"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

type MovieResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Year        string  `json:"year,omitempty"`
	PosterPath  *string `json:"poster_path"`
	PosterURL   string  `json:"poster_url,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
}

type CastResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profile_url,omitempty"`
}

type MovieDetailResponse struct {
	MovieResponse
	Runtime     int            `json:"runtime"`
	Tagline     string         `json:"tagline,omitempty"`
	Director    string         `json:"director"`
	Directors   []string       `json:"directors"`
	Cast        []CastResponse `json:"cast"`
	PinnedCount *int64         `json:"pinned_count,omitempty"`
}

type FavoriteResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Year        string  `json:"year,omitempty"`
	PosterPath  *string `json:"poster_path"`
	PosterURL   string  `json:"poster_url,omitempty"`
	Rank        int     `json:"rank"`
}

type SlotResponse struct {
	Rank     int               `json:"rank"`
	Favorite *FavoriteResponse `json:"favorite"`
}

const (
	detailCastLimit = 12
	noDirector      = "N/A"
)

func toMovieResponse(images tmdb.Images, m domain.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Year:        domain.ReleaseYear(m.ReleaseDate),
		PosterPath:  m.PosterPath,
		PosterURL:   images.URL(tmdb.PosterSize, m.PosterPath),
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
	}
}

func toMovieResponses(images tmdb.Images, movies []domain.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResponse(images, m))
	}
	return out
}

func toMovieDetailResponse(images tmdb.Images, d *domain.MovieDetail) MovieDetailResponse {
	cast := d.TopCast(detailCastLimit)
	castOut := make([]CastResponse, 0, len(cast))
	for _, member := range cast {
		castOut = append(castOut, CastResponse{
			ID:         member.ID,
			Name:       member.Name,
			Character:  member.Character,
			ProfileURL: images.URL(tmdb.ProfileSize, member.ProfilePath),
		})
	}
	directors := d.Directors()
	director := strings.Join(directors, ", ")
	if director == "" {
		director = noDirector
	}
	return MovieDetailResponse{
		MovieResponse: toMovieResponse(images, d.Movie),
		Runtime:       d.Runtime,
		Tagline:       d.Tagline,
		Director:      director,
		Directors:     directors,
		Cast:          castOut,
	}
}

func toFavoriteResponse(images tmdb.Images, e domain.FavoriteEntry) FavoriteResponse {
	return FavoriteResponse{
		ID:          e.ID,
		Title:       e.Title,
		ReleaseDate: e.ReleaseDate,
		Year:        e.ReleaseYear(),
		PosterPath:  e.PosterPath,
		PosterURL:   images.URL(tmdb.PosterSize, e.PosterPath),
		Rank:        e.Rank,
	}
}

func favoritesEnvelope(images tmdb.Images, favorites *domain.FavoritesCollection) util.Envelope {
	items := make([]FavoriteResponse, 0, favorites.Len())
	for _, entry := range favorites.Entries() {
		items = append(items, toFavoriteResponse(images, entry))
	}
	slots := make([]SlotResponse, 0, domain.FavoritesCapacity)
	for i, entry := range favorites.Slots() {
		slot := SlotResponse{Rank: i + 1}
		if entry != nil {
			resp := toFavoriteResponse(images, *entry)
			slot.Favorite = &resp
		}
		slots = append(slots, slot)
	}
	return util.Envelope{
		"items":    items,
		"slots":    slots,
		"count":    len(items),
		"capacity": domain.FavoritesCapacity,
	}
}
