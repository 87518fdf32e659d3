package ports

import (
	"context"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
)

type MovieCatalog interface {
	ListMovies(ctx context.Context, endpoint string, page int) (*domain.MoviePage, error)
	SearchMovies(ctx context.Context, query string, page int) (*domain.MoviePage, error)
	DiscoverMovies(ctx context.Context, genreID int, page int) (*domain.MoviePage, error)
	MovieDetail(ctx context.Context, id int64) (*domain.MovieDetail, error)
}

// PosterSource downloads poster images by their relative catalog path.
type PosterSource interface {
	FetchPoster(ctx context.Context, posterPath string) ([]byte, string, error)
}
