package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

var ErrUnknownSection = errors.New("unknown section")

const (
	sectionPreviewSize = 12
	sectionFanOut      = 5
	defaultSearchLimit = 20
	maxSearchLimit     = 20
)

type CatalogService struct {
	catalog ports.MovieCatalog
}

type GenrePage struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	domain.MoviePage
}

type SectionPage struct {
	domain.SectionConfig
	domain.MoviePage
}

func NewCatalogService(catalog ports.MovieCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Sections loads every home carousel concurrently. One failing listing fails the whole call.
func (s *CatalogService) Sections(ctx context.Context) ([]domain.Section, error) {
	sections := make([]domain.Section, len(domain.HomeSections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sectionFanOut)
	for i, cfg := range domain.HomeSections {
		g.Go(func() error {
			page, err := s.catalog.ListMovies(gctx, cfg.Endpoint, 1)
			if err != nil {
				return err
			}
			movies := page.Results
			if len(movies) > sectionPreviewSize {
				movies = movies[:sectionPreviewSize]
			}
			if movies == nil {
				movies = []domain.Movie{}
			}
			sections[i] = domain.Section{SectionConfig: cfg, Movies: movies}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (s *CatalogService) Section(ctx context.Context, key string, page int) (*SectionPage, error) {
	cfg, ok := domain.FindSection(key)
	if !ok {
		return nil, ErrUnknownSection
	}
	result, err := s.catalog.ListMovies(ctx, cfg.Endpoint, page)
	if err != nil {
		return nil, err
	}
	return &SectionPage{SectionConfig: cfg, MoviePage: *result}, nil
}

// Search returns at most limit matches. A blank query never reaches the catalog.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Movie{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	page, err := s.catalog.SearchMovies(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	movies := page.Results
	if len(movies) > limit {
		movies = movies[:limit]
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

func (s *CatalogService) Genre(ctx context.Context, slug string, page int) (*GenrePage, error) {
	genreID, err := domain.GenreID(slug)
	if err != nil {
		return nil, err
	}
	result, err := s.catalog.DiscoverMovies(ctx, genreID, page)
	if err != nil {
		return nil, err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	return &GenrePage{
		Slug:      slug,
		Name:      domain.GenreDisplayName(slug),
		MoviePage: *result,
	}, nil
}

func (s *CatalogService) Movie(ctx context.Context, id int64) (*domain.MovieDetail, error) {
	if id <= 0 {
		return nil, domain.ErrMovieNotFound
	}
	return s.catalog.MovieDetail(ctx, id)
}
