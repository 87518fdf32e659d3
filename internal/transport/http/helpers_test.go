package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/service"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

type memStore struct {
	mu     sync.Mutex
	values map[string][]byte
	getErr error
	putErr error
}

func (m *memStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.values[profileID.String()+key]
	return v, ok, nil
}

func (m *memStore) Put(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.values[profileID.String()+key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, profileID.String()+key)
	return nil
}

type fakeCatalog struct {
	listErr error
	search  []domain.Movie
	details map[int64]*domain.MovieDetail
}

func (f *fakeCatalog) ListMovies(ctx context.Context, endpoint string, page int) (*domain.MoviePage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &domain.MoviePage{Page: page, Results: []domain.Movie{{ID: 1, Title: "Heat"}}}, nil
}

func (f *fakeCatalog) SearchMovies(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	return &domain.MoviePage{Page: page, Results: f.search}, nil
}

func (f *fakeCatalog) DiscoverMovies(ctx context.Context, genreID int, page int) (*domain.MoviePage, error) {
	return &domain.MoviePage{Page: page}, nil
}

func (f *fakeCatalog) MovieDetail(ctx context.Context, id int64) (*domain.MovieDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrMovieNotFound
}

type testServer struct {
	e       *echo.Echo
	store   *memStore
	catalog *fakeCatalog
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := &memStore{values: make(map[string][]byte)}
	catalog := &fakeCatalog{details: make(map[int64]*domain.MovieDetail)}
	profiles := service.NewProfileService(util.NewJWTManager("test-secret", time.Hour))
	favorites := service.NewFavoriteService(store, catalog)
	posters := service.NewPosterService(nil, nil, nil, favorites, "", 0)
	images := tmdb.NewImages("https://img.test/t/p")

	e := echo.New()
	RegisterProfiles(e, profiles)
	RegisterCatalog(e, service.NewCatalogService(catalog), favorites, images)
	RegisterFavorites(e, profiles, favorites, posters, images)

	profile, err := profiles.Create()
	if err != nil {
		t.Fatalf("Create profile returned error: %v", err)
	}
	return &testServer{e: e, store: store, catalog: catalog, token: profile.Token}
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if s.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func itemIDs(t *testing.T, body map[string]any) []int64 {
	t.Helper()
	items, ok := body["items"].([]any)
	if !ok {
		t.Fatalf("expected items array, got %v", body["items"])
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, int64(item.(map[string]any)["id"].(float64)))
	}
	return out
}
