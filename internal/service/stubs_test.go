package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string][]byte

	getErr    error
	failGets  int
	putErr    error
	deleteErr error
	puts      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func storeKey(profileID uuid.UUID, key string) string {
	return profileID.String() + ":" + key
}

func (m *memoryStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	if m.failGets > 0 {
		m.failGets--
		return nil, false, errors.New("i/o timeout")
	}
	value, ok := m.values[storeKey(profileID, key)]
	return value, ok, nil
}

func (m *memoryStore) Put(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.values[storeKey(profileID, key)] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, storeKey(profileID, key))
	return nil
}

func (m *memoryStore) raw(profileID uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.values[storeKey(profileID, domain.FavoritesStoreKey)])
}

type countingStore struct {
	*memoryStore
	counts map[int64]int64
}

func (c *countingStore) CountPinned(ctx context.Context, key string, movieIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64)
	for _, id := range movieIDs {
		out[id] = c.counts[id]
	}
	return out, nil
}

type stubCatalog struct {
	mu sync.Mutex

	listErr     error
	listResults []domain.Movie
	listCalls   []string

	searchQuery   string
	searchResults []domain.Movie
	searchCalls   int

	discoverGenre int
	discoverPage  int

	details map[int64]*domain.MovieDetail
}

func (s *stubCatalog) ListMovies(ctx context.Context, endpoint string, page int) (*domain.MoviePage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls = append(s.listCalls, endpoint)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &domain.MoviePage{Page: page, Results: s.listResults, TotalPages: 3}, nil
}

func (s *stubCatalog) SearchMovies(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	s.searchCalls++
	s.searchQuery = query
	return &domain.MoviePage{Page: page, Results: s.searchResults}, nil
}

func (s *stubCatalog) DiscoverMovies(ctx context.Context, genreID int, page int) (*domain.MoviePage, error) {
	s.discoverGenre = genreID
	s.discoverPage = page
	return &domain.MoviePage{Page: page, Results: []domain.Movie{{ID: 1, Title: "Alien"}}}, nil
}

func (s *stubCatalog) MovieDetail(ctx context.Context, id int64) (*domain.MovieDetail, error) {
	detail, ok := s.details[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return detail, nil
}

func movies(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: int64(i + 1), Title: fmt.Sprintf("Movie %d", i+1)}
	}
	return out
}

type stubPosterSource struct {
	data        []byte
	contentType string
	err         error
	calls       []string
}

func (s *stubPosterSource) FetchPoster(ctx context.Context, posterPath string) ([]byte, string, error) {
	s.calls = append(s.calls, posterPath)
	if s.err != nil {
		return nil, "", s.err
	}
	return s.data, s.contentType, nil
}

type storedObject struct {
	contentType string
	data        []byte
}

type stubObjectStorage struct {
	objects map[string]storedObject
	failOn  string
}

func newStubObjectStorage() *stubObjectStorage {
	return &stubObjectStorage{objects: make(map[string]storedObject)}
}

func (s *stubObjectStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if objectName == s.failOn {
		return "", errors.New("upload failed")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.objects[bucket+"/"+objectName] = storedObject{contentType: contentType, data: data}
	return s.PublicURL(bucket, objectName), nil
}

func (s *stubObjectStorage) Exists(ctx context.Context, bucket, objectName string) (bool, error) {
	_, ok := s.objects[bucket+"/"+objectName]
	return ok, nil
}

func (s *stubObjectStorage) PublicURL(bucket, objectName string) string {
	return "http://cdn.test/" + bucket + "/" + objectName
}
