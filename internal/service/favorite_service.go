package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

var (
	ErrPersistenceUnavailable = errors.New("favorites storage unavailable")
	ErrInvalidCandidate       = errors.New("movie id and title are required")
)

type FavoriteService struct {
	store   ports.FavoritesStore
	catalog ports.MovieCatalog
	locks   *profileLocks
}

// AddResult describes the outcome of pinning a movie at rank 1.
type AddResult struct {
	Added     domain.FavoriteEntry
	Evicted   *domain.FavoriteEntry
	Favorites *domain.FavoritesCollection
}

func NewFavoriteService(store ports.FavoritesStore, catalog ports.MovieCatalog) *FavoriteService {
	return &FavoriteService{
		store:   store,
		catalog: catalog,
		locks:   newProfileLocks(),
	}
}

// List never fails: a store that cannot be read yields an empty list.
func (s *FavoriteService) List(ctx context.Context, profileID uuid.UUID) *domain.FavoritesCollection {
	favorites, _ := s.load(ctx, profileID)
	return favorites
}

func (s *FavoriteService) Add(ctx context.Context, profileID uuid.UUID, candidate domain.Candidate) (*AddResult, error) {
	candidate, err := normalizeCandidate(candidate)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(profileID)
	defer unlock()

	favorites, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	added, evicted, err := favorites.AddToTop(candidate)
	if err != nil {
		return nil, err
	}
	result := &AddResult{Added: added, Evicted: evicted, Favorites: favorites}
	return result, s.save(ctx, profileID, favorites)
}

// AddByMovieID resolves the candidate through the catalog before adding it.
func (s *FavoriteService) AddByMovieID(ctx context.Context, profileID uuid.UUID, movieID int64) (*AddResult, error) {
	if movieID <= 0 {
		return nil, ErrInvalidCandidate
	}
	if s.catalog == nil {
		return nil, domain.ErrMovieNotFound
	}
	detail, err := s.catalog.MovieDetail(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, profileID, detail.Movie.Candidate())
}

// Remove drops the entry at rank. A rank nobody holds leaves the store untouched.
func (s *FavoriteService) Remove(ctx context.Context, profileID uuid.UUID, rank int) (*domain.FavoritesCollection, error) {
	unlock := s.locks.lock(profileID)
	defer unlock()

	favorites, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !favorites.RemoveByRank(rank) {
		return favorites, nil
	}
	return favorites, s.save(ctx, profileID, favorites)
}

func (s *FavoriteService) Reorder(ctx context.Context, profileID uuid.UUID, movieID int64, toRank int) (*domain.FavoritesCollection, error) {
	unlock := s.locks.lock(profileID)
	defer unlock()

	favorites, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !favorites.Reorder(movieID, toRank) {
		return favorites, nil
	}
	return favorites, s.save(ctx, profileID, favorites)
}

func (s *FavoriteService) Clear(ctx context.Context, profileID uuid.UUID) error {
	unlock := s.locks.lock(profileID)
	defer unlock()

	if err := s.store.Delete(ctx, profileID, domain.FavoritesStoreKey); err != nil {
		log.Printf("favorites: clear profile=%s: %v", profileID, err)
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return nil
}

// PinnedCount reports how many profiles have movieID in their list.
func (s *FavoriteService) PinnedCount(ctx context.Context, movieID int64) (int64, error) {
	counter, ok := s.store.(ports.PinnedCounter)
	if !ok {
		return 0, ports.ErrNotSupported
	}
	counts, err := counter.CountPinned(ctx, domain.FavoritesStoreKey, []int64{movieID})
	if err != nil {
		return 0, err
	}
	return counts[movieID], nil
}

// load starts from an empty list when nothing is stored or the stored value is
// unparsable. A failed read returns the empty list together with an
// ErrPersistenceUnavailable error so mutations never overwrite state they could
// not see.
func (s *FavoriteService) load(ctx context.Context, profileID uuid.UUID) (*domain.FavoritesCollection, error) {
	empty, _ := domain.NewFavoritesCollection(nil)

	raw, ok, err := s.store.Get(ctx, profileID, domain.FavoritesStoreKey)
	if err != nil {
		log.Printf("favorites: load profile=%s: %v", profileID, err)
		return empty, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if !ok || len(raw) == 0 {
		return empty, nil
	}
	entries, err := domain.DecodeFavorites(raw)
	if err != nil {
		log.Printf("favorites: discard unparsable state profile=%s: %v", profileID, err)
		return empty, nil
	}
	favorites, repaired := domain.NewFavoritesCollection(entries)
	if repaired {
		log.Printf("favorites: normalized stored state profile=%s entries=%d kept=%d", profileID, len(entries), favorites.Len())
	}
	return favorites, nil
}

func (s *FavoriteService) save(ctx context.Context, profileID uuid.UUID, favorites *domain.FavoritesCollection) error {
	data, err := favorites.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	if err := s.store.Put(ctx, profileID, domain.FavoritesStoreKey, data); err != nil {
		log.Printf("favorites: save profile=%s: %v", profileID, err)
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return nil
}

func normalizeCandidate(candidate domain.Candidate) (domain.Candidate, error) {
	candidate.Title = strings.TrimSpace(candidate.Title)
	candidate.ReleaseDate = strings.TrimSpace(candidate.ReleaseDate)
	if candidate.ID <= 0 || candidate.Title == "" {
		return domain.Candidate{}, ErrInvalidCandidate
	}
	if candidate.ReleaseDate != "" {
		if _, err := time.Parse("2006-01-02", candidate.ReleaseDate); err != nil {
			return domain.Candidate{}, fmt.Errorf("%w: release_date must be YYYY-MM-DD", ErrInvalidCandidate)
		}
	}
	if candidate.PosterPath != nil {
		path := strings.TrimSpace(*candidate.PosterPath)
		if path == "" {
			candidate.PosterPath = nil
		} else {
			candidate.PosterPath = &path
		}
	}
	return candidate, nil
}

type profileLock struct {
	mu   sync.Mutex
	refs int
}

// profileLocks hands out one mutex per profile and forgets it once unused.
type profileLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*profileLock
}

func newProfileLocks() *profileLocks {
	return &profileLocks{locks: make(map[uuid.UUID]*profileLock)}
}

func (l *profileLocks) lock(profileID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[profileID]
	if !ok {
		entry = &profileLock{}
		l.locks[profileID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, profileID)
		}
		l.mu.Unlock()
	}
}
