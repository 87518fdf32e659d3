package domain

import (
	"encoding/json"
	"errors"
	"sort"
)

const (
	// FavoritesCapacity is the fixed length of the Top 10 list.
	FavoritesCapacity = 10
	// FavoritesStoreKey is the key the list is persisted under in every store driver.
	FavoritesStoreKey = "userFavorites"
)

var (
	ErrDuplicateEntry = errors.New("movie is already in your list")
	ErrEntryNotFound  = errors.New("favorite entry not found")
)

// FavoriteEntry is one movie pinned in the ranked list. Title, release date and
// poster path are copied from the catalog at insertion time and never refreshed.
type FavoriteEntry struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	Rank        int     `json:"rank"`
}

func (e FavoriteEntry) ReleaseYear() string {
	return ReleaseYear(e.ReleaseDate)
}

// Candidate is the subset of a catalog record accepted by AddToTop.
type Candidate struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
}

// FavoritesCollection keeps up to FavoritesCapacity entries ordered by rank.
// Ids are unique and ranks are always exactly 1..Len().
type FavoritesCollection struct {
	entries []FavoriteEntry
}

// NewFavoritesCollection builds a collection from persisted entries. Entries are
// ordered by their stored rank, duplicate ids are dropped (the better ranked one
// wins), the list is cut to capacity and re-ranked densely. repaired reports
// whether any of that changed the input.
func NewFavoritesCollection(entries []FavoriteEntry) (col *FavoritesCollection, repaired bool) {
	sorted := make([]FavoriteEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankKey(sorted[i].Rank) < rankKey(sorted[j].Rank)
	})

	seen := make(map[int64]struct{}, len(sorted))
	out := make([]FavoriteEntry, 0, FavoritesCapacity)
	for _, entry := range sorted {
		if _, dup := seen[entry.ID]; dup {
			continue
		}
		if len(out) == FavoritesCapacity {
			break
		}
		seen[entry.ID] = struct{}{}
		out = append(out, entry)
	}
	col = &FavoritesCollection{entries: out}
	col.rerank()

	if len(out) != len(entries) {
		return col, true
	}
	for i := range out {
		if out[i] != entries[i] {
			return col, true
		}
	}
	return col, false
}

// rankKey sorts ranks below 1 after every valid rank.
func rankKey(rank int) int {
	if rank < 1 {
		return int(^uint(0) >> 1)
	}
	return rank
}

func (c *FavoritesCollection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the list ordered by rank.
func (c *FavoritesCollection) Entries() []FavoriteEntry {
	out := make([]FavoriteEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *FavoritesCollection) Contains(id int64) bool {
	return c.indexOf(id) >= 0
}

// Slots returns the FavoritesCapacity display slots; unfilled ranks are nil.
func (c *FavoritesCollection) Slots() []*FavoriteEntry {
	slots := make([]*FavoriteEntry, FavoritesCapacity)
	for i := range c.entries {
		entry := c.entries[i]
		slots[entry.Rank-1] = &entry
	}
	return slots
}

// AddToTop pins candidate at rank 1, pushing every other entry one rank down.
// When the list was full the former last entry is returned as evicted.
func (c *FavoritesCollection) AddToTop(candidate Candidate) (added FavoriteEntry, evicted *FavoriteEntry, err error) {
	if c.Contains(candidate.ID) {
		return FavoriteEntry{}, nil, ErrDuplicateEntry
	}

	added = FavoriteEntry{
		ID:          candidate.ID,
		Title:       candidate.Title,
		ReleaseDate: candidate.ReleaseDate,
		PosterPath:  candidate.PosterPath,
		Rank:        1,
	}

	next := make([]FavoriteEntry, 0, len(c.entries)+1)
	next = append(next, added)
	next = append(next, c.entries...)
	if len(next) > FavoritesCapacity {
		dropped := next[FavoritesCapacity]
		evicted = &dropped
		next = next[:FavoritesCapacity]
	}
	c.entries = next
	c.rerank()
	return added, evicted, nil
}

// RemoveByRank drops the entry holding rank. It reports false and leaves the
// collection untouched when no entry has that rank.
func (c *FavoritesCollection) RemoveByRank(rank int) bool {
	if rank < 1 || rank > len(c.entries) {
		return false
	}
	idx := rank - 1
	c.entries = append(c.entries[:idx:idx], c.entries[idx+1:]...)
	c.rerank()
	return true
}

// Reorder moves the entry with id fromID to position toRank. Positions outside
// 1..Len() are clamped. It reports false when fromID is unknown or the entry
// already sits at the target.
func (c *FavoritesCollection) Reorder(fromID int64, toRank int) bool {
	from := c.indexOf(fromID)
	if from < 0 {
		return false
	}
	to := toRank - 1
	if to < 0 {
		to = 0
	}
	if to > len(c.entries)-1 {
		to = len(c.entries) - 1
	}
	if from == to {
		return false
	}

	moved := c.entries[from]
	rest := make([]FavoriteEntry, 0, len(c.entries))
	rest = append(rest, c.entries[:from]...)
	rest = append(rest, c.entries[from+1:]...)

	next := make([]FavoriteEntry, 0, len(c.entries))
	next = append(next, rest[:to]...)
	next = append(next, moved)
	next = append(next, rest[to:]...)
	c.entries = next
	c.rerank()
	return true
}

func (c *FavoritesCollection) indexOf(id int64) int {
	for i := range c.entries {
		if c.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *FavoritesCollection) rerank() {
	for i := range c.entries {
		c.entries[i].Rank = i + 1
	}
}

// MarshalJSON encodes the collection in the persisted userFavorites layout.
func (c *FavoritesCollection) MarshalJSON() ([]byte, error) {
	if c == nil || c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

// DecodeFavorites parses a persisted userFavorites value without validating it.
func DecodeFavorites(data []byte) ([]FavoriteEntry, error) {
	var entries []FavoriteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
