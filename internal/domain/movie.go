package domain

import (
	"errors"
	"strings"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrUnknownGenre  = errors.New("unknown genre")
)

// Movie is a catalog record as returned by listing and search endpoints.
// ReleaseYear returns the year part of a YYYY-MM-DD date, or "".
func ReleaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

// Candidate returns the fields the favorites list keeps for m.
func (m Movie) Candidate() Candidate {
	return Candidate{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		PosterPath:  m.PosterPath,
	}
}

type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type CrewMember struct {
	Job  string `json:"job"`
	Name string `json:"name"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type MovieDetail struct {
	Movie
	Runtime int      `json:"runtime"`
	Tagline string   `json:"tagline"`
	Credits *Credits `json:"credits,omitempty"`
}

// Directors returns every crew member credited as Director, in credit order.
func (d MovieDetail) Directors() []string {
	names := []string{}
	if d.Credits == nil {
		return names
	}
	for _, member := range d.Credits.Crew {
		if member.Job == "Director" {
			names = append(names, member.Name)
		}
	}
	return names
}

// TopCast returns at most limit billed cast members.
func (d MovieDetail) TopCast(limit int) []CastMember {
	if d.Credits == nil || limit <= 0 {
		return []CastMember{}
	}
	cast := d.Credits.Cast
	if len(cast) > limit {
		cast = cast[:limit]
	}
	out := make([]CastMember, len(cast))
	copy(out, cast)
	return out
}

// SectionKey names one of the home page carousels.
type SectionKey string

const (
	SectionTrending   SectionKey = "trending"
	SectionNowPlaying SectionKey = "now_playing"
	SectionTopRated   SectionKey = "top_rated"
	SectionUpcoming   SectionKey = "upcoming"
	SectionPopular    SectionKey = "popular"
)

type SectionConfig struct {
	Key      SectionKey `json:"key"`
	Title    string     `json:"title"`
	Endpoint string     `json:"-"`
}

// HomeSections lists the carousels in display order.
var HomeSections = []SectionConfig{
	{Key: SectionTrending, Title: "Trending Now", Endpoint: "/trending/movie/week"},
	{Key: SectionNowPlaying, Title: "Now Playing in Theaters", Endpoint: "/movie/now_playing"},
	{Key: SectionTopRated, Title: "Top Rated Movies", Endpoint: "/movie/top_rated"},
	{Key: SectionUpcoming, Title: "Upcoming Releases", Endpoint: "/movie/upcoming"},
	{Key: SectionPopular, Title: "Popular Right Now", Endpoint: "/movie/popular"},
}

func FindSection(key string) (SectionConfig, bool) {
	k := SectionKey(strings.ToLower(strings.TrimSpace(key)))
	for _, section := range HomeSections {
		if section.Key == k {
			return section, true
		}
	}
	return SectionConfig{}, false
}

type Section struct {
	SectionConfig
	Movies []Movie `json:"movies"`
}

var genreIDs = map[string]int{
	"action":      28,
	"adventure":   12,
	"animation":   16,
	"comedy":      35,
	"crime":       80,
	"documentary": 99,
	"drama":       18,
	"family":      10751,
	"fantasy":     14,
	"history":     36,
	"horror":      27,
	"music":       10402,
	"musical":     10402,
	"mystery":     9648,
	"romance":     10749,
	"sci-fi":      878,
	"thriller":    53,
	"war":         10752,
	"western":     37,
}

// GenreID maps a genre slug such as "sci-fi" to its catalog genre id.
func GenreID(slug string) (int, error) {
	id, ok := genreIDs[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return 0, ErrUnknownGenre
	}
	return id, nil
}

// GenreDisplayName turns "sci-fi" into "Sci fi".
func GenreDisplayName(slug string) string {
	s := strings.TrimSpace(slug)
	if s == "" {
		return ""
	}
	s = strings.Replace(s, "-", " ", 1)
	return strings.ToUpper(s[:1]) + s[1:]
}
