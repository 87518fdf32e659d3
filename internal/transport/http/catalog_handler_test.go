package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/tmdb"
)

func TestSearchReturnsLimitedResults(t *testing.T) {
	s := newTestServer(t)
	for i := 1; i <= 12; i++ {
		s.catalog.search = append(s.catalog.search, domain.Movie{ID: int64(i), Title: "Match", ReleaseDate: "2001-01-01"})
	}

	rec, body := s.do(t, http.MethodGet, "/api/v1/movies/search?query=match", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	results := body["results"].([]any)
	if len(results) != defaultSuggestionLimit {
		t.Fatalf("expected %d suggestions, got %d", defaultSuggestionLimit, len(results))
	}
	if results[0].(map[string]any)["year"] != "2001" {
		t.Fatalf("expected year 2001, got %v", results[0])
	}

	_, body = s.do(t, http.MethodGet, "/api/v1/movies/search?query=match&limit=10", "")
	if len(body["results"].([]any)) != 10 {
		t.Fatalf("expected 10 results, got %d", len(body["results"].([]any)))
	}
}

func TestGetMovieStatuses(t *testing.T) {
	s := newTestServer(t)
	credits := &domain.Credits{Crew: []domain.CrewMember{
		{Job: "Director", Name: "Joel Coen"},
		{Job: "Writer", Name: "Ethan Coen"},
		{Job: "Director", Name: "Ethan Coen"},
	}}
	for i := 1; i <= 15; i++ {
		credits.Cast = append(credits.Cast, domain.CastMember{ID: int64(i), Name: fmt.Sprintf("Actor %d", i)})
	}
	s.catalog.details[949] = &domain.MovieDetail{
		Movie:   domain.Movie{ID: 949, Title: "Fargo", ReleaseDate: "1996-03-08"},
		Credits: credits,
	}
	s.catalog.details[950] = &domain.MovieDetail{Movie: domain.Movie{ID: 950, Title: "Untitled"}}

	rec, body := s.do(t, http.MethodGet, "/api/v1/movies/949", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["director"] != "Joel Coen, Ethan Coen" {
		t.Fatalf("expected both directors joined, got %v", body["director"])
	}
	if len(body["directors"].([]any)) != 2 {
		t.Fatalf("expected two directors, got %v", body["directors"])
	}
	if cast := body["cast"].([]any); len(cast) != 12 {
		t.Fatalf("expected 12 billed cast members, got %d", len(cast))
	}
	if body["year"] != "1996" {
		t.Fatalf("expected year 1996, got %v", body["year"])
	}
	if _, ok := body["pinned_count"]; ok {
		t.Fatalf("expected pinned_count omitted for stores without counting")
	}

	_, body = s.do(t, http.MethodGet, "/api/v1/movies/950", "")
	if body["director"] != "N/A" || len(body["directors"].([]any)) != 0 {
		t.Fatalf("expected N/A without credited directors, got %v %v", body["director"], body["directors"])
	}

	if rec, _ := s.do(t, http.MethodGet, "/api/v1/movies/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec, _ := s.do(t, http.MethodGet, "/api/v1/movies/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSectionsUpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.catalog.listErr = &tmdb.StatusError{Path: "/movie/popular", StatusCode: 500}

	rec, body := s.do(t, http.MethodGet, "/api/v1/movies/sections", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if body["error"] != "Failed to fetch movies" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestUnknownSectionAndGenre(t *testing.T) {
	s := newTestServer(t)
	if rec, _ := s.do(t, http.MethodGet, "/api/v1/movies/sections/classics", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown section, got %d", rec.Code)
	}
	if rec, _ := s.do(t, http.MethodGet, "/api/v1/movies/genres/opera", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown genre, got %d", rec.Code)
	}
	if rec, _ := s.do(t, http.MethodGet, "/api/v1/movies/genres/horror?page=2", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for known genre, got %d", rec.Code)
	}
}

func TestParsePage(t *testing.T) {
	e := echo.New()
	cases := map[string]int{"": 1, "?page=3": 3, "?page=-2": 1, "?page=abc": 1}
	for query, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if got := parsePage(c); got != want {
			t.Fatalf("parsePage(%q) = %d, want %d", query, got, want)
		}
	}
}
