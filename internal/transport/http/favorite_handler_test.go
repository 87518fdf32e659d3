package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
)

func TestAddFavoriteCreated(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodPost, "/api/v1/users/me/favorites",
		`{"id":603,"title":"The Matrix","release_date":"1999-03-30","poster_path":"/matrix.jpg"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["message"] != `Added "The Matrix" to the top of your list!` {
		t.Fatalf("unexpected message %v", body["message"])
	}
	favorite := body["favorite"].(map[string]any)
	if favorite["rank"].(float64) != 1 || favorite["poster_url"] != "https://img.test/t/p/w500/matrix.jpg" {
		t.Fatalf("unexpected favorite %v", favorite)
	}
	if _, ok := body["evicted"]; ok {
		t.Fatalf("expected no eviction")
	}
}

func TestAddFavoriteDuplicateConflict(t *testing.T) {
	s := newTestServer(t)
	payload := `{"id":603,"title":"The Matrix"}`
	s.do(t, http.MethodPost, "/api/v1/users/me/favorites", payload)

	rec, body := s.do(t, http.MethodPost, "/api/v1/users/me/favorites", payload)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body["error"] != "Movie is already in your list!" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestAddFavoriteByIDUsesCatalog(t *testing.T) {
	s := newTestServer(t)
	s.catalog.details[27205] = &domain.MovieDetail{Movie: domain.Movie{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16"}}

	rec, body := s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":27205}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["favorite"].(map[string]any)["title"] != "Inception" {
		t.Fatalf("expected catalog title, got %v", body["favorite"])
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown movie, got %d", rec.Code)
	}
}

func TestAddFavoriteEvictsAtCapacity(t *testing.T) {
	s := newTestServer(t)
	for id := 1; id <= domain.FavoritesCapacity; id++ {
		s.do(t, http.MethodPost, "/api/v1/users/me/favorites", fmt.Sprintf(`{"id":%d,"title":"M%d"}`, id, id))
	}

	rec, body := s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":99,"title":"New"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	evicted, ok := body["evicted"].(map[string]any)
	if !ok || evicted["id"].(float64) != 1 {
		t.Fatalf("expected movie 1 evicted, got %v", body["evicted"])
	}
}

func TestAddFavoriteSaveFailureWarns(t *testing.T) {
	s := newTestServer(t)
	s.store.putErr = errors.New("disk full")

	rec, body := s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":5,"title":"Alien"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with warning, got %d", rec.Code)
	}
	if body["warning"] != msgSaveFailed {
		t.Fatalf("expected save warning, got %v", body["warning"])
	}
}

func TestFavoriteMutationsUnavailableWhenStoreUnreadable(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":7,"title":"Se7en"}`)
	s.store.getErr = errors.New("read timeout")

	for _, call := range []struct{ method, target, body string }{
		{http.MethodPost, "/api/v1/users/me/favorites", `{"id":8,"title":"Heat"}`},
		{http.MethodDelete, "/api/v1/users/me/favorites/1", ""},
		{http.MethodPut, "/api/v1/users/me/favorites/order", `{"movie_id":7,"to_rank":1}`},
	} {
		rec, body := s.do(t, call.method, call.target, call.body)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s: expected 503, got %d", call.method, call.target, rec.Code)
		}
		if body["error"] != msgSaveFailed {
			t.Fatalf("%s %s: unexpected body %v", call.method, call.target, body)
		}
	}

	s.store.getErr = nil
	_, body := s.do(t, http.MethodGet, "/api/v1/users/me/favorites", "")
	if got := fmt.Sprint(itemIDs(t, body)); got != "[7]" {
		t.Fatalf("expected stored list to survive, got %s", got)
	}
}

func TestReorderFavoriteRequiresTargetRank(t *testing.T) {
	s := newTestServer(t)
	for id := 2; id >= 1; id-- {
		s.do(t, http.MethodPost, "/api/v1/users/me/favorites", fmt.Sprintf(`{"id":%d,"title":"M%d"}`, id, id))
	}

	for _, payload := range []string{`{"movie_id":2}`, `{"movie_id":2,"to_rank":0}`, `{"movie_id":2,"to_rank":-4}`} {
		rec, _ := s.do(t, http.MethodPut, "/api/v1/users/me/favorites/order", payload)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", payload, rec.Code)
		}
	}
	_, body := s.do(t, http.MethodGet, "/api/v1/users/me/favorites", "")
	if got := fmt.Sprint(itemIDs(t, body)); got != "[1 2]" {
		t.Fatalf("expected order unchanged, got %s", got)
	}

	rec, body := s.do(t, http.MethodPut, "/api/v1/users/me/favorites/order", `{"movie_id":1,"to_rank":50}`)
	if rec.Code != http.StatusOK || fmt.Sprint(itemIDs(t, body)) != "[2 1]" {
		t.Fatalf("expected clamped move to the last rank, got %d %v", rec.Code, body)
	}
}

func TestAddFavoriteValidation(t *testing.T) {
	s := newTestServer(t)
	for _, payload := range []string{`{"id":0,"title":"x"}`, `{"id":"abc"}`, `{"id":3,"title":"x","release_date":"tomorrow"}`} {
		rec, _ := s.do(t, http.MethodPost, "/api/v1/users/me/favorites", payload)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", payload, rec.Code)
		}
	}
}

func TestFavoritesRequireProfile(t *testing.T) {
	s := newTestServer(t)
	s.token = ""
	rec, _ := s.do(t, http.MethodGet, "/api/v1/users/me/favorites", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	s.token = "garbage"
	rec, _ = s.do(t, http.MethodGet, "/api/v1/users/me/favorites", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestListFavoritesSlots(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":7,"title":"Se7en"}`)

	rec, body := s.do(t, http.MethodGet, "/api/v1/users/me/favorites", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["count"].(float64) != 1 || body["capacity"].(float64) != 10 {
		t.Fatalf("unexpected counts %v %v", body["count"], body["capacity"])
	}
	slots := body["slots"].([]any)
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	if slots[0].(map[string]any)["favorite"] == nil || slots[1].(map[string]any)["favorite"] != nil {
		t.Fatalf("unexpected slot contents %v", slots[:2])
	}
}

func TestRemoveAndReorderFavorites(t *testing.T) {
	s := newTestServer(t)
	for id := 4; id >= 1; id-- {
		s.do(t, http.MethodPost, "/api/v1/users/me/favorites", fmt.Sprintf(`{"id":%d,"title":"M%d"}`, id, id))
	}

	rec, body := s.do(t, http.MethodPut, "/api/v1/users/me/favorites/order", `{"movie_id":4,"to_rank":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := fmt.Sprint(itemIDs(t, body)); got != "[1 4 2 3]" {
		t.Fatalf("expected [1 4 2 3], got %s", got)
	}

	rec, body = s.do(t, http.MethodDelete, "/api/v1/users/me/favorites/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := fmt.Sprint(itemIDs(t, body)); got != "[1 2 3]" {
		t.Fatalf("expected [1 2 3], got %s", got)
	}

	rec, body = s.do(t, http.MethodDelete, "/api/v1/users/me/favorites/9", "")
	if rec.Code != http.StatusOK || fmt.Sprint(itemIDs(t, body)) != "[1 2 3]" {
		t.Fatalf("expected no-op remove, got %d %v", rec.Code, body)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/users/me/favorites/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric rank, got %d", rec.Code)
	}
}

func TestClearFavorites(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/users/me/favorites", `{"id":7,"title":"Se7en"}`)

	rec, _ := s.do(t, http.MethodDelete, "/api/v1/users/me/favorites", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	_, body := s.do(t, http.MethodGet, "/api/v1/users/me/favorites", "")
	if body["count"].(float64) != 0 {
		t.Fatalf("expected empty list, got %v", body["count"])
	}
}

func TestMirrorPostersDisabled(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodPost, "/api/v1/users/me/favorites/posters", "")
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}
