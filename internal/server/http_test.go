package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"filmorate-server/internal/server"
	"filmorate-server/pkg/cache"
)

func newTestRouter() http.Handler {
	s := server.New(nil, cache.NewInMemory(), nil)
	return s.Router()
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
}

func TestCorrelationIDHeader(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Correlation-Id") == "" {
		t.Fatal("expected X-Correlation-Id header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Correlation-Id", "abc123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Correlation-Id"); got != "abc123" {
		t.Fatalf("expected correlation id to be echoed, got %q", got)
	}
}

func TestCreateUserValidation(t *testing.T) {
	r := newTestRouter()
	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"missing email", `{"login":"alice","birthday":"1990-01-01"}`},
		{"malformed email", `{"email":"not-an-email","login":"alice","birthday":"1990-01-01"}`},
		{"login with spaces", `{"email":"a@b.c","login":"al ice","birthday":"1990-01-01"}`},
		{"future birthday", `{"email":"a@b.c","login":"alice","birthday":"2999-01-01"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCreateFilmValidation(t *testing.T) {
	r := newTestRouter()
	longDesc := strings.Repeat("x", 201)
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"release_date":"2000-01-01","duration":90,"mpa":{"id":1}}`},
		{"description too long", `{"name":"F","description":"` + longDesc + `","release_date":"2000-01-01","duration":90,"mpa":{"id":1}}`},
		{"release before first screening", `{"name":"F","release_date":"1890-01-01","duration":90,"mpa":{"id":1}}`},
		{"non-positive duration", `{"name":"F","release_date":"2000-01-01","duration":0,"mpa":{"id":1}}`},
		{"missing mpa", `{"name":"F","release_date":"2000-01-01","duration":90}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/films", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestPopularFilmsQueryValidation(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{
		"/films/popular?count=0",
		"/films/popular?count=-3",
		"/films/popular?count=abc",
		"/films/popular?genreId=0",
		"/films/popular?year=abc",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestInvalidPathID(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/users/abc", "/films/abc", "/reviews/abc"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestDirectorsServedFromCache(t *testing.T) {
	c := cache.NewInMemory()
	body := `[{"id":1,"name":"Jane Doe"}]`
	if err := c.Set(context.Background(), "directors:all", body, time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	s := server.New(nil, c, nil)
	r := s.Router()
	req := httptest.NewRequest(http.MethodGet, "/directors", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != body {
		t.Fatalf("expected cached listing, got %s", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := server.New(nil, cache.NewInMemory(), []string{"https://app.example.com"})
	r := s.Router()
	req := httptest.NewRequest(http.MethodOptions, "/films", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
