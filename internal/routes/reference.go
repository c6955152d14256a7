package routes

import (
	"encoding/json"
	"net/http"
	"time"

	pkghttpx "filmorate-server/pkg/httpx"
)

const referenceCacheTTL = 10 * time.Minute

// Genres handles GET /genres. The genre table is static reference data,
// so the serialized listing is served through the cache.
func Genres(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cached, ok := d.Cache.Get(ctx, "genres:all"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		genres, err := d.Repo.Reference.Genres(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list genres", err))
			return
		}
		b, _ := json.Marshal(genres)
		_ = d.Cache.Set(ctx, "genres:all", string(b), referenceCacheTTL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// GenreByID handles GET /genres/{id}
func GenreByID(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		g, err := d.Repo.Reference.GenreByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err, "failed to get genre")
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

// MpaRatings handles GET /mpa, served through the cache like genres.
func MpaRatings(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cached, ok := d.Cache.Get(ctx, "mpa:all"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		ratings, err := d.Repo.Reference.MpaRatings(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list mpa ratings", err))
			return
		}
		b, _ := json.Marshal(ratings)
		_ = d.Cache.Set(ctx, "mpa:all", string(b), referenceCacheTTL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// MpaByID handles GET /mpa/{id}
func MpaByID(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		m, err := d.Repo.Reference.MpaByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err, "failed to get mpa rating")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
