package routes

import (
	"encoding/json"
	"net/http"

	"filmorate-server/internal/model"
	pkghttpx "filmorate-server/pkg/httpx"
)

type directorPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

const directorsCacheKey = "directors:all"

// ListDirectors handles GET /directors. Directors are mutable reference
// data, so the cached listing is dropped by the write handlers below.
func ListDirectors(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cached, ok := d.Cache.Get(ctx, directorsCacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
		directors, err := d.Repo.Reference.Directors(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list directors", err))
			return
		}
		b, _ := json.Marshal(directors)
		_ = d.Cache.Set(ctx, directorsCacheKey, string(b), referenceCacheTTL)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// GetDirector handles GET /directors/{id}
func GetDirector(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		dir, err := d.Repo.Reference.DirectorByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err, "failed to get director")
			return
		}
		writeJSON(w, http.StatusOK, dir)
	}
}

// CreateDirector handles POST /directors
func CreateDirector(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p directorPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := validate.Struct(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("name is required", err))
			return
		}
		dir, err := d.Repo.Reference.CreateDirector(r.Context(), model.Director{Name: p.Name})
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to create director", err))
			return
		}
		_ = d.Cache.Delete(r.Context(), directorsCacheKey)
		writeJSON(w, http.StatusCreated, dir)
	}
}

// UpdateDirector handles PUT /directors
func UpdateDirector(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p directorPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := validate.Struct(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("name is required", err))
			return
		}
		dir, err := d.Repo.Reference.UpdateDirector(r.Context(), model.Director{ID: p.ID, Name: p.Name})
		if err != nil {
			writeDomainError(w, r, err, "failed to update director")
			return
		}
		_ = d.Cache.Delete(r.Context(), directorsCacheKey)
		writeJSON(w, http.StatusOK, dir)
	}
}

// DeleteDirector handles DELETE /directors/{id}
func DeleteDirector(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.Reference.DeleteDirector(r.Context(), id); err != nil {
			writeDomainError(w, r, err, "failed to delete director")
			return
		}
		_ = d.Cache.Delete(r.Context(), directorsCacheKey)
		w.WriteHeader(http.StatusNoContent)
	}
}
