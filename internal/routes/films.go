package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"filmorate-server/internal/model"
	pkghttpx "filmorate-server/pkg/httpx"
)

type filmPayload struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"max=200"`
	ReleaseDate model.Date       `json:"release_date"`
	Duration    int              `json:"duration" validate:"gt=0"`
	Mpa         model.MpaRating  `json:"mpa"`
	Genres      []model.Genre    `json:"genres"`
	Directors   []model.Director `json:"directors"`
}

func (p *filmPayload) check() string {
	if err := validate.Struct(p); err != nil {
		return "invalid film payload"
	}
	if p.ReleaseDate.IsZero() || p.ReleaseDate.Before(model.EarliestReleaseDate) {
		return "release date must not predate 1895-12-28"
	}
	if p.Mpa.ID <= 0 {
		return "mpa rating is required"
	}
	return ""
}

func (p *filmPayload) toFilm() model.Film {
	return model.Film{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ReleaseDate: p.ReleaseDate,
		Duration:    p.Duration,
		Mpa:         p.Mpa,
		Genres:      p.Genres,
		Directors:   p.Directors,
	}
}

// CreateFilm handles POST /films
func CreateFilm(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p filmPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if msg := p.check(); msg != "" {
			writeError(w, r, pkghttpx.BadRequest(msg, nil))
			return
		}
		f, err := d.Repo.Films.Create(r.Context(), p.toFilm())
		if err != nil {
			writeDomainError(w, r, err, "failed to create film")
			return
		}
		log.Info().Int64("film_id", f.ID).Str("name", f.Name).Msg("film created")
		writeJSON(w, http.StatusCreated, f)
	}
}

// UpdateFilm handles PUT /films
func UpdateFilm(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p filmPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if msg := p.check(); msg != "" {
			writeError(w, r, pkghttpx.BadRequest(msg, nil))
			return
		}
		f, err := d.Repo.Films.Update(r.Context(), p.toFilm())
		if err != nil {
			writeDomainError(w, r, err, "failed to update film")
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

// ListFilms handles GET /films
func ListFilms(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		films, err := d.Repo.Films.GetAll(r.Context())
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list films", err))
			return
		}
		writeJSON(w, http.StatusOK, films)
	}
}

// GetFilm handles GET /films/{id}
func GetFilm(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		f, err := d.Repo.Films.GetByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err, "failed to get film")
			return
		}
		writeJSON(w, http.StatusOK, f)
	}
}

// DeleteFilm handles DELETE /films/{id}
func DeleteFilm(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.Films.Delete(r.Context(), id); err != nil {
			writeDomainError(w, r, err, "failed to delete film")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddLike handles PUT /films/{id}/like/{userId}
func AddLike(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filmID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.AddLike(r.Context(), filmID, userID); err != nil {
			writeDomainError(w, r, err, "failed to add like")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveLike handles DELETE /films/{id}/like/{userId}
func RemoveLike(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filmID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.RemoveLike(r.Context(), filmID, userID); err != nil {
			writeDomainError(w, r, err, "failed to remove like")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PopularFilms handles GET /films/popular?count=&genreId=&year=
func PopularFilms(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		count := 10
		if s := q.Get("count"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v <= 0 {
				writeError(w, r, pkghttpx.BadRequest("count must be a positive integer", err))
				return
			}
			count = v
		}
		var genreID *int64
		if s := q.Get("genreId"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil || v <= 0 {
				writeError(w, r, pkghttpx.BadRequest("genreId must be a positive integer", err))
				return
			}
			genreID = &v
		}
		var year *int
		if s := q.Get("year"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < model.EarliestReleaseDate.Year() {
				writeError(w, r, pkghttpx.BadRequest("invalid year", err))
				return
			}
			year = &v
		}

		films, err := d.Repo.Films.Popular(r.Context(), count, genreID, year)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to get popular films", err))
			return
		}
		writeJSON(w, http.StatusOK, films)
	}
}

// CommonFilms handles GET /films/common?userId=&friendId=
func CommonFilms(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		userID, err := strconv.ParseInt(q.Get("userId"), 10, 64)
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid userId", err))
			return
		}
		friendID, err := strconv.ParseInt(q.Get("friendId"), 10, 64)
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid friendId", err))
			return
		}
		films, err := d.Repo.Films.Common(r.Context(), userID, friendID)
		if err != nil {
			writeDomainError(w, r, err, "failed to get common films")
			return
		}
		writeJSON(w, http.StatusOK, films)
	}
}

// SearchFilms handles GET /films/search?query=&by=
func SearchFilms(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := q.Get("query")
		by := q.Get("by")
		if by == "" {
			by = "title,director"
		}
		byTitle, byDirector := false, false
		for _, field := range strings.Split(by, ",") {
			switch strings.TrimSpace(field) {
			case "title":
				byTitle = true
			case "director":
				byDirector = true
			default:
				writeError(w, r, pkghttpx.BadRequest("by must contain only 'title' and/or 'director'", nil))
				return
			}
		}
		if !byTitle && !byDirector {
			writeError(w, r, pkghttpx.BadRequest("by must contain 'title' and/or 'director'", nil))
			return
		}
		films, err := d.Repo.Films.Search(r.Context(), query, byTitle, byDirector)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to search films", err))
			return
		}
		writeJSON(w, http.StatusOK, films)
	}
}

// FilmsByDirector handles GET /films/director/{directorId}?sortBy=year|likes
func FilmsByDirector(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		directorID, err := pathID(r, "directorId")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		sortBy := r.URL.Query().Get("sortBy")
		if sortBy == "" {
			sortBy = "likes"
		}
		if sortBy != "likes" && sortBy != "year" {
			writeError(w, r, pkghttpx.BadRequest("sortBy must be 'likes' or 'year'", nil))
			return
		}
		films, err := d.Repo.Films.ByDirector(r.Context(), directorID, sortBy)
		if err != nil {
			writeDomainError(w, r, err, "failed to get films by director")
			return
		}
		writeJSON(w, http.StatusOK, films)
	}
}
