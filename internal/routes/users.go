package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"filmorate-server/internal/model"
	pkghttpx "filmorate-server/pkg/httpx"
)

type userPayload struct {
	ID       int64      `json:"id"`
	Email    string     `json:"email" validate:"required,email"`
	Login    string     `json:"login" validate:"required"`
	Name     string     `json:"name"`
	Birthday model.Date `json:"birthday"`
}

func (p *userPayload) check() string {
	if err := validate.Struct(p); err != nil {
		return "invalid user payload"
	}
	if strings.ContainsRune(p.Login, ' ') {
		return "login must not contain spaces"
	}
	if p.Birthday.IsZero() || p.Birthday.After(time.Now()) {
		return "birthday must be in the past"
	}
	return ""
}

// toUser applies the display-name fallback: blank name becomes the login.
func (p *userPayload) toUser() model.User {
	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = p.Login
	}
	return model.User{ID: p.ID, Email: p.Email, Login: p.Login, Name: name, Birthday: p.Birthday}
}

// CreateUser handles POST /users
func CreateUser(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p userPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if msg := p.check(); msg != "" {
			writeError(w, r, pkghttpx.BadRequest(msg, nil))
			return
		}
		u, err := d.Repo.Users.Create(r.Context(), p.toUser())
		if err != nil {
			writeDomainError(w, r, err, "failed to create user")
			return
		}
		log.Info().Int64("user_id", u.ID).Str("login", u.Login).Msg("user created")
		writeJSON(w, http.StatusCreated, u)
	}
}

// UpdateUser handles PUT /users
func UpdateUser(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p userPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if msg := p.check(); msg != "" {
			writeError(w, r, pkghttpx.BadRequest(msg, nil))
			return
		}
		u, err := d.Repo.Users.Update(r.Context(), p.toUser())
		if err != nil {
			writeDomainError(w, r, err, "failed to update user")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// ListUsers handles GET /users
func ListUsers(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := d.Repo.Users.GetAll(r.Context())
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list users", err))
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// GetUser handles GET /users/{id}
func GetUser(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		u, err := d.Repo.Users.GetByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err, "failed to get user")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// DeleteUser handles DELETE /users/{id}
func DeleteUser(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.Users.Delete(r.Context(), id); err != nil {
			writeDomainError(w, r, err, "failed to delete user")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
