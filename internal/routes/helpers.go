package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"filmorate-server/internal/repos"
	pkghttpx "filmorate-server/pkg/httpx"
)

// validate is shared by all handlers in this package; validator instances
// cache struct metadata and are safe for concurrent use.
var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	pkghttpx.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, r *http.Request, he *pkghttpx.HTTPError) {
	pkghttpx.WriteError(w, r, he)
}

// writeDomainError maps repository errors onto transport responses;
// anything unrecognized is an internal failure.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, repos.ErrUserNotFound),
		errors.Is(err, repos.ErrFilmNotFound),
		errors.Is(err, repos.ErrReviewNotFound),
		errors.Is(err, repos.ErrDirectorNotFound),
		errors.Is(err, repos.ErrGenreNotFound),
		errors.Is(err, repos.ErrMpaNotFound),
		errors.Is(err, repos.ErrFriendshipNotFound):
		writeError(w, r, pkghttpx.NotFound(err.Error(), err))
	default:
		writeError(w, r, pkghttpx.Internal(fallback, err))
	}
}

// pathID parses a numeric path segment.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
