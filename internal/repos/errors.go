package repos

import "errors"

// Domain errors surfaced by the repositories. The route layer maps them to
// transport responses; nothing below it retries or swallows them.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFilmNotFound       = errors.New("film not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrDirectorNotFound   = errors.New("director not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrMpaNotFound        = errors.New("mpa rating not found")
	ErrFriendshipNotFound = errors.New("friendship not found")
)
