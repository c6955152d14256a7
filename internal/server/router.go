package server

import (
	"net/http"
	"time"

	"filmorate-server/internal/deps"
	"filmorate-server/internal/repos"
	"filmorate-server/internal/routes"
	"filmorate-server/pkg/cache"
)

type Server struct {
	deps.ServerDeps
}

func New(r *repos.Repository, c cache.Cache, corsOrigins []string) *Server {
	return &Server{ServerDeps: deps.ServerDeps{Repo: r, Cache: c, CORSOrigins: corsOrigins, StartedAt: time.Now()}}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	rd := routes.Deps{Repo: s.Repo, Cache: s.Cache}

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(s.StartedAt))

	mux.HandleFunc("POST /users", routes.CreateUser(rd))
	mux.HandleFunc("PUT /users", routes.UpdateUser(rd))
	mux.HandleFunc("GET /users", routes.ListUsers(rd))
	mux.HandleFunc("GET /users/{id}", routes.GetUser(rd))
	mux.HandleFunc("DELETE /users/{id}", routes.DeleteUser(rd))
	mux.HandleFunc("PUT /users/{id}/friends/{friendId}", routes.AddFriend(rd))
	mux.HandleFunc("PUT /users/{id}/friends/{friendId}/confirm", routes.ConfirmFriend(rd))
	mux.HandleFunc("DELETE /users/{id}/friends/{friendId}", routes.RemoveFriend(rd))
	mux.HandleFunc("GET /users/{id}/friends", routes.ListFriends(rd))
	mux.HandleFunc("GET /users/{id}/friends/common/{otherId}", routes.CommonFriends(rd))
	mux.HandleFunc("GET /users/{id}/feed", routes.UserFeed(rd))
	mux.HandleFunc("GET /users/{id}/recommendations", routes.Recommendations(rd))

	mux.HandleFunc("POST /films", routes.CreateFilm(rd))
	mux.HandleFunc("PUT /films", routes.UpdateFilm(rd))
	mux.HandleFunc("GET /films", routes.ListFilms(rd))
	mux.HandleFunc("GET /films/{id}", routes.GetFilm(rd))
	mux.HandleFunc("DELETE /films/{id}", routes.DeleteFilm(rd))
	mux.HandleFunc("PUT /films/{id}/like/{userId}", routes.AddLike(rd))
	mux.HandleFunc("DELETE /films/{id}/like/{userId}", routes.RemoveLike(rd))
	mux.HandleFunc("GET /films/popular", routes.PopularFilms(rd))
	mux.HandleFunc("GET /films/common", routes.CommonFilms(rd))
	mux.HandleFunc("GET /films/search", routes.SearchFilms(rd))
	mux.HandleFunc("GET /films/director/{directorId}", routes.FilmsByDirector(rd))

	mux.HandleFunc("POST /reviews", routes.CreateReview(rd))
	mux.HandleFunc("PUT /reviews", routes.UpdateReview(rd))
	mux.HandleFunc("GET /reviews", routes.ListReviews(rd))
	mux.HandleFunc("GET /reviews/{id}", routes.GetReview(rd))
	mux.HandleFunc("DELETE /reviews/{id}", routes.DeleteReview(rd))
	mux.HandleFunc("PUT /reviews/{id}/like/{userId}", routes.AddReviewLike(rd))
	mux.HandleFunc("PUT /reviews/{id}/dislike/{userId}", routes.AddReviewDislike(rd))
	mux.HandleFunc("DELETE /reviews/{id}/like/{userId}", routes.RemoveReviewLike(rd))
	mux.HandleFunc("DELETE /reviews/{id}/dislike/{userId}", routes.RemoveReviewDislike(rd))

	mux.HandleFunc("GET /genres", routes.Genres(rd))
	mux.HandleFunc("GET /genres/{id}", routes.GenreByID(rd))
	mux.HandleFunc("GET /mpa", routes.MpaRatings(rd))
	mux.HandleFunc("GET /mpa/{id}", routes.MpaByID(rd))

	mux.HandleFunc("GET /directors", routes.ListDirectors(rd))
	mux.HandleFunc("GET /directors/{id}", routes.GetDirector(rd))
	mux.HandleFunc("POST /directors", routes.CreateDirector(rd))
	mux.HandleFunc("PUT /directors", routes.UpdateDirector(rd))
	mux.HandleFunc("DELETE /directors/{id}", routes.DeleteDirector(rd))

	var h http.Handler = mux
	if len(s.CORSOrigins) > 0 {
		h = withCORS(s.CORSOrigins)(h)
	}
	return withCorrelationID(withLogging(h))
}
