package routes

import (
	"net/http"

	pkghttpx "filmorate-server/pkg/httpx"
)

// UserFeed handles GET /users/{id}/feed
func UserFeed(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		events, err := d.Repo.GetUserFeed(r.Context(), userID)
		if err != nil {
			writeDomainError(w, r, err, "failed to get feed")
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

// Recommendations handles GET /users/{id}/recommendations
func Recommendations(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		films, err := d.Repo.GetRecommendations(r.Context(), userID)
		if err != nil {
			writeDomainError(w, r, err, "failed to get recommendations")
			return
		}
		writeJSON(w, http.StatusOK, films)
	}
}
