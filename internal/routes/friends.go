package routes

import (
	"net/http"

	pkghttpx "filmorate-server/pkg/httpx"
)

func friendPair(r *http.Request) (int64, int64, error) {
	userID, err := pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		return 0, 0, err
	}
	return userID, friendID, nil
}

// AddFriend handles PUT /users/{id}/friends/{friendId}
func AddFriend(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, friendID, err := friendPair(r)
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.AddFriend(r.Context(), userID, friendID); err != nil {
			writeDomainError(w, r, err, "failed to add friend")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ConfirmFriend handles PUT /users/{id}/friends/{friendId}/confirm
func ConfirmFriend(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, friendID, err := friendPair(r)
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.ConfirmFriend(r.Context(), userID, friendID); err != nil {
			writeDomainError(w, r, err, "failed to confirm friend")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveFriend handles DELETE /users/{id}/friends/{friendId}
func RemoveFriend(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, friendID, err := friendPair(r)
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.RemoveFriend(r.Context(), userID, friendID); err != nil {
			writeDomainError(w, r, err, "failed to remove friend")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListFriends handles GET /users/{id}/friends
func ListFriends(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		friends, err := d.Repo.Friendships.Friends(r.Context(), userID)
		if err != nil {
			writeDomainError(w, r, err, "failed to list friends")
			return
		}
		writeJSON(w, http.StatusOK, friends)
	}
}

// CommonFriends handles GET /users/{id}/friends/common/{otherId}
func CommonFriends(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		otherID, err := pathID(r, "otherId")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		common, err := d.Repo.Friendships.CommonFriends(r.Context(), userID, otherID)
		if err != nil {
			writeDomainError(w, r, err, "failed to get common friends")
			return
		}
		writeJSON(w, http.StatusOK, common)
	}
}
