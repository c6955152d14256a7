package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"filmorate-server/internal/model"
	pkghttpx "filmorate-server/pkg/httpx"
)

type reviewPayload struct {
	ReviewID   int64  `json:"review_id"`
	Content    string `json:"content" validate:"required"`
	IsPositive *bool  `json:"is_positive" validate:"required"`
	UserID     int64  `json:"user_id" validate:"required"`
	FilmID     int64  `json:"film_id" validate:"required"`
}

func (p *reviewPayload) toReview() model.Review {
	return model.Review{
		ReviewID:   p.ReviewID,
		Content:    p.Content,
		IsPositive: *p.IsPositive,
		UserID:     p.UserID,
		FilmID:     p.FilmID,
	}
}

// CreateReview handles POST /reviews
func CreateReview(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p reviewPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := validate.Struct(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid review payload", err))
			return
		}
		rev, err := d.Repo.CreateReview(r.Context(), p.toReview())
		if err != nil {
			writeDomainError(w, r, err, "failed to create review")
			return
		}
		writeJSON(w, http.StatusCreated, rev)
	}
}

// UpdateReview handles PUT /reviews
func UpdateReview(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p reviewPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := validate.Struct(&p); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid review payload", err))
			return
		}
		rev, err := d.Repo.UpdateReview(r.Context(), p.toReview())
		if err != nil {
			writeDomainError(w, r, err, "failed to update review")
			return
		}
		writeJSON(w, http.StatusOK, rev)
	}
}

// DeleteReview handles DELETE /reviews/{id}
func DeleteReview(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := d.Repo.DeleteReview(r.Context(), id); err != nil {
			writeDomainError(w, r, err, "failed to delete review")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetReview handles GET /reviews/{id}
func GetReview(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		rev, err := d.Repo.Reviews.GetByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err, "failed to get review")
			return
		}
		writeJSON(w, http.StatusOK, rev)
	}
}

// ListReviews handles GET /reviews?filmId=&count=
func ListReviews(d Deps) http.HandlerFunc {
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
		var filmID *int64
		if s := q.Get("filmId"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				writeError(w, r, pkghttpx.BadRequest("invalid filmId", err))
				return
			}
			filmID = &v
		}
		reviews, err := d.Repo.Reviews.ListByFilm(r.Context(), filmID, count)
		if err != nil {
			writeDomainError(w, r, err, "failed to list reviews")
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

func reviewVote(d Deps, fn func(*Deps, *http.Request, int64, int64) error, failMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid id", err))
			return
		}
		if err := fn(&d, r, reviewID, userID); err != nil {
			writeDomainError(w, r, err, failMsg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddReviewLike handles PUT /reviews/{id}/like/{userId}
func AddReviewLike(d Deps) http.HandlerFunc {
	return reviewVote(d, func(d *Deps, r *http.Request, reviewID, userID int64) error {
		return d.Repo.Reviews.AddLike(r.Context(), reviewID, userID)
	}, "failed to add review like")
}

// AddReviewDislike handles PUT /reviews/{id}/dislike/{userId}
func AddReviewDislike(d Deps) http.HandlerFunc {
	return reviewVote(d, func(d *Deps, r *http.Request, reviewID, userID int64) error {
		return d.Repo.Reviews.AddDislike(r.Context(), reviewID, userID)
	}, "failed to add review dislike")
}

// RemoveReviewLike handles DELETE /reviews/{id}/like/{userId}
func RemoveReviewLike(d Deps) http.HandlerFunc {
	return reviewVote(d, func(d *Deps, r *http.Request, reviewID, userID int64) error {
		return d.Repo.Reviews.RemoveLike(r.Context(), reviewID, userID)
	}, "failed to remove review like")
}

// RemoveReviewDislike handles DELETE /reviews/{id}/dislike/{userId}
func RemoveReviewDislike(d Deps) http.HandlerFunc {
	return reviewVote(d, func(d *Deps, r *http.Request, reviewID, userID int64) error {
		return d.Repo.Reviews.RemoveDislike(r.Context(), reviewID, userID)
	}, "failed to remove review dislike")
}
