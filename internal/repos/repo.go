package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"filmorate-server/internal/model"
	"filmorate-server/internal/recommend"
)

type Repository struct {
	db *pgxpool.Pool

	Users       *UsersRepo
	Films       *FilmsRepo
	Likes       *LikesRepo
	Friendships *FriendshipsRepo
	Reviews     *ReviewsRepo
	Feed        *FeedRepo
	Reference   *ReferenceRepo
}

func New(db *pgxpool.Pool) *Repository {
	r := &Repository{db: db}
	r.Users = &UsersRepo{db: db}
	r.Films = &FilmsRepo{db: db}
	r.Likes = &LikesRepo{db: db}
	r.Friendships = &FriendshipsRepo{db: db}
	r.Reviews = &ReviewsRepo{db: db}
	r.Feed = &FeedRepo{db: db}
	r.Reference = &ReferenceRepo{db: db}
	return r
}

// Use-case entry points that combine an edge mutation with its feed event.
// Feed append failures are logged, not surfaced: the mutation has already
// committed and the log is best-effort display data.

func (r *Repository) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := r.Friendships.Add(ctx, userID, friendID); err != nil {
		return err
	}
	r.appendFeed(ctx, userID, model.EventFriend, model.OpAdd, friendID)
	return nil
}

func (r *Repository) ConfirmFriend(ctx context.Context, userID, friendID int64) error {
	if err := r.Friendships.Confirm(ctx, userID, friendID); err != nil {
		return err
	}
	r.appendFeed(ctx, userID, model.EventFriend, model.OpUpdate, friendID)
	return nil
}

func (r *Repository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := r.Friendships.Remove(ctx, userID, friendID); err != nil {
		return err
	}
	r.appendFeed(ctx, userID, model.EventFriend, model.OpRemove, friendID)
	return nil
}

// AddLike records a like; the feed event is appended only when the edge was
// actually created, so a duplicate add leaves the feed untouched.
func (r *Repository) AddLike(ctx context.Context, filmID, userID int64) error {
	inserted, err := r.Likes.Add(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if inserted {
		r.appendFeed(ctx, userID, model.EventLike, model.OpAdd, filmID)
	}
	return nil
}

func (r *Repository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	removed, err := r.Likes.Remove(ctx, filmID, userID)
	if err != nil {
		return err
	}
	if removed {
		r.appendFeed(ctx, userID, model.EventLike, model.OpRemove, filmID)
	}
	return nil
}

func (r *Repository) CreateReview(ctx context.Context, rev model.Review) (model.Review, error) {
	created, err := r.Reviews.Create(ctx, rev)
	if err != nil {
		return model.Review{}, err
	}
	r.appendFeed(ctx, created.UserID, model.EventReview, model.OpAdd, created.ReviewID)
	return created, nil
}

func (r *Repository) UpdateReview(ctx context.Context, rev model.Review) (model.Review, error) {
	updated, err := r.Reviews.Update(ctx, rev)
	if err != nil {
		return model.Review{}, err
	}
	// The feed actor is the review's author, not whoever sent the update.
	r.appendFeed(ctx, updated.UserID, model.EventReview, model.OpUpdate, updated.ReviewID)
	return updated, nil
}

func (r *Repository) DeleteReview(ctx context.Context, id int64) error {
	deleted, err := r.Reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	r.appendFeed(ctx, deleted.UserID, model.EventReview, model.OpRemove, id)
	return nil
}

// GetRecommendations recomputes suggestions from the full like matrix on
// every call; there is no materialized state behind it.
func (r *Repository) GetRecommendations(ctx context.Context, userID int64) ([]model.Film, error) {
	if err := userExists(ctx, r.db, userID); err != nil {
		return nil, err
	}
	matrix, err := r.Likes.Matrix(ctx)
	if err != nil {
		return nil, err
	}
	ids := recommend.Recommend(userID, matrix)
	return r.Films.GetByIDs(ctx, ids)
}

func (r *Repository) GetUserFeed(ctx context.Context, userID int64) ([]model.FeedEvent, error) {
	return r.Feed.ByUser(ctx, userID)
}

func (r *Repository) appendFeed(ctx context.Context, userID int64, eventType, operation string, entityID int64) {
	if err := r.Feed.Append(ctx, userID, eventType, operation, entityID); err != nil {
		log.Error().Err(err).
			Int64("user_id", userID).
			Str("event_type", eventType).
			Str("operation", operation).
			Msg("feed append failed")
	}
}
