package repos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-server/internal/model"
)

// ReviewsRepo owns reviews and their usefulness counter. The counter is
// derived state: it moves only through the vote transitions below.
type ReviewsRepo struct {
	db *pgxpool.Pool
}

func (r *ReviewsRepo) Create(ctx context.Context, rev model.Review) (model.Review, error) {
	if err := userExists(ctx, r.db, rev.UserID); err != nil {
		return model.Review{}, err
	}
	if err := filmExists(ctx, r.db, rev.FilmID); err != nil {
		return model.Review{}, err
	}
	rev.Useful = 0
	err := r.db.QueryRow(ctx,
		`INSERT INTO reviews (content, is_positive, user_id, film_id, useful)
		 VALUES ($1, $2, $3, $4, 0) RETURNING review_id`,
		rev.Content, rev.IsPositive, rev.UserID, rev.FilmID,
	).Scan(&rev.ReviewID)
	if err != nil {
		return model.Review{}, err
	}
	return rev, nil
}

// Update mutates content and positivity only; useful and the vote rows are
// untouched. Returns the stored review.
func (r *ReviewsRepo) Update(ctx context.Context, rev model.Review) (model.Review, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE reviews SET content = $1, is_positive = $2 WHERE review_id = $3`,
		rev.Content, rev.IsPositive, rev.ReviewID,
	)
	if err != nil {
		return model.Review{}, err
	}
	if tag.RowsAffected() == 0 {
		return model.Review{}, ErrReviewNotFound
	}
	return r.GetByID(ctx, rev.ReviewID)
}

// Delete removes the review and returns it; vote rows cascade with it.
func (r *ReviewsRepo) Delete(ctx context.Context, id int64) (model.Review, error) {
	rev, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	_, err = r.db.Exec(ctx, `DELETE FROM reviews WHERE review_id = $1`, id)
	if err != nil {
		return model.Review{}, err
	}
	return rev, nil
}

func (r *ReviewsRepo) GetByID(ctx context.Context, id int64) (model.Review, error) {
	var rev model.Review
	err := r.db.QueryRow(ctx,
		`SELECT review_id, content, is_positive, user_id, film_id, useful
		 FROM reviews WHERE review_id = $1`, id,
	).Scan(&rev.ReviewID, &rev.Content, &rev.IsPositive, &rev.UserID, &rev.FilmID, &rev.Useful)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Review{}, ErrReviewNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return rev, nil
}

// ListByFilm returns up to count reviews ordered by usefulness descending;
// filmID nil means all films.
func (r *ReviewsRepo) ListByFilm(ctx context.Context, filmID *int64, count int) ([]model.Review, error) {
	var rows pgx.Rows
	var err error
	if filmID == nil {
		rows, err = r.db.Query(ctx,
			`SELECT review_id, content, is_positive, user_id, film_id, useful
			 FROM reviews ORDER BY useful DESC, review_id LIMIT $1`, count)
	} else {
		if err := filmExists(ctx, r.db, *filmID); err != nil {
			return nil, err
		}
		rows, err = r.db.Query(ctx,
			`SELECT review_id, content, is_positive, user_id, film_id, useful
			 FROM reviews WHERE film_id = $1 ORDER BY useful DESC, review_id LIMIT $2`, *filmID, count)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ReviewID, &rev.Content, &rev.IsPositive, &rev.UserID, &rev.FilmID, &rev.Useful); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

type voteAction int

const (
	voteLike voteAction = iota
	voteDislike
	unvoteLike
	unvoteDislike
)

// voteTransition decides the outcome of a vote action given the current
// vote (nil = no vote, true = like, false = dislike). It returns the next
// vote state (nil = delete the row), the delta to apply to useful, and
// whether anything changes at all. Removals only act on a matching vote;
// they never flip the opposite one.
func voteTransition(current *bool, action voteAction) (next *bool, delta int, apply bool) {
	t, f := true, false
	switch action {
	case voteLike:
		if current == nil {
			return &t, 1, true
		}
		if *current {
			return nil, 0, false
		}
		return &t, 2, true
	case voteDislike:
		if current == nil {
			return &f, -1, true
		}
		if !*current {
			return nil, 0, false
		}
		return &f, -2, true
	case unvoteLike:
		if current != nil && *current {
			return nil, -1, true
		}
		return nil, 0, false
	case unvoteDislike:
		if current != nil && !*current {
			return nil, 1, true
		}
		return nil, 0, false
	}
	return nil, 0, false
}

func (r *ReviewsRepo) AddLike(ctx context.Context, reviewID, userID int64) error {
	return r.vote(ctx, reviewID, userID, voteLike)
}

func (r *ReviewsRepo) AddDislike(ctx context.Context, reviewID, userID int64) error {
	return r.vote(ctx, reviewID, userID, voteDislike)
}

func (r *ReviewsRepo) RemoveLike(ctx context.Context, reviewID, userID int64) error {
	return r.vote(ctx, reviewID, userID, unvoteLike)
}

func (r *ReviewsRepo) RemoveDislike(ctx context.Context, reviewID, userID int64) error {
	return r.vote(ctx, reviewID, userID, unvoteDislike)
}

// vote runs one transition after existence checks. Two first votes from
// the same user can both see no row and race to insert; the primary key
// rejects the loser after the winner commits, so one rerun against the
// now-visible row settles it.
func (r *ReviewsRepo) vote(ctx context.Context, reviewID, userID int64, action voteAction) error {
	if err := reviewExists(ctx, r.db, reviewID); err != nil {
		return err
	}
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	err := r.voteOnce(ctx, reviewID, userID, action)
	if isUniqueViolation(err) {
		err = r.voteOnce(ctx, reviewID, userID, action)
	}
	return err
}

// voteOnce applies one transition: the vote-row write and the counter
// update commit together, with the current row locked so concurrent votes
// from the same user serialize instead of losing updates.
func (r *ReviewsRepo) voteOnce(ctx context.Context, reviewID, userID int64, action voteAction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var current *bool
	var isLike bool
	err = tx.QueryRow(ctx,
		`SELECT is_like FROM review_likes WHERE review_id = $1 AND user_id = $2 FOR UPDATE`,
		reviewID, userID,
	).Scan(&isLike)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		current = nil
	case err != nil:
		return err
	default:
		current = &isLike
	}

	next, delta, apply := voteTransition(current, action)
	if !apply {
		return tx.Commit(ctx)
	}

	switch {
	case next == nil:
		_, err = tx.Exec(ctx,
			`DELETE FROM review_likes WHERE review_id = $1 AND user_id = $2`, reviewID, userID)
	case current == nil:
		_, err = tx.Exec(ctx,
			`INSERT INTO review_likes (review_id, user_id, is_like) VALUES ($1, $2, $3)`,
			reviewID, userID, *next)
	default:
		_, err = tx.Exec(ctx,
			`UPDATE review_likes SET is_like = $1 WHERE review_id = $2 AND user_id = $3`,
			*next, reviewID, userID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE reviews SET useful = useful + $1 WHERE review_id = $2`, delta, reviewID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
