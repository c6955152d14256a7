package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-server/internal/model"
)

// FriendshipsRepo manages the directed, confirmable friend-request edges.
// Edges are asymmetric: an edge user->friend never implies friend->user.
type FriendshipsRepo struct {
	db *pgxpool.Pool
}

// Add upserts the edge (userID, friendID) back to PENDING. Re-adding an
// existing edge resets it rather than failing on the primary key.
func (r *FriendshipsRepo) Add(ctx context.Context, userID, friendID int64) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	if err := userExists(ctx, r.db, friendID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO friendships (user_id, friend_id, status) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, friend_id) DO UPDATE SET status = $3`,
		userID, friendID, model.FriendshipPending,
	)
	return err
}

// Confirm flips the edge (userID, friendID) to CONFIRMED.
func (r *FriendshipsRepo) Confirm(ctx context.Context, userID, friendID int64) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	if err := userExists(ctx, r.db, friendID); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE friendships SET status = $1 WHERE user_id = $2 AND friend_id = $3`,
		model.FriendshipConfirmed, userID, friendID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}

// Remove deletes the edge (userID, friendID). A missing edge is not an
// error.
func (r *FriendshipsRepo) Remove(ctx context.Context, userID, friendID int64) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	if err := userExists(ctx, r.db, friendID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx,
		`DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2`,
		userID, friendID,
	)
	return err
}

// Friends returns the users behind all outgoing edges of userID, any
// status, ordered by friend id.
func (r *FriendshipsRepo) Friends(ctx context.Context, userID int64) ([]model.User, error) {
	if err := userExists(ctx, r.db, userID); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.email, u.login, u.name, u.birthday
		 FROM friendships f
		 JOIN users u ON f.friend_id = u.id
		 WHERE f.user_id = $1
		 ORDER BY u.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// CommonFriends intersects two users' friend lists by id, keeping the
// iteration order of the first user's list.
func (r *FriendshipsRepo) CommonFriends(ctx context.Context, userID, otherID int64) ([]model.User, error) {
	userFriends, err := r.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := r.Friends(ctx, otherID)
	if err != nil {
		return nil, err
	}
	otherIDs := make(map[int64]struct{}, len(otherFriends))
	for _, u := range otherFriends {
		otherIDs[u.ID] = struct{}{}
	}
	common := make([]model.User, 0)
	for _, u := range userFriends {
		if _, ok := otherIDs[u.ID]; ok {
			common = append(common, u)
		}
	}
	return common, nil
}
