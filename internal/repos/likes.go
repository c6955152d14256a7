package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LikesRepo maintains the (film, user) like edge set. The per-user like
// index is a live projection of this table, never a cached structure.
type LikesRepo struct {
	db *pgxpool.Pool
}

// Add inserts a like edge. Returns inserted=false when the edge already
// existed; the primary key keeps concurrent duplicate adds down to one row.
func (r *LikesRepo) Add(ctx context.Context, filmID, userID int64) (bool, error) {
	if err := filmExists(ctx, r.db, filmID); err != nil {
		return false, err
	}
	if err := userExists(ctx, r.db, userID); err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx,
		`INSERT INTO likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		filmID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Remove deletes a like edge. Returns removed=false when no edge existed.
func (r *LikesRepo) Remove(ctx context.Context, filmID, userID int64) (bool, error) {
	if err := filmExists(ctx, r.db, filmID); err != nil {
		return false, err
	}
	if err := userExists(ctx, r.db, userID); err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx,
		`DELETE FROM likes WHERE film_id = $1 AND user_id = $2`,
		filmID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Matrix loads the full like matrix userId -> liked film ids.
func (r *LikesRepo) Matrix(ctx context.Context) (map[int64][]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, film_id FROM likes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(map[int64][]int64)
	for rows.Next() {
		var userID, filmID int64
		if err := rows.Scan(&userID, &filmID); err != nil {
			return nil, err
		}
		m[userID] = append(m[userID], filmID)
	}
	return m, rows.Err()
}
