package repos

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-server/internal/model"
)

// FeedRepo is the append-only activity log. Events are never edited or
// pruned.
type FeedRepo struct {
	db *pgxpool.Pool
}

// Append records one event for the acting user with a timestamp captured
// now. Concurrent appends may share a timestamp; event_id orders them.
func (r *FeedRepo) Append(ctx context.Context, userID int64, eventType, operation string, entityID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO feed_events (ts, user_id, event_type, operation, entity_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		time.Now().UnixMilli(), userID, eventType, operation, entityID,
	)
	return err
}

// ByUser returns the user's full feed, timestamp ascending, event id
// breaking ties.
func (r *FeedRepo) ByUser(ctx context.Context, userID int64) ([]model.FeedEvent, error) {
	if err := userExists(ctx, r.db, userID); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT event_id, ts, user_id, event_type, operation, entity_id
		 FROM feed_events WHERE user_id = $1 ORDER BY ts, event_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.FeedEvent, 0)
	for rows.Next() {
		var e model.FeedEvent
		if err := rows.Scan(&e.EventID, &e.Timestamp, &e.UserID, &e.EventType, &e.Operation, &e.EntityID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
