package repos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so existence checks
// can run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func exists(ctx context.Context, q querier, sql string, id int64, missing error) error {
	var ok bool
	if err := q.QueryRow(ctx, sql, id).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return missing
	}
	return nil
}

func userExists(ctx context.Context, q querier, id int64) error {
	return exists(ctx, q, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id, ErrUserNotFound)
}

func filmExists(ctx context.Context, q querier, id int64) error {
	return exists(ctx, q, `SELECT EXISTS (SELECT 1 FROM films WHERE id = $1)`, id, ErrFilmNotFound)
}

func reviewExists(ctx context.Context, q querier, id int64) error {
	return exists(ctx, q, `SELECT EXISTS (SELECT 1 FROM reviews WHERE review_id = $1)`, id, ErrReviewNotFound)
}

func directorExists(ctx context.Context, q querier, id int64) error {
	return exists(ctx, q, `SELECT EXISTS (SELECT 1 FROM directors WHERE id = $1)`, id, ErrDirectorNotFound)
}
