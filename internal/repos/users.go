package repos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-server/internal/model"
)

type UsersRepo struct {
	db *pgxpool.Pool
}

func (r *UsersRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Email, u.Login, u.Name, u.Birthday.Time,
	).Scan(&u.ID)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u model.User) (model.User, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`,
		u.Email, u.Login, u.Name, u.Birthday.Time, u.ID,
	)
	if err != nil {
		return model.User{}, err
	}
	if tag.RowsAffected() == 0 {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, login, name, birthday FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday.Time)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email, login, name, birthday FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday.Time); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
