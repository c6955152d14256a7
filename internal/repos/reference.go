package repos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-server/internal/model"
)

// ReferenceRepo serves the static reference tables (genres, MPA ratings)
// and director CRUD.
type ReferenceRepo struct {
	db *pgxpool.Pool
}

func (r *ReferenceRepo) Genres(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *ReferenceRepo) GenreByID(ctx context.Context, id int64) (model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Genre{}, ErrGenreNotFound
	}
	return g, err
}

func (r *ReferenceRepo) MpaRatings(ctx context.Context) ([]model.MpaRating, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MpaRating, 0)
	for rows.Next() {
		var m model.MpaRating
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReferenceRepo) MpaByID(ctx context.Context, id int64) (model.MpaRating, error) {
	var m model.MpaRating
	err := r.db.QueryRow(ctx, `SELECT id, name FROM mpa_ratings WHERE id = $1`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.MpaRating{}, ErrMpaNotFound
	}
	return m, err
}

func (r *ReferenceRepo) Directors(ctx context.Context) ([]model.Director, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM directors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Director, 0)
	for rows.Next() {
		var d model.Director
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ReferenceRepo) DirectorByID(ctx context.Context, id int64) (model.Director, error) {
	var d model.Director
	err := r.db.QueryRow(ctx, `SELECT id, name FROM directors WHERE id = $1`, id).Scan(&d.ID, &d.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Director{}, ErrDirectorNotFound
	}
	return d, err
}

func (r *ReferenceRepo) CreateDirector(ctx context.Context, d model.Director) (model.Director, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO directors (name) VALUES ($1) RETURNING id`, d.Name,
	).Scan(&d.ID)
	if err != nil {
		return model.Director{}, err
	}
	return d, nil
}

func (r *ReferenceRepo) UpdateDirector(ctx context.Context, d model.Director) (model.Director, error) {
	tag, err := r.db.Exec(ctx, `UPDATE directors SET name = $1 WHERE id = $2`, d.Name, d.ID)
	if err != nil {
		return model.Director{}, err
	}
	if tag.RowsAffected() == 0 {
		return model.Director{}, ErrDirectorNotFound
	}
	return d, nil
}

func (r *ReferenceRepo) DeleteDirector(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDirectorNotFound
	}
	return nil
}
