package repos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"filmorate-server/internal/model"
)

type FilmsRepo struct {
	db *pgxpool.Pool
}

const filmColumns = `f.id, f.name, f.description, f.release_date, f.duration, f.mpa_rating_id, m.name AS mpa_name`

const filmSelect = `SELECT ` + filmColumns + ` FROM films f JOIN mpa_ratings m ON f.mpa_rating_id = m.id`

func (r *FilmsRepo) Create(ctx context.Context, f model.Film) (model.Film, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Film{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_rating_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		f.Name, f.Description, f.ReleaseDate.Time, f.Duration, f.Mpa.ID,
	).Scan(&f.ID)
	if err != nil {
		return model.Film{}, mapFilmRefError(err)
	}
	if err := replaceAssociations(ctx, tx, f.ID, f.Genres, f.Directors); err != nil {
		return model.Film{}, mapFilmRefError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Film{}, err
	}
	return r.GetByID(ctx, f.ID)
}

func (r *FilmsRepo) Update(ctx context.Context, f model.Film) (model.Film, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Film{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE films SET name = $1, description = $2, release_date = $3, duration = $4, mpa_rating_id = $5
		 WHERE id = $6`,
		f.Name, f.Description, f.ReleaseDate.Time, f.Duration, f.Mpa.ID, f.ID,
	)
	if err != nil {
		return model.Film{}, mapFilmRefError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Film{}, ErrFilmNotFound
	}
	if err := replaceAssociations(ctx, tx, f.ID, f.Genres, f.Directors); err != nil {
		return model.Film{}, mapFilmRefError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Film{}, err
	}
	return r.GetByID(ctx, f.ID)
}

func (r *FilmsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFilmNotFound
	}
	return nil
}

func (r *FilmsRepo) GetByID(ctx context.Context, id int64) (model.Film, error) {
	var f model.Film
	err := r.db.QueryRow(ctx, filmSelect+` WHERE f.id = $1`, id).Scan(
		&f.ID, &f.Name, &f.Description, &f.ReleaseDate.Time, &f.Duration, &f.Mpa.ID, &f.Mpa.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Film{}, ErrFilmNotFound
	}
	if err != nil {
		return model.Film{}, err
	}
	films := []model.Film{f}
	if err := r.loadAssociations(ctx, films); err != nil {
		return model.Film{}, err
	}
	return films[0], nil
}

func (r *FilmsRepo) GetAll(ctx context.Context) ([]model.Film, error) {
	return r.queryFilms(ctx, filmSelect+` ORDER BY f.id`)
}

// GetByIDs returns films resolved from ids, preserving the order given.
func (r *FilmsRepo) GetByIDs(ctx context.Context, ids []int64) ([]model.Film, error) {
	if len(ids) == 0 {
		return []model.Film{}, nil
	}
	films, err := r.queryFilms(ctx, filmSelect+` WHERE f.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Film, len(films))
	for _, f := range films {
		byID[f.ID] = f
	}
	out := make([]model.Film, 0, len(films))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Popular ranks films by like count descending, ties broken by film id
// ascending so results stay deterministic. Zero-like films are eligible.
func (r *FilmsRepo) Popular(ctx context.Context, count int, genreID *int64, year *int) ([]model.Film, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + filmColumns + `, COUNT(l.user_id) AS likes_count
		FROM films f
		JOIN mpa_ratings m ON f.mpa_rating_id = m.id
		LEFT JOIN likes l ON f.id = l.film_id`)
	args := make([]any, 0, 3)
	if genreID != nil {
		args = append(args, *genreID)
		fmt.Fprintf(&b, ` JOIN film_genres fg ON f.id = fg.film_id AND fg.genre_id = $%d`, len(args))
	}
	if year != nil {
		args = append(args, *year)
		fmt.Fprintf(&b, ` WHERE EXTRACT(YEAR FROM f.release_date) = $%d`, len(args))
	}
	args = append(args, count)
	fmt.Fprintf(&b, ` GROUP BY f.id, m.name ORDER BY likes_count DESC, f.id LIMIT $%d`, len(args))
	return r.queryRankedFilms(ctx, b.String(), args...)
}

// Common returns films liked by both users, ranked by global like count.
func (r *FilmsRepo) Common(ctx context.Context, userID, friendID int64) ([]model.Film, error) {
	if err := userExists(ctx, r.db, userID); err != nil {
		return nil, err
	}
	if err := userExists(ctx, r.db, friendID); err != nil {
		return nil, err
	}
	sql := `SELECT ` + filmColumns + `, COUNT(l.user_id) AS likes_count
		FROM films f
		JOIN mpa_ratings m ON f.mpa_rating_id = m.id
		JOIN likes l ON f.id = l.film_id
		WHERE f.id IN (
			SELECT film_id FROM likes WHERE user_id = $1
			INTERSECT
			SELECT film_id FROM likes WHERE user_id = $2
		)
		GROUP BY f.id, m.name
		ORDER BY likes_count DESC, f.id`
	return r.queryRankedFilms(ctx, sql, userID, friendID)
}

// Search matches the query case-insensitively against film titles and/or
// director names, OR across the requested fields, ranked by like count.
func (r *FilmsRepo) Search(ctx context.Context, query string, byTitle, byDirector bool) ([]model.Film, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + filmColumns + `, COUNT(l.user_id) AS likes_count
		FROM films f
		JOIN mpa_ratings m ON f.mpa_rating_id = m.id
		LEFT JOIN likes l ON f.id = l.film_id`)
	if byDirector {
		b.WriteString(` LEFT JOIN film_directors fd ON f.id = fd.film_id
			LEFT JOIN directors d ON fd.director_id = d.id`)
	}
	conds := make([]string, 0, 2)
	if byTitle {
		conds = append(conds, `f.name ILIKE $1`)
	}
	if byDirector {
		conds = append(conds, `d.name ILIKE $1`)
	}
	b.WriteString(` WHERE ` + strings.Join(conds, " OR "))
	b.WriteString(` GROUP BY f.id, m.name ORDER BY likes_count DESC, f.id`)
	return r.queryRankedFilms(ctx, b.String(), "%"+query+"%")
}

// ByDirector lists a director's films sorted by release year or like count.
func (r *FilmsRepo) ByDirector(ctx context.Context, directorID int64, sortBy string) ([]model.Film, error) {
	if err := directorExists(ctx, r.db, directorID); err != nil {
		return nil, err
	}
	if sortBy == "year" {
		sql := filmSelect + `
			JOIN film_directors fd ON f.id = fd.film_id
			WHERE fd.director_id = $1
			ORDER BY f.release_date`
		return r.queryFilms(ctx, sql, directorID)
	}
	sql := `SELECT ` + filmColumns + `, COUNT(l.user_id) AS likes_count
		FROM films f
		JOIN mpa_ratings m ON f.mpa_rating_id = m.id
		JOIN film_directors fd ON f.id = fd.film_id
		LEFT JOIN likes l ON f.id = l.film_id
		WHERE fd.director_id = $1
		GROUP BY f.id, m.name
		ORDER BY likes_count DESC, f.id`
	return r.queryRankedFilms(ctx, sql, directorID)
}

func (r *FilmsRepo) queryFilms(ctx context.Context, sql string, args ...any) ([]model.Film, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	films := make([]model.Film, 0)
	for rows.Next() {
		var f model.Film
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseDate.Time, &f.Duration, &f.Mpa.ID, &f.Mpa.Name); err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAssociations(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// queryRankedFilms scans rows carrying a trailing likes_count column.
func (r *FilmsRepo) queryRankedFilms(ctx context.Context, sql string, args ...any) ([]model.Film, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	films := make([]model.Film, 0)
	for rows.Next() {
		var f model.Film
		var likes int64
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseDate.Time, &f.Duration, &f.Mpa.ID, &f.Mpa.Name, &likes); err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAssociations(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// loadAssociations fills genres and directors for the given films with one
// batched query per association table.
func (r *FilmsRepo) loadAssociations(ctx context.Context, films []model.Film) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]int64, len(films))
	idx := make(map[int64]int, len(films))
	for i := range films {
		films[i].Genres = []model.Genre{}
		films[i].Directors = []model.Director{}
		ids[i] = films[i].ID
		idx[films[i].ID] = i
	}

	rows, err := r.db.Query(ctx,
		`SELECT fg.film_id, g.id, g.name
		 FROM film_genres fg JOIN genres g ON fg.genre_id = g.id
		 WHERE fg.film_id = ANY($1) ORDER BY g.id`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var filmID int64
		var g model.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			rows.Close()
			return err
		}
		i := idx[filmID]
		films[i].Genres = append(films[i].Genres, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx,
		`SELECT fd.film_id, d.id, d.name
		 FROM film_directors fd JOIN directors d ON fd.director_id = d.id
		 WHERE fd.film_id = ANY($1) ORDER BY d.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var filmID int64
		var d model.Director
		if err := rows.Scan(&filmID, &d.ID, &d.Name); err != nil {
			return err
		}
		i := idx[filmID]
		films[i].Directors = append(films[i].Directors, d)
	}
	return rows.Err()
}

// replaceAssociations rewrites the genre and director join rows for a film,
// de-duplicating by id.
func replaceAssociations(ctx context.Context, q querier, filmID int64, genres []model.Genre, directors []model.Director) error {
	if _, err := q.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, filmID); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `DELETE FROM film_directors WHERE film_id = $1`, filmID); err != nil {
		return err
	}
	seen := make(map[int64]struct{})
	for _, g := range genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		if _, err := q.Exec(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)`, filmID, g.ID); err != nil {
			return err
		}
	}
	seen = make(map[int64]struct{})
	for _, d := range directors {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		if _, err := q.Exec(ctx,
			`INSERT INTO film_directors (film_id, director_id) VALUES ($1, $2)`, filmID, d.ID); err != nil {
			return err
		}
	}
	return nil
}

// mapFilmRefError converts foreign key violations on film writes into the
// matching domain error.
func mapFilmRefError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return err
	}
	switch pgErr.ConstraintName {
	case "films_mpa_rating_id_fkey":
		return ErrMpaNotFound
	case "film_genres_genre_id_fkey":
		return ErrGenreNotFound
	case "film_directors_director_id_fkey":
		return ErrDirectorNotFound
	}
	return err
}
