package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/model"
	"github.com/sakif/movie-ratings/internal/repository"
)

// MovieRepo reads and seeds the movie catalog.
type MovieRepo struct {
	conn *sql.DB
}

var _ repository.MovieRepository = (*MovieRepo)(nil)

// Create inserts a movie. Only the seeder and tests call this — there is no
// HTTP route that creates movies.
func (r *MovieRepo) Create(ctx context.Context, movie *model.Movie) error {
	if movie.ID == "" {
		movie.ID = xid.New().String()
	}
	movie.CreatedAt = time.Now().UTC()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO movies (id, title, released_at, imdb_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		movie.ID,
		movie.Title,
		movie.ReleasedAt,
		movie.IMDBURL,
		movie.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating movie: %w", err)
	}

	return nil
}

// GetByID retrieves a movie by ID.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	var m model.Movie
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, title, released_at, imdb_url, created_at
		 FROM movies WHERE id = ?`,
		id,
	).Scan(
		&m.ID,
		&m.Title,
		&m.ReleasedAt,
		&m.IMDBURL,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("movie", id)
		}
		return nil, fmt.Errorf("sqlite: getting movie %s: %w", id, err)
	}
	return &m, nil
}

// List returns all movies ordered by title ascending. The ordering is part
// of the contract — the movie list page relies on it.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, title, released_at, imdb_url, created_at
		 FROM movies ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing movies: %w", err)
	}
	defer rows.Close()

	movies := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.ReleasedAt, &m.IMDBURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning movie row: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating movie rows: %w", err)
	}

	return movies, nil
}

// Count reports how many movies exist.
func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting movies: %w", err)
	}
	return n, nil
}
