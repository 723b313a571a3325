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

// RatingRepo persists ratings, one row per (user, movie) pair.
type RatingRepo struct {
	conn *sql.DB
}

var _ repository.RatingRepository = (*RatingRepo)(nil)

// Upsert atomically inserts or updates the rating for (userID, movieID).
//
// WHY ONE STATEMENT AND NOT LOOKUP-THEN-BRANCH?
// A separate "SELECT, then INSERT or UPDATE" has a race window: two
// concurrent submissions for the same pair can both miss the lookup and
// both INSERT, leaving duplicate rows. ON CONFLICT targets the
// UNIQUE(user_id, movie_id) constraint, so the database arbitrates — the
// loser of the race becomes an UPDATE of the winner's row and exactly one
// row exists afterwards, holding the last written score.
//
// The created/updated outcome falls out of the timestamps: an INSERT binds
// the same value to created_at and updated_at, while DO UPDATE only moves
// updated_at. Equal timestamps in the RETURNING row mean the insert won.
func (r *RatingRepo) Upsert(ctx context.Context, userID, movieID string, score int) (*model.Rating, bool, error) {
	now := time.Now().UTC()

	rating := model.Rating{
		UserID:  userID,
		MovieID: movieID,
		Score:   score,
	}
	err := r.conn.QueryRowContext(ctx,
		`INSERT INTO ratings (id, user_id, movie_id, score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, movie_id)
		 DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 RETURNING id, created_at, updated_at`,
		xid.New().String(),
		userID,
		movieID,
		score,
		now,
		now,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: upserting rating (user=%s, movie=%s): %w", userID, movieID, err)
	}

	inserted := rating.CreatedAt.Equal(rating.UpdatedAt)
	return &rating, inserted, nil
}

// GetByUserAndMovie returns the rating a user gave a movie.
func (r *RatingRepo) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*model.Rating, error) {
	var rating model.Rating
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, user_id, movie_id, score, created_at, updated_at
		 FROM ratings WHERE user_id = ? AND movie_id = ?`,
		userID, movieID,
	).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Score,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("rating", userID+"/"+movieID)
		}
		return nil, fmt.Errorf("sqlite: getting rating (user=%s, movie=%s): %w", userID, movieID, err)
	}
	return &rating, nil
}

// ScoresForMovie returns every score submitted for a movie, for the
// aggregate display on the movie detail page.
func (r *RatingRepo) ScoresForMovie(ctx context.Context, movieID string) ([]int, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT score FROM ratings WHERE movie_id = ? ORDER BY score ASC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing scores for movie %s: %w", movieID, err)
	}
	defer rows.Close()

	scores := []int{}
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("sqlite: scanning score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating scores: %w", err)
	}

	return scores, nil
}

// ForUser returns a user's ratings joined with the rated movies' titles,
// ordered by title so the user detail page is deterministic.
func (r *RatingRepo) ForUser(ctx context.Context, userID string) ([]model.UserRating, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT r.movie_id, m.title, r.score
		 FROM ratings r
		 JOIN movies m ON m.id = r.movie_id
		 WHERE r.user_id = ?
		 ORDER BY m.title ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing ratings for user %s: %w", userID, err)
	}
	defer rows.Close()

	ratings := []model.UserRating{}
	for rows.Next() {
		var ur model.UserRating
		if err := rows.Scan(&ur.MovieID, &ur.MovieTitle, &ur.Score); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user rating: %w", err)
		}
		ratings = append(ratings, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user ratings: %w", err)
	}

	return ratings, nil
}
