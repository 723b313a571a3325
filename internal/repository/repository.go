// Package repository defines the storage interfaces the services depend on.
//
// Services receive these interfaces, not the concrete sqlite implementation,
// so service tests can substitute in-memory mocks and the storage engine can
// change without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/movie-ratings/internal/model"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts a new user. Fails with apperror.ErrConflict if the
	// email is already registered.
	Create(ctx context.Context, user *model.User) error
	// GetByID returns the user with the given internal ID, or
	// apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail returns the user registered under the given email, or
	// apperror.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns all users ordered by id ascending.
	List(ctx context.Context) ([]model.User, error)
}

// MovieRepository reads the movie catalog. Movies are seeded out-of-band;
// Create exists for seeding and tests only.
type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) error
	// GetByID returns the movie with the given ID, or apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	// List returns all movies ordered by title ascending.
	List(ctx context.Context) ([]model.Movie, error)
	// Count reports how many movies exist. Used to decide whether to seed.
	Count(ctx context.Context) (int, error)
}

// RatingRepository persists ratings, one row per (user, movie) pair.
type RatingRepository interface {
	// Upsert atomically inserts or updates the rating for (userID, movieID)
	// and reports whether a new row was created. The operation relies on a
	// database uniqueness constraint, so racing callers converge on one row.
	Upsert(ctx context.Context, userID, movieID string, score int) (*model.Rating, bool, error)
	// GetByUserAndMovie returns the rating a user gave a movie, or
	// apperror.ErrNotFound if they haven't rated it.
	GetByUserAndMovie(ctx context.Context, userID, movieID string) (*model.Rating, error)
	// ScoresForMovie returns every score submitted for a movie.
	ScoresForMovie(ctx context.Context, movieID string) ([]int, error)
	// ForUser returns a user's ratings joined with movie titles, ordered by
	// title ascending.
	ForUser(ctx context.Context, userID string) ([]model.UserRating, error)
}
