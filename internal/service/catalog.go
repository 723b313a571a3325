package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/movie-ratings/internal/model"
	"github.com/sakif/movie-ratings/internal/repository"
)

// CatalogService serves the read-only browse pages: user list, movie list,
// and the two detail views.
type CatalogService struct {
	users   repository.UserRepository
	movies  repository.MovieRepository
	ratings repository.RatingRepository
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(
	users repository.UserRepository,
	movies repository.MovieRepository,
	ratings repository.RatingRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		users:   users,
		movies:  movies,
		ratings: ratings,
		logger:  logger,
	}
}

// UserDetail is the user page payload: the user plus their ratings paired
// with the rated movies' titles.
type UserDetail struct {
	User    *model.User
	Ratings []model.UserRating
}

// MovieDetail is the movie page payload. Scores holds every rating for the
// aggregate display; OwnRating is the current viewer's rating, nil when the
// viewer is anonymous or hasn't rated this movie.
type MovieDetail struct {
	Movie     *model.Movie
	Scores    []int
	OwnRating *model.Rating
}

// Average computes the mean score, 0 when nobody has rated.
func (d *MovieDetail) Average() float64 {
	if len(d.Scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range d.Scores {
		sum += s
	}
	return float64(sum) / float64(len(d.Scores))
}

// ListUsers returns all users, ordered by id ascending.
func (s *CatalogService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: listing users: %w", err)
	}
	return users, nil
}

// ListMovies returns all movies, ordered by title ascending.
func (s *CatalogService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: listing movies: %w", err)
	}
	return movies, nil
}

// GetUserDetail resolves the user page. Fails with ErrNotFound for an
// unknown user id.
func (s *CatalogService) GetUserDetail(ctx context.Context, userID string) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratings.ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: ratings for user %s: %w", userID, err)
	}

	return &UserDetail{User: user, Ratings: ratings}, nil
}

// GetMovieDetail resolves the movie page. Fails with ErrNotFound for an
// unknown movie id. currentUserID may be empty (anonymous viewer); when a
// viewer is set and has rated this movie, OwnRating carries their rating.
func (s *CatalogService) GetMovieDetail(ctx context.Context, movieID, currentUserID string) (*MovieDetail, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	scores, err := s.ratings.ScoresForMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: scores for movie %s: %w", movieID, err)
	}

	detail := &MovieDetail{Movie: movie, Scores: scores}

	if currentUserID != "" {
		own, err := s.ratings.GetByUserAndMovie(ctx, currentUserID, movieID)
		switch {
		case err == nil:
			detail.OwnRating = own
		case isNotFound(err):
			// Viewer hasn't rated this movie — not an error.
		default:
			return nil, fmt.Errorf("service/catalog: own rating for movie %s: %w", movieID, err)
		}
	}

	return detail, nil
}
