package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/model"
	"github.com/sakif/movie-ratings/internal/repository"
)

// RatingService handles rating submissions.
type RatingService struct {
	movies  repository.MovieRepository
	ratings repository.RatingRepository
	logger  *slog.Logger
}

// NewRatingService creates a RatingService.
func NewRatingService(movies repository.MovieRepository, ratings repository.RatingRepository, logger *slog.Logger) *RatingService {
	return &RatingService{
		movies:  movies,
		ratings: ratings,
		logger:  logger,
	}
}

// Upsert records userID's score for movieID, creating the rating on first
// submission and overwriting it on resubmission (last write wins).
//
// An empty userID fails with an explicit Unauthenticated error rather than
// leaking down to the database as a foreign-key violation. The write itself
// is a single atomic statement in the repository, so two concurrent
// submissions for the same pair still leave exactly one row.
func (s *RatingService) Upsert(ctx context.Context, userID, movieID string, score int) (*model.Rating, model.RatingOutcome, error) {
	if userID == "" {
		return nil, "", apperror.Unauthenticated("submitting a rating")
	}
	if movieID == "" {
		return nil, "", apperror.ValidationFailed("movie_id", "movie is required")
	}
	if score < model.MinScore || score > model.MaxScore {
		return nil, "", apperror.ValidationFailed("score",
			fmt.Sprintf("score must be between %d and %d", model.MinScore, model.MaxScore))
	}

	// Check the movie exists up front so an unknown id becomes a NotFound
	// page instead of a constraint error.
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, "", err
	}

	rating, inserted, err := s.ratings.Upsert(ctx, userID, movieID, score)
	if err != nil {
		return nil, "", fmt.Errorf("service/rating: upserting (user=%s, movie=%s): %w", userID, movieID, err)
	}

	outcome := model.RatingUpdated
	if inserted {
		outcome = model.RatingCreated
	}

	s.logger.Info("rating submitted",
		slog.String("userID", userID),
		slog.String("movieID", movieID),
		slog.Int("score", score),
		slog.String("outcome", string(outcome)),
	)

	return rating, outcome, nil
}
