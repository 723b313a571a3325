package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/sakif/movie-ratings/internal/apperror"
	"github.com/sakif/movie-ratings/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. They store
// data in maps and mimic the real implementations' contracts (ordering,
// conflict and not-found errors) closely enough for service tests, while
// the repository tests cover the real SQL.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------
// users
// ---------------------------------------------------------------------

type mockUserRepo struct {
	users  map[string]*model.User // by id
	nextID int
	// createErr, when set, is returned by Create — simulates storage failure.
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("account", user.Email)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%04d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ---------------------------------------------------------------------
// movies
// ---------------------------------------------------------------------

type mockMovieRepo struct {
	movies map[string]*model.Movie
	nextID int
}

func newMockMovieRepo() *mockMovieRepo {
	return &mockMovieRepo{movies: make(map[string]*model.Movie)}
}

func (m *mockMovieRepo) Create(_ context.Context, movie *model.Movie) error {
	m.nextID++
	if movie.ID == "" {
		movie.ID = fmt.Sprintf("movie-%04d", m.nextID)
	}
	stored := *movie
	m.movies[movie.ID] = &stored
	return nil
}

func (m *mockMovieRepo) GetByID(_ context.Context, id string) (*model.Movie, error) {
	mv, ok := m.movies[id]
	if !ok {
		return nil, apperror.NotFound("movie", id)
	}
	result := *mv
	return &result, nil
}

func (m *mockMovieRepo) List(_ context.Context) ([]model.Movie, error) {
	result := make([]model.Movie, 0, len(m.movies))
	for _, mv := range m.movies {
		result = append(result, *mv)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (m *mockMovieRepo) Count(_ context.Context) (int, error) {
	return len(m.movies), nil
}

// ---------------------------------------------------------------------
// ratings
// ---------------------------------------------------------------------

type mockRatingRepo struct {
	// keyed by userID+"/"+movieID — one entry per pair, like the UNIQUE
	// constraint guarantees.
	ratings map[string]*model.Rating
	movies  *mockMovieRepo // for joining titles in ForUser
	nextID  int
}

func newMockRatingRepo(movies *mockMovieRepo) *mockRatingRepo {
	return &mockRatingRepo{ratings: make(map[string]*model.Rating), movies: movies}
}

func (m *mockRatingRepo) key(userID, movieID string) string {
	return userID + "/" + movieID
}

func (m *mockRatingRepo) Upsert(_ context.Context, userID, movieID string, score int) (*model.Rating, bool, error) {
	k := m.key(userID, movieID)
	if existing, ok := m.ratings[k]; ok {
		existing.Score = score
		result := *existing
		return &result, false, nil
	}
	m.nextID++
	r := &model.Rating{
		ID:      fmt.Sprintf("rating-%04d", m.nextID),
		UserID:  userID,
		MovieID: movieID,
		Score:   score,
	}
	m.ratings[k] = r
	result := *r
	return &result, true, nil
}

func (m *mockRatingRepo) GetByUserAndMovie(_ context.Context, userID, movieID string) (*model.Rating, error) {
	r, ok := m.ratings[m.key(userID, movieID)]
	if !ok {
		return nil, apperror.NotFound("rating", m.key(userID, movieID))
	}
	result := *r
	return &result, nil
}

func (m *mockRatingRepo) ScoresForMovie(_ context.Context, movieID string) ([]int, error) {
	scores := []int{}
	for _, r := range m.ratings {
		if r.MovieID == movieID {
			scores = append(scores, r.Score)
		}
	}
	sort.Ints(scores)
	return scores, nil
}

func (m *mockRatingRepo) ForUser(_ context.Context, userID string) ([]model.UserRating, error) {
	result := []model.UserRating{}
	for _, r := range m.ratings {
		if r.UserID != userID {
			continue
		}
		title := ""
		if mv, ok := m.movies.movies[r.MovieID]; ok {
			title = mv.Title
		}
		result = append(result, model.UserRating{
			MovieID:    r.MovieID,
			MovieTitle: title,
			Score:      r.Score,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MovieTitle < result[j].MovieTitle })
	return result, nil
}
