package model

import "time"

// Score bounds for a rating. The form submits an integer; anything outside
// this range is rejected before it reaches the database.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one user's score for one movie.
//
// At most one Rating exists per (UserID, MovieID) pair. This is enforced by
// a UNIQUE constraint in the database, not by an application-level lookup,
// so two concurrent submissions for the same pair cannot create duplicates —
// the second simply updates the first (last write wins).
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingOutcome reports whether an upsert inserted a new row or rewrote an
// existing one. Handlers use it to pick the flash message.
type RatingOutcome string

const (
	RatingCreated RatingOutcome = "created"
	RatingUpdated RatingOutcome = "updated"
)

// UserRating pairs a rating's score with the rated movie's title for the
// user-detail page.
type UserRating struct {
	MovieID    string `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	Score      int    `json:"score"`
}
