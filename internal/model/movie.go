package model

import "time"

// Movie is a catalog entry. Movies are seeded at startup and read-only at
// runtime — there is no route that creates or edits one.
//
// ReleasedAt is a pointer because seed data may not know the release date;
// nil renders as an empty cell rather than the zero time (0001-01-01).
type Movie struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
	IMDBURL    string     `json:"imdbUrl,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
