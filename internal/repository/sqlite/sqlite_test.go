package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/movie-ratings/internal/model"
)

// newTestDB opens a fresh in-memory database for one test. It is destroyed
// when the connection closes, so tests are fully isolated.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "$2a$04$fakehashfortestingonly"}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// createTestMovie inserts a movie and fails the test on error.
func createTestMovie(t *testing.T, db *DB, title string) *model.Movie {
	t.Helper()
	m := &model.Movie{Title: title}
	if err := db.Movies().Create(context.Background(), m); err != nil {
		t.Fatalf("failed to create test movie: %v", err)
	}
	return m
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrations again must not error — they guard every statement
	// with IF NOT EXISTS.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}
