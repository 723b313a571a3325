// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Users register with an email and a password. The email is the logical
// login key and carries a UNIQUE constraint in the database — two accounts
// can never share one. We still generate our own internal string ID (xid)
// rather than using the email as the primary key, so ratings and sessions
// reference a stable surrogate id.
//
// WHY PasswordHash AND NOT Password?
// The plaintext password never leaves the registration/login request. Only
// the bcrypt hash is stored, and it is excluded from JSON serialization with
// `json:"-"` so it cannot leak through a response or a template that dumps
// the whole struct.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
