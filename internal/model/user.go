package model

import "time"

// User represents an application user record as stored in the
// `users` table. Accounts are created at registration and are
// immutable afterwards; password rotation is not supported.
// Handlers define their own response types with JSON tags, so
// none are attached here.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name, also denormalized onto booked slots.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
