package model

import "time"

// User represents a staff-side account in the `users` table.  Guests do
// not log in through this table; they are identified by guest records and
// receive chat credentials from the front desk.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (admin, staff or guest).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the issued token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
