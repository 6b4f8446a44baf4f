package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// TokenRepo manages hashed refresh tokens. Only SHA-256 digests of the
// raw tokens are stored; see utils.HashRefreshRaw.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a new TokenRepo bound to the given database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh saves a refresh token hash for a user with its expiry.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt.UTC())
	return err
}

// LookupActive returns the user id owning an unexpired, unrevoked token
// hash. ErrNotFound is returned when the hash is unknown, expired or
// revoked.
func (r *TokenRepo) LookupActive(ctx context.Context, tokenHash string) (uint64, error) {
	const q = `SELECT user_id FROM refresh_tokens
	           WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()`
	var userID uint64
	err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return userID, nil
}

// Revoke marks a refresh token as revoked. Revoking an already revoked
// or unknown token returns ErrNotFound.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
	           WHERE token_hash = ? AND revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, tokenHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
