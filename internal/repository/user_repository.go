package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hotel-management/internal/model"
	"hotel-management/internal/utils"
)

// UserRepo provides access to the users table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user with a bcrypt-hashed password and returns the
// assigned id. ErrUsernameExists is returned on a duplicate username.
func (r *UserRepo) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, username, hash, role)
	if err != nil {
		// MySQL duplicate key error
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername loads a user by username. ErrNotFound is returned when
// no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
