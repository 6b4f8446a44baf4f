package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hotel-management/internal/model"
)

// RoomRepo provides CRUD operations for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, room_number, room_type, rate_per_night_cents, status, amenities, created_at`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var rm model.Room
	var amenities sql.NullString
	if err := row.Scan(&rm.ID, &rm.Number, &rm.Type, &rm.RatePerNightCents, &rm.Status, &amenities, &rm.CreatedAt); err != nil {
		return nil, err
	}
	if amenities.Valid {
		a := amenities.String
		rm.Amenities = &a
	}
	return &rm, nil
}

// Create inserts a new room and populates the generated id.
// ErrConflict is returned when the room number is already taken.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (room_number, room_type, rate_per_night_cents, status, amenities)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.Number, rm.Type, rm.RatePerNightCents, rm.Status, rm.Amenities)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// GetByID returns a single room or ErrNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rm, nil
}

// List returns rooms ordered by room number, optionally filtered by
// status. An empty status returns all rooms.
func (r *RoomRepo) List(ctx context.Context, status string) ([]model.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

// Update applies non-zero fields of the patch to a room. Passing a nil
// patch pointer for every field is a no-op. ErrNotFound is returned when
// the room does not exist.
func (r *RoomRepo) Update(ctx context.Context, id uint64, number, roomType, status *string, rateCents *uint32, amenities *string) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if number != nil {
		sets = append(sets, "room_number = ?")
		args = append(args, *number)
	}
	if roomType != nil {
		sets = append(sets, "room_type = ?")
		args = append(args, *roomType)
	}
	if rateCents != nil {
		sets = append(sets, "rate_per_night_cents = ?")
		args = append(args, *rateCents)
	}
	if status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *status)
	}
	if amenities != nil {
		sets = append(sets, "amenities = ?")
		args = append(args, *amenities)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
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

// UpdateStatusTx flips a room's status within an existing transaction.
func (r *RoomRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE rooms SET status = ? WHERE id = ?`, status, id)
	return err
}
