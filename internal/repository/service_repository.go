package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-management/internal/model"
)

// ServiceRepo provides the service catalogue and booking-linked service
// requests.
type ServiceRepo struct {
	db *sql.DB
}

// NewServiceRepo returns a new ServiceRepo bound to the given database.
func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

// Create inserts a catalogue service and populates the generated id.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	const q = `INSERT INTO services (name, description, rate_cents, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Description, s.RateCents, s.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// List returns catalogue services, active ones first.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	const q = `SELECT id, name, description, rate_cents, status, created_at
	           FROM services ORDER BY status, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &desc, &s.RateCents, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			v := desc.String
			s.Description = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID returns a catalogue service or ErrNotFound.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (*model.Service, error) {
	const q = `SELECT id, name, description, rate_cents, status, created_at FROM services WHERE id = ?`
	var s model.Service
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &desc, &s.RateCents, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		s.Description = &v
	}
	return &s, nil
}

// CreateBooking inserts a booking-linked service request and populates
// the generated id.
func (r *ServiceRepo) CreateBooking(ctx context.Context, sb *model.ServiceBooking) error {
	const q = `INSERT INTO service_requests (booking_id, service_id, status, notes) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, sb.BookingID, sb.ServiceID, sb.Status, sb.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sb.ID = uint64(id)
	return nil
}

// ListBookings returns booking-linked service requests, newest first,
// optionally filtered by status.
func (r *ServiceRepo) ListBookings(ctx context.Context, status string) ([]model.ServiceBooking, error) {
	q := `SELECT id, booking_id, service_id, status, notes, requested_at FROM service_requests`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY requested_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ServiceBooking, 0)
	for rows.Next() {
		var sb model.ServiceBooking
		var notes sql.NullString
		if err := rows.Scan(&sb.ID, &sb.BookingID, &sb.ServiceID, &sb.Status, &notes, &sb.RequestedAt); err != nil {
			return nil, err
		}
		if notes.Valid {
			v := notes.String
			sb.Notes = &v
		}
		out = append(out, sb)
	}
	return out, rows.Err()
}

// UpdateBookingStatus moves a booking-linked service request to a new
// status. ErrNotFound when no such request exists.
func (r *ServiceRepo) UpdateBookingStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE service_requests SET status = ? WHERE id = ?`, status, id)
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
