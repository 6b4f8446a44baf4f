package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotel-management/internal/model"
)

// BookingRepo provides operations on bookings and their payments.
// Creation and cancellation run inside caller-owned transactions so that
// the room status change and the booking row stay consistent.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingDetail is the booking row joined with guest and room info, as
// returned to clients.
type BookingDetail struct {
	ID               uint64          `json:"id"`
	GuestID          uint64          `json:"guest_id"`
	RoomID           uint64          `json:"room_id"`
	CheckInDate      string          `json:"check_in_date"`
	CheckOutDate     string          `json:"check_out_date"`
	Status           string          `json:"status"`
	TotalAmountCents uint32          `json:"total_amount_cents"`
	PaymentStatus    string          `json:"payment_status"`
	GuestFirstName   string          `json:"guest_first_name"`
	GuestLastName    string          `json:"guest_last_name"`
	RoomNumber       string          `json:"room_number"`
	RoomType         string          `json:"room_type"`
	CreatedAt        time.Time       `json:"created_at"`
	Payments         []model.Payment `json:"payments,omitempty"`
}

// HasOverlapTx reports whether the room already has a non-cancelled
// booking overlapping the [checkIn, checkOut) range. Dates are
// YYYY-MM-DD strings.
func (r *BookingRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut string) (bool, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE room_id = ? AND status <> 'cancelled'
	             AND check_in_date < ? AND check_out_date > ?`
	var n int
	if err := tx.QueryRowContext(ctx, q, roomID, checkOut, checkIn).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a booking within an existing transaction and
// populates the generated id. The caller must commit or rollback.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (guest_id, room_id, check_in_date, check_out_date, status, total_amount_cents, payment_status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.GuestID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.Status, b.TotalAmountCents, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

const bookingSelect = `SELECT b.id, b.guest_id, b.room_id,
	       DATE_FORMAT(b.check_in_date, '%Y-%m-%d'), DATE_FORMAT(b.check_out_date, '%Y-%m-%d'),
	       b.status, b.total_amount_cents, b.payment_status,
	       g.first_name, g.last_name, r.room_number, r.room_type, b.created_at
	FROM bookings b
	JOIN guests g ON g.id = b.guest_id
	JOIN rooms r ON r.id = b.room_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (*BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(&d.ID, &d.GuestID, &d.RoomID, &d.CheckInDate, &d.CheckOutDate,
		&d.Status, &d.TotalAmountCents, &d.PaymentStatus,
		&d.GuestFirstName, &d.GuestLastName, &d.RoomNumber, &d.RoomType, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID returns one booking with guest/room info and its payments.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	const payQ = `SELECT id, booking_id, amount_cents, method, status, transaction_ref, paid_at
	              FROM payments WHERE booking_id = ? ORDER BY paid_at DESC`
	rows, err := r.db.QueryContext(ctx, payQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	d.Payments = make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var ref sql.NullString
		if err := rows.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Method, &p.Status, &ref, &p.PaidAt); err != nil {
			return nil, err
		}
		if ref.Valid {
			v := ref.String
			p.TransactionRef = &v
		}
		d.Payments = append(d.Payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns all bookings with guest/room info, newest first.
func (r *BookingRepo) List(ctx context.Context) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, bookingSelect+` ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetForUpdateTx locks a booking row and returns its room id, status and
// total amount. ErrNotFound when the booking does not exist.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (roomID uint64, status string, totalCents uint32, err error) {
	const q = `SELECT room_id, status, total_amount_cents FROM bookings WHERE id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, id).Scan(&roomID, &status, &totalCents)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return roomID, status, totalCents, err
}

// SetStatusTx updates a booking's status within an existing transaction.
func (r *BookingRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

// CancelTx marks a booking cancelled within an existing transaction.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = 'cancelled' WHERE id = ? AND status <> 'cancelled'`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// SetPaymentStatusTx updates a booking's aggregate payment status within
// an existing transaction.
func (r *BookingRepo) SetPaymentStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE bookings SET payment_status = ? WHERE id = ?`, status, id)
	return err
}
