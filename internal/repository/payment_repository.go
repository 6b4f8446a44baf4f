package repository

import (
	"context"
	"database/sql"

	"hotel-management/internal/model"
)

// PaymentRepo records and lists payments against bookings.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// PaidTotalTx returns the sum of completed payment amounts for a booking
// within an existing transaction.
func (r *PaymentRepo) PaidTotalTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint32, error) {
	const q = `SELECT COALESCE(SUM(amount_cents), 0) FROM payments
	           WHERE booking_id = ? AND status = 'completed'`
	var total uint32
	err := tx.QueryRowContext(ctx, q, bookingID).Scan(&total)
	return total, err
}

// CreateTx inserts a payment within an existing transaction and
// populates the generated id.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `INSERT INTO payments (booking_id, amount_cents, method, status, transaction_ref)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, p.BookingID, p.AmountCents, p.Method, p.Status, p.TransactionRef)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ListByBooking returns payments for one booking, newest first.
func (r *PaymentRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Payment, error) {
	const q = `SELECT id, booking_id, amount_cents, method, status, transaction_ref, paid_at
	           FROM payments WHERE booking_id = ? ORDER BY paid_at DESC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
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
		out = append(out, p)
	}
	return out, rows.Err()
}

// List returns all payments, newest first.
func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	const q = `SELECT id, booking_id, amount_cents, method, status, transaction_ref, paid_at
	           FROM payments ORDER BY paid_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
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
		out = append(out, p)
	}
	return out, rows.Err()
}
