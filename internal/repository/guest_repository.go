package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hotel-management/internal/model"
)

// GuestRepo provides CRUD operations for guest records.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, first_name, last_name, email, phone, address, id_proof_type, id_proof_number, created_at`

func scanGuest(row interface{ Scan(...any) error }) (*model.Guest, error) {
	var g model.Guest
	var email, phone, address, proofType, proofNumber sql.NullString
	if err := row.Scan(&g.ID, &g.FirstName, &g.LastName, &email, &phone, &address, &proofType, &proofNumber, &g.CreatedAt); err != nil {
		return nil, err
	}
	assign := func(dst **string, src sql.NullString) {
		if src.Valid {
			v := src.String
			*dst = &v
		}
	}
	assign(&g.Email, email)
	assign(&g.Phone, phone)
	assign(&g.Address, address)
	assign(&g.IDProofType, proofType)
	assign(&g.IDProofNumber, proofNumber)
	return &g, nil
}

// Create inserts a new guest and populates the generated id.
// ErrConflict is returned for a duplicate email.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (first_name, last_name, email, phone, address, id_proof_type, id_proof_number)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.FirstName, g.LastName, g.Email, g.Phone, g.Address, g.IDProofType, g.IDProofNumber)
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
	g.ID = uint64(id)
	return nil
}

// GetByID returns a single guest or ErrNotFound.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	g, err := scanGuest(r.db.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// List returns guests ordered by creation time descending. When search
// is non-empty it matches name, email or phone with a LIKE pattern.
func (r *GuestRepo) List(ctx context.Context, search string) ([]model.Guest, error) {
	q := `SELECT ` + guestColumns + ` FROM guests`
	args := []any{}
	if search != "" {
		q += ` WHERE first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?`
		pat := "%" + search + "%"
		args = append(args, pat, pat, pat, pat)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Update applies the provided non-nil fields to a guest record.
func (r *GuestRepo) Update(ctx context.Context, id uint64, firstName, lastName, email, phone, address *string) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	add("first_name", firstName)
	add("last_name", lastName)
	add("email", email)
	add("phone", phone)
	add("address", address)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE guests SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
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
