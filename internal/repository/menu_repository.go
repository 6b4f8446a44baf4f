package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hotel-management/internal/model"
)

// MenuRepo provides access to the food menu.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a new MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

const menuColumns = `id, name, description, price_cents, category, availability, created_at`

func scanMenuItem(row interface{ Scan(...any) error }) (*model.MenuItem, error) {
	var m model.MenuItem
	var desc sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &desc, &m.PriceCents, &m.Category, &m.Available, &m.CreatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		m.Description = &v
	}
	return &m, nil
}

// Create inserts a menu item and populates the generated id.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	const q = `INSERT INTO food_menu (name, description, price_cents, category, availability)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.PriceCents, m.Category, m.Available)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// ListAvailable returns in-stock menu items grouped by category.
func (r *MenuRepo) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	const q = `SELECT ` + menuColumns + ` FROM food_menu WHERE availability = TRUE ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Categories returns the distinct menu categories in order.
func (r *MenuRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM food_menu ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update applies the provided non-nil fields to a menu item.
func (r *MenuRepo) Update(ctx context.Context, id uint64, name, description, category *string, priceCents *uint32, available *bool) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *name)
	}
	if description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *description)
	}
	if priceCents != nil {
		sets = append(sets, "price_cents = ?")
		args = append(args, *priceCents)
	}
	if category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *category)
	}
	if available != nil {
		sets = append(sets, "availability = ?")
		args = append(args, *available)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE food_menu SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
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

// GetByIDs returns the menu items for the given ids keyed by id. Items
// that do not exist are simply absent from the map; callers decide how
// to treat the gap. Availability is returned as stored so callers can
// reject out-of-stock items.
func (r *MenuRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.MenuItem, error) {
	if len(ids) == 0 {
		return map[uint64]model.MenuItem{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT ` + menuColumns + ` FROM food_menu WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64]model.MenuItem, len(ids))
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out[m.ID] = *m
	}
	return out, rows.Err()
}

// GetByID returns one menu item or ErrNotFound.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
	m, err := scanMenuItem(r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM food_menu WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
