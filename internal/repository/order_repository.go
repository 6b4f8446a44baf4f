package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotel-management/internal/model"
)

// OrderRepo persists food orders and their line items. An order and its
// items are written in one transaction; partial orders never persist.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateOrder inserts the order row and all line items atomically. Item
// OrderID fields are populated from the generated order id. The items
// insert is a single parameterized multi-row statement; values are never
// interpolated into the command text.
func (r *OrderRepo) CreateOrder(ctx context.Context, o *model.FoodOrder, items []model.FoodOrderItem) error {
	if len(items) == 0 {
		return errors.New("order requires at least one line item")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const orderQ = `INSERT INTO food_orders (booking_id, guest_id, room_id, status, total_amount_cents, notes)
	                VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQ, o.BookingID, o.GuestID, o.RoomID, o.Status, o.TotalAmountCents, o.Notes)
	if err != nil {
		return err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(orderID)

	itemQ := `INSERT INTO food_order_items (order_id, item_id, quantity, price_cents, notes) VALUES `
	args := make([]any, 0, len(items)*5)
	for i := range items {
		items[i].OrderID = o.ID
		if i > 0 {
			itemQ += ","
		}
		itemQ += "(?, ?, ?, ?, ?)"
		args = append(args, items[i].OrderID, items[i].ItemID, items[i].Quantity, items[i].PriceCents, items[i].Notes)
	}
	if _, err := tx.ExecContext(ctx, itemQ, args...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return nil
}

// OrderDetail is a food order joined with guest and room info plus its
// line items, as returned to staff clients.
type OrderDetail struct {
	ID               uint64          `json:"id"`
	BookingID        uint64          `json:"booking_id"`
	GuestID          uint64          `json:"guest_id"`
	RoomID           uint64          `json:"room_id"`
	Status           string          `json:"status"`
	TotalAmountCents uint32          `json:"total_amount_cents"`
	Notes            *string         `json:"notes,omitempty"`
	GuestFirstName   string          `json:"guest_first_name"`
	GuestLastName    string          `json:"guest_last_name"`
	RoomNumber       string          `json:"room_number"`
	CreatedAt        time.Time       `json:"created_at"`
	Items            []OrderItemLine `json:"items"`
}

// OrderItemLine is one order line joined with the menu item name.
type OrderItemLine struct {
	ItemID     uint64  `json:"item_id"`
	Name       string  `json:"name"`
	Quantity   uint32  `json:"quantity"`
	PriceCents uint32  `json:"price_cents"`
	Notes      *string `json:"notes,omitempty"`
}

const orderSelect = `SELECT fo.id, fo.booking_id, fo.guest_id, fo.room_id, fo.status,
	       fo.total_amount_cents, fo.notes, g.first_name, g.last_name, r.room_number, fo.created_at
	FROM food_orders fo
	JOIN guests g ON g.id = fo.guest_id
	JOIN rooms r ON r.id = fo.room_id`

func scanOrderDetail(row interface{ Scan(...any) error }) (*OrderDetail, error) {
	var d OrderDetail
	var notes sql.NullString
	err := row.Scan(&d.ID, &d.BookingID, &d.GuestID, &d.RoomID, &d.Status,
		&d.TotalAmountCents, &notes, &d.GuestFirstName, &d.GuestLastName, &d.RoomNumber, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		v := notes.String
		d.Notes = &v
	}
	d.Items = make([]OrderItemLine, 0)
	return &d, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, details []*OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	index := make(map[uint64]*OrderDetail, len(details))
	placeholders := ""
	args := make([]any, 0, len(details))
	for i, d := range details {
		index[d.ID] = d
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, d.ID)
	}
	q := `SELECT foi.order_id, foi.item_id, fm.name, foi.quantity, foi.price_cents, foi.notes
	      FROM food_order_items foi
	      JOIN food_menu fm ON fm.id = foi.item_id
	      WHERE foi.order_id IN (` + placeholders + `)
	      ORDER BY foi.order_id, foi.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var orderID uint64
		var line OrderItemLine
		var notes sql.NullString
		if err := rows.Scan(&orderID, &line.ItemID, &line.Name, &line.Quantity, &line.PriceCents, &notes); err != nil {
			return err
		}
		if notes.Valid {
			v := notes.String
			line.Notes = &v
		}
		if d, ok := index[orderID]; ok {
			d.Items = append(d.Items, line)
		}
	}
	return rows.Err()
}

// GetByID returns one order with its line items or ErrNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*OrderDetail, error) {
	d, err := scanOrderDetail(r.db.QueryRowContext(ctx, orderSelect+` WHERE fo.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, []*OrderDetail{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns all orders with their line items, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, orderSelect+` ORDER BY fo.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]*OrderDetail, 0)
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, details); err != nil {
		return nil, err
	}
	out := make([]OrderDetail, 0, len(details))
	for _, d := range details {
		out = append(out, *d)
	}
	return out, nil
}

// UpdateStatus moves an order to a new status. ErrNotFound when the
// order does not exist.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE food_orders SET status = ? WHERE id = ?`, status, id)
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
