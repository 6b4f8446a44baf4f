package model

import "time"

// Food order statuses stored in food_orders.status.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// FoodOrder represents a row in the `food_orders` table.  The total is
// computed once at creation time as the sum of line item price×quantity
// and is never recomputed from current menu prices.
//
// Fields:
//  ID               – primary key identifier.
//  BookingID        – booking the order is charged to.
//  GuestID          – ordering guest.
//  RoomID           – room to deliver to.
//  Status           – order state (pending, confirmed, ...).
//  TotalAmountCents – monetary snapshot of the order total in cents.
//  Notes            – free-text instructions.
//  CreatedAt        – creation timestamp.
type FoodOrder struct {
	ID               uint64    // food_orders.id
	BookingID        uint64    // food_orders.booking_id
	GuestID          uint64    // food_orders.guest_id
	RoomID           uint64    // food_orders.room_id
	Status           string    // food_orders.status
	TotalAmountCents uint32    // food_orders.total_amount_cents
	Notes            *string   // food_orders.notes (nullable)
	CreatedAt        time.Time // food_orders.created_at
}

// FoodOrderItem is one line of a food order (`food_order_items` table).
// PriceCents is the menu price captured when the order was placed.
type FoodOrderItem struct {
	ID         uint64  // food_order_items.id
	OrderID    uint64  // food_order_items.order_id
	ItemID     uint64  // food_order_items.item_id
	Quantity   uint32  // food_order_items.quantity
	PriceCents uint32  // food_order_items.price_cents
	Notes      *string // food_order_items.notes (nullable)
}
