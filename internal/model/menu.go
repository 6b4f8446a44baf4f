package model

import "time"

// MenuItem represents a row in the `food_menu` table.  The price here is
// the current menu price; orders snapshot it into their line items at
// order time and are immune to later changes.
type MenuItem struct {
	ID          uint64    // food_menu.id
	Name        string    // food_menu.name
	Description *string   // food_menu.description (nullable)
	PriceCents  uint32    // food_menu.price_cents
	Category    string    // food_menu.category
	Available   bool      // food_menu.availability
	CreatedAt   time.Time // food_menu.created_at
}
