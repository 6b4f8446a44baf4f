package model

import "time"

// Room statuses as stored in rooms.status.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Room represents a row in the `rooms` table.  Rates are stored in
// cents to keep monetary arithmetic exact.
type Room struct {
	ID                uint64    // rooms.id
	Number            string    // rooms.room_number (unique)
	Type              string    // rooms.room_type (single, double, suite, ...)
	RatePerNightCents uint32    // rooms.rate_per_night_cents
	Status            string    // rooms.status
	Amenities         *string   // rooms.amenities (nullable free text)
	CreatedAt         time.Time // rooms.created_at
}
