package model

import "time"

// Booking statuses as stored in bookings.status.
const (
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)

// Payment progress values stored in bookings.payment_status.
const (
	PaymentPending   = "pending"
	PaymentPartial   = "partial"
	PaymentCompleted = "completed"
)

// Booking records a guest's stay in a room over a date range.  Dates are
// stored as DATE columns and carried as YYYY-MM-DD strings because no
// time-of-day component exists.
//
// Fields:
//  ID               – primary key identifier.
//  GuestID          – guest who booked.
//  RoomID           – room being occupied.
//  CheckInDate      – first night (YYYY-MM-DD).
//  CheckOutDate     – departure date (YYYY-MM-DD).
//  Status           – booking state (confirmed, checked_in, ...).
//  TotalAmountCents – agreed price for the stay in cents.
//  PaymentStatus    – aggregate of recorded payments.
//  CreatedAt        – creation timestamp.
type Booking struct {
	ID               uint64    // bookings.id
	GuestID          uint64    // bookings.guest_id
	RoomID           uint64    // bookings.room_id
	CheckInDate      string    // bookings.check_in_date
	CheckOutDate     string    // bookings.check_out_date
	Status           string    // bookings.status
	TotalAmountCents uint32    // bookings.total_amount_cents
	PaymentStatus    string    // bookings.payment_status
	CreatedAt        time.Time // bookings.created_at
}
