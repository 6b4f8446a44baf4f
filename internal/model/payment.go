package model

import "time"

// Payment records money received against a booking.  A booking may have
// several partial payments; their sum never exceeds the booking total.
type Payment struct {
	ID             uint64    // payments.id
	BookingID      uint64    // payments.booking_id
	AmountCents    uint32    // payments.amount_cents
	Method         string    // payments.method (cash, card, transfer, ...)
	Status         string    // payments.status
	TransactionRef *string   // payments.transaction_ref (nullable)
	PaidAt         time.Time // payments.paid_at
}
