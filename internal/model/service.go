package model

import "time"

// Service represents an entry in the hotel's service catalogue
// (`services` table): laundry, spa, airport transfer and so on.
type Service struct {
	ID          uint64    // services.id
	Name        string    // services.name
	Description *string   // services.description (nullable)
	RateCents   uint32    // services.rate_cents
	Status      string    // services.status (active or inactive)
	CreatedAt   time.Time // services.created_at
}

// ServiceBooking links a catalogue service to a booking
// (`service_requests` table).  This is the scheduled, billable kind of
// request; ad-hoc requests raised over chat live in
// chat_service_requests instead.
type ServiceBooking struct {
	ID          uint64    // service_requests.id
	BookingID   uint64    // service_requests.booking_id
	ServiceID   uint64    // service_requests.service_id
	Status      string    // service_requests.status
	Notes       *string   // service_requests.notes (nullable)
	RequestedAt time.Time // service_requests.requested_at
}
