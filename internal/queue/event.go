// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// NotificationsQueue is the durable queue carrying staff notifications.
const NotificationsQueue = "hotel.notifications"

// Envelope kinds.
const (
	KindServiceRequested = "service_requested"
	KindFoodOrderPlaced  = "food_order_placed"
)

// ServiceRequestedEvent is published when a guest raises a service
// request over chat. It carries enough for downstream consumers to log
// or notify without querying the primary database.
type ServiceRequestedEvent struct {
	RequestID   uint64 `json:"request_id"`
	MessageID   uint64 `json:"message_id"`
	GuestID     uint64 `json:"guest_id"`
	ServiceType string `json:"service_type"`
	RequestedAt string `json:"requested_at"`
}

// FoodOrderPlacedEvent is published when a guest places a food order
// over chat.
type FoodOrderPlacedEvent struct {
	OrderID          uint64 `json:"order_id"`
	BookingID        uint64 `json:"booking_id"`
	GuestID          uint64 `json:"guest_id"`
	RoomID           uint64 `json:"room_id"`
	ItemCount        int    `json:"item_count"`
	TotalAmountCents uint32 `json:"total_amount_cents"`
	PlacedAt         string `json:"placed_at"`
}

// Envelope is the wire format on the notifications queue. Exactly one
// of the payload fields is set, matching Kind.
type Envelope struct {
	Kind           string                 `json:"kind"`
	ServiceRequest *ServiceRequestedEvent `json:"service_request,omitempty"`
	FoodOrder      *FoodOrderPlacedEvent  `json:"food_order,omitempty"`
}
