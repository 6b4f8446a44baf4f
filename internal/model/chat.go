package model

import "time"

// Participant roles used for chat addressing.  An identity is the pair
// (id, role); the same numeric id may exist for both a guest and a staff
// member, so the role is always part of the key.
const (
	RoleGuest = "guest"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Chat message type tags stored in chat_messages.type.
const (
	MessageText           = "text"
	MessageServiceRequest = "service_request"
	MessageFoodOrder      = "food_order"
)

// Chat message delivery statuses.  The chat core always writes "sent";
// later transitions belong to the REST layer.
const (
	MessageSent      = "sent"
	MessageDelivered = "delivered"
	MessageRead      = "read"
)

// StaffBroadcastID is the sentinel receiver id used when a message is
// addressed to the staff group as a whole rather than one staff member.
const StaffBroadcastID uint64 = 0

// ChatMessage represents a row in the `chat_messages` table.  Rows are
// append-only as far as the chat core is concerned.
type ChatMessage struct {
	ID           uint64    // chat_messages.id
	SenderID     uint64    // chat_messages.sender_id
	SenderRole   string    // chat_messages.sender_role
	ReceiverID   uint64    // chat_messages.receiver_id
	ReceiverRole string    // chat_messages.receiver_role
	Body         string    // chat_messages.body
	Type         string    // chat_messages.type
	Status       string    // chat_messages.status
	CreatedAt    time.Time // chat_messages.created_at
}

// Chat service request statuses stored in chat_service_requests.status.
const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestCompleted = "completed"
	RequestCancelled = "cancelled"
)

// ChatServiceRequest is the service ticket raised from a chat message
// (`chat_service_requests` table).  Every row references exactly one
// parent chat message; the two are created in the same transaction.
type ChatServiceRequest struct {
	ID          uint64    // chat_service_requests.id
	MessageID   uint64    // chat_service_requests.message_id
	ServiceType string    // chat_service_requests.service_type
	Status      string    // chat_service_requests.status
	Notes       *string   // chat_service_requests.notes (nullable)
	CreatedAt   time.Time // chat_service_requests.created_at
}
