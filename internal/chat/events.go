package chat

import (
	"encoding/json"
	"time"

	"hotel-management/internal/model"
)

// Frame is the wire envelope for every websocket message in both
// directions. Payload stays raw until the event type is known.
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound event names accepted from clients.
const (
	EventAuthenticate   = "authenticate"
	EventPrivateMessage = "private_message"
	EventServiceRequest = "service_request"
	EventFoodOrder      = "food_order"
)

// Outbound event names pushed to clients.
const (
	EventAuthenticated         = "authenticated"
	EventChatHistory           = "chat_history"
	EventNewMessage            = "new_message"
	EventMessageSent           = "message_sent"
	EventNewServiceRequest     = "new_service_request"
	EventServiceRequestCreated = "service_request_created"
	EventNewFoodOrder          = "new_food_order"
	EventFoodOrderCreated      = "food_order_created"
	EventError                 = "error"
)

// ----- inbound payloads -----

// AuthPayload carries the access token for the mandatory handshake.
type AuthPayload struct {
	Token string `json:"token" validate:"required"`
}

// PrivateMessagePayload addresses one chat participant. MessageType is
// optional and defaults to text.
type PrivateMessagePayload struct {
	ReceiverID   uint64 `json:"receiverId" validate:"required"`
	ReceiverRole string `json:"receiverRole" validate:"required,oneof=guest staff"`
	Message      string `json:"message" validate:"required,max=2000"`
	MessageType  string `json:"messageType" validate:"omitempty,oneof=text service_request food_order"`
}

// ServiceRequestPayload raises a service ticket addressed to the staff
// group.
type ServiceRequestPayload struct {
	ServiceType string `json:"serviceType" validate:"required,max=100"`
	Notes       string `json:"notes" validate:"required,max=2000"`
}

// OrderItemInput is one requested menu line in a food order.
type OrderItemInput struct {
	ItemID   uint64 `json:"itemId" validate:"required"`
	Quantity uint32 `json:"quantity" validate:"required,min=1,max=50"`
}

// FoodOrderPayload places a food order against a stay. GuestID is the
// guest profile the order is attributed to; the authenticated identity
// only gates who may place orders.
type FoodOrderPayload struct {
	BookingID uint64           `json:"bookingId" validate:"required"`
	GuestID   uint64           `json:"guestId" validate:"required"`
	RoomID    uint64           `json:"roomId" validate:"required"`
	Items     []OrderItemInput `json:"items" validate:"required,min=1,max=30,dive"`
	Notes     string           `json:"notes" validate:"max=500"`
}

// ----- outbound payloads -----

// MessageOut is a chat message as delivered to clients, both live and
// in history replays.
type MessageOut struct {
	MessageID    uint64    `json:"messageId"`
	SenderID     uint64    `json:"senderId"`
	SenderRole   string    `json:"senderRole"`
	ReceiverID   uint64    `json:"receiverId"`
	ReceiverRole string    `json:"receiverRole"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
}

func messageOut(m *model.ChatMessage) MessageOut {
	return MessageOut{
		MessageID:    m.ID,
		SenderID:     m.SenderID,
		SenderRole:   m.SenderRole,
		ReceiverID:   m.ReceiverID,
		ReceiverRole: m.ReceiverRole,
		Message:      m.Body,
		Type:         m.Type,
		Timestamp:    m.CreatedAt,
	}
}

// AuthenticatedOut confirms the handshake. A chat_history frame with
// the recent messages follows immediately.
type AuthenticatedOut struct {
	UserID uint64 `json:"userId"`
	Role   string `json:"role"`
}

// MessageSentOut acknowledges a private message to its sender.
type MessageSentOut struct {
	MessageID uint64    `json:"messageId"`
	Delivered bool      `json:"delivered"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceRequestCreatedOut acknowledges a service request to its sender.
type ServiceRequestCreatedOut struct {
	RequestID uint64 `json:"requestId"`
	MessageID uint64 `json:"messageId"`
	Status    string `json:"status"`
}

// NewServiceRequestOut is broadcast to the staff channel when a guest
// raises a service request.
type NewServiceRequestOut struct {
	RequestID   uint64    `json:"requestId"`
	MessageID   uint64    `json:"messageId"`
	SenderID    uint64    `json:"senderId"`
	ServiceType string    `json:"serviceType"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderItemOut is one priced line of a placed order.
type OrderItemOut struct {
	ItemID     uint64 `json:"itemId"`
	Name       string `json:"name"`
	Quantity   uint32 `json:"quantity"`
	PriceCents uint32 `json:"priceCents"`
}

// FoodOrderCreatedOut acknowledges a food order to its sender.
type FoodOrderCreatedOut struct {
	OrderID          uint64 `json:"orderId"`
	Status           string `json:"status"`
	TotalAmountCents uint32 `json:"totalAmount"`
}

// NewFoodOrderOut is broadcast to the staff channel when a guest places
// a food order.
type NewFoodOrderOut struct {
	OrderID          uint64         `json:"orderId"`
	BookingID        uint64         `json:"bookingId"`
	GuestID          uint64         `json:"guestId"`
	RoomID           uint64         `json:"roomId"`
	Items            []OrderItemOut `json:"items"`
	TotalAmountCents uint32         `json:"totalAmount"`
	Status           string         `json:"status"`
	Notes            string         `json:"notes,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}

// ErrorOut is the per-event error envelope. Event names the inbound
// event that failed so clients can correlate.
type ErrorOut struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// NewFrame wraps a payload in a Frame for the given event.
func NewFrame(event string, payload any) Frame {
	return Frame{Event: event, Payload: mustJSON(payload)}
}
