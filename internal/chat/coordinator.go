package chat

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel-management/internal/model"
	"hotel-management/internal/queue"
)

// historyLimit bounds the replay sent on authentication.
const historyLimit = 50

// ChatStore is the persistence surface the coordinator needs for
// messages and chat-raised service requests.
type ChatStore interface {
	History(ctx context.Context, id uint64, role string, limit int) ([]model.ChatMessage, error)
	CreateMessage(ctx context.Context, m *model.ChatMessage) error
	CreateServiceRequest(ctx context.Context, m *model.ChatMessage, sr *model.ChatServiceRequest) error
}

// MenuStore resolves menu items for order pricing.
type MenuStore interface {
	GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.MenuItem, error)
}

// OrderStore persists food orders with their line items atomically.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *model.FoodOrder, items []model.FoodOrderItem) error
}

// Notifier receives domain events after their database writes have
// committed. Implementations must not block the chat path; failures are
// the notifier's problem.
type Notifier interface {
	ServiceRequested(ctx context.Context, ev queue.ServiceRequestedEvent)
	FoodOrderPlaced(ctx context.Context, ev queue.FoodOrderPlacedEvent)
}

// Coordinator validates chat operations, persists them and fans the
// results out to connected peers. Persistence always happens before any
// delivery: a message a client saw is a message that survived a write.
type Coordinator struct {
	chat     ChatStore
	menu     MenuStore
	orders   OrderStore
	registry *Registry
	validate *validator.Validate
	notifier Notifier
}

// NewCoordinator wires the coordinator. notifier may be nil when no
// broker is configured.
func NewCoordinator(chat ChatStore, menu MenuStore, orders OrderStore, reg *Registry, notifier Notifier) *Coordinator {
	return &Coordinator{
		chat:     chat,
		menu:     menu,
		orders:   orders,
		registry: reg,
		validate: validator.New(),
		notifier: notifier,
	}
}

// Registry exposes the presence registry for the gateway.
func (co *Coordinator) Registry() *Registry { return co.registry }

// History returns the most recent messages involving the identity,
// newest first, capped at the replay limit.
func (co *Coordinator) History(ctx context.Context, id Identity) ([]MessageOut, error) {
	msgs, err := co.chat.History(ctx, id.ID, id.Role, historyLimit)
	if err != nil {
		return nil, &PersistenceError{Op: "load history", Err: err}
	}
	out := make([]MessageOut, 0, len(msgs))
	for i := range msgs {
		out = append(out, messageOut(&msgs[i]))
	}
	return out, nil
}

// SendMessage persists a direct message and delivers it to the
// receiver's live connections. The returned ack reports whether anyone
// was online to receive it; an offline receiver still gets the message
// through history.
func (co *Coordinator) SendMessage(ctx context.Context, sender Identity, p PrivateMessagePayload) (MessageSentOut, error) {
	if err := co.validate.Struct(p); err != nil {
		return MessageSentOut{}, &ValidationError{Reason: "invalid private_message payload"}
	}
	if p.ReceiverID == sender.ID && p.ReceiverRole == sender.Role {
		return MessageSentOut{}, &ValidationError{Reason: "cannot message yourself"}
	}
	msgType := p.MessageType
	if msgType == "" {
		msgType = model.MessageText
	}
	msg := &model.ChatMessage{
		SenderID:     sender.ID,
		SenderRole:   sender.Role,
		ReceiverID:   p.ReceiverID,
		ReceiverRole: p.ReceiverRole,
		Body:         p.Message,
		Type:         msgType,
		Status:       model.MessageSent,
	}
	if err := co.chat.CreateMessage(ctx, msg); err != nil {
		return MessageSentOut{}, &PersistenceError{Op: "store message", Err: err}
	}

	delivered := co.registry.Send(
		Identity{ID: p.ReceiverID, Role: p.ReceiverRole},
		NewFrame(EventNewMessage, messageOut(msg)),
	)
	return MessageSentOut{MessageID: msg.ID, Delivered: delivered, Timestamp: msg.CreatedAt}, nil
}

// CreateServiceRequest persists the request message and its ticket in
// one transaction, then broadcasts it to the staff channel.
func (co *Coordinator) CreateServiceRequest(ctx context.Context, sender Identity, origin *Peer, p ServiceRequestPayload) (ServiceRequestCreatedOut, error) {
	if err := co.validate.Struct(p); err != nil {
		return ServiceRequestCreatedOut{}, &ValidationError{Reason: "invalid service_request payload"}
	}
	msg := &model.ChatMessage{
		SenderID:     sender.ID,
		SenderRole:   sender.Role,
		ReceiverID:   model.StaffBroadcastID,
		ReceiverRole: model.RoleStaff,
		Body:         p.Notes,
		Type:         model.MessageServiceRequest,
		Status:       model.MessageSent,
	}
	notes := p.Notes
	req := &model.ChatServiceRequest{
		ServiceType: p.ServiceType,
		Status:      model.RequestPending,
		Notes:       &notes,
	}
	if err := co.chat.CreateServiceRequest(ctx, msg, req); err != nil {
		return ServiceRequestCreatedOut{}, &PersistenceError{Op: "store service request", Err: err}
	}

	co.registry.BroadcastStaff(NewFrame(EventNewServiceRequest, NewServiceRequestOut{
		RequestID:   req.ID,
		MessageID:   msg.ID,
		SenderID:    sender.ID,
		ServiceType: p.ServiceType,
		Notes:       p.Notes,
		Status:      req.Status,
		Timestamp:   msg.CreatedAt,
	}), origin)

	if co.notifier != nil {
		co.notifier.ServiceRequested(ctx, queue.ServiceRequestedEvent{
			RequestID:   req.ID,
			MessageID:   msg.ID,
			GuestID:     sender.ID,
			ServiceType: p.ServiceType,
			RequestedAt: msg.CreatedAt.Format(time.RFC3339),
		})
	}

	return ServiceRequestCreatedOut{RequestID: req.ID, MessageID: msg.ID, Status: req.Status}, nil
}

// CreateFoodOrder prices the requested items against the current menu,
// rejects the whole order if any item is unknown or out of stock, then
// persists the order and its lines atomically and notifies the staff
// channel. Line prices are snapshots; later menu edits do not change
// placed orders.
func (co *Coordinator) CreateFoodOrder(ctx context.Context, sender Identity, origin *Peer, p FoodOrderPayload) (FoodOrderCreatedOut, error) {
	if err := co.validate.Struct(p); err != nil {
		return FoodOrderCreatedOut{}, &ValidationError{Reason: "invalid food_order payload"}
	}

	ids := make([]uint64, 0, len(p.Items))
	seen := make(map[uint64]struct{}, len(p.Items))
	for _, it := range p.Items {
		if _, ok := seen[it.ItemID]; ok {
			return FoodOrderCreatedOut{}, &ValidationError{Reason: fmt.Sprintf("duplicate menu item %d", it.ItemID)}
		}
		seen[it.ItemID] = struct{}{}
		ids = append(ids, it.ItemID)
	}

	menu, err := co.menu.GetByIDs(ctx, ids)
	if err != nil {
		return FoodOrderCreatedOut{}, &PersistenceError{Op: "load menu items", Err: err}
	}

	// Accumulate in uint64; the column is 32-bit but quantity times a
	// high menu price can pass MaxUint32 before the bound check.
	var total uint64
	items := make([]model.FoodOrderItem, 0, len(p.Items))
	lines := make([]OrderItemOut, 0, len(p.Items))
	for _, it := range p.Items {
		mi, ok := menu[it.ItemID]
		if !ok {
			return FoodOrderCreatedOut{}, &ValidationError{Reason: fmt.Sprintf("menu item %d not found", it.ItemID)}
		}
		if !mi.Available {
			return FoodOrderCreatedOut{}, &ValidationError{Reason: fmt.Sprintf("menu item %q is not available", mi.Name)}
		}
		total += uint64(mi.PriceCents) * uint64(it.Quantity)
		items = append(items, model.FoodOrderItem{
			ItemID:     it.ItemID,
			Quantity:   it.Quantity,
			PriceCents: mi.PriceCents,
		})
		lines = append(lines, OrderItemOut{
			ItemID:     it.ItemID,
			Name:       mi.Name,
			Quantity:   it.Quantity,
			PriceCents: mi.PriceCents,
		})
	}

	if total > math.MaxUint32 {
		return FoodOrderCreatedOut{}, &ValidationError{Reason: "order total too large"}
	}

	order := &model.FoodOrder{
		BookingID:        p.BookingID,
		GuestID:          p.GuestID,
		RoomID:           p.RoomID,
		Status:           model.OrderPending,
		TotalAmountCents: uint32(total),
	}
	if p.Notes != "" {
		notes := p.Notes
		order.Notes = &notes
	}
	if err := co.orders.CreateOrder(ctx, order, items); err != nil {
		return FoodOrderCreatedOut{}, &PersistenceError{Op: "store food order", Err: err}
	}

	co.registry.BroadcastStaff(NewFrame(EventNewFoodOrder, NewFoodOrderOut{
		OrderID:          order.ID,
		BookingID:        order.BookingID,
		GuestID:          order.GuestID,
		RoomID:           order.RoomID,
		Items:            lines,
		TotalAmountCents: order.TotalAmountCents,
		Status:           order.Status,
		Notes:            p.Notes,
		Timestamp:        order.CreatedAt,
	}), origin)

	if co.notifier != nil {
		co.notifier.FoodOrderPlaced(ctx, queue.FoodOrderPlacedEvent{
			OrderID:          order.ID,
			BookingID:        order.BookingID,
			GuestID:          order.GuestID,
			RoomID:           order.RoomID,
			ItemCount:        len(items),
			TotalAmountCents: order.TotalAmountCents,
			PlacedAt:         order.CreatedAt.Format(time.RFC3339),
		})
	}

	return FoodOrderCreatedOut{OrderID: order.ID, Status: order.Status, TotalAmountCents: order.TotalAmountCents}, nil
}
