package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management/internal/model"
	"hotel-management/internal/queue"
)

// ----- in-memory stores -----

type fakeChatStore struct {
	mu       sync.Mutex
	nextID   uint64
	messages []model.ChatMessage
	requests []model.ChatServiceRequest
	fail     bool
}

func (s *fakeChatStore) History(_ context.Context, id uint64, role string, limit int) ([]model.ChatMessage, error) {
	if s.fail {
		return nil, errors.New("db down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, 0, limit)
	for i := len(s.messages) - 1; i >= 0 && len(out) < limit; i-- {
		m := s.messages[i]
		if (m.SenderID == id && m.SenderRole == role) || (m.ReceiverID == id && m.ReceiverRole == role) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeChatStore) CreateMessage(_ context.Context, m *model.ChatMessage) error {
	if s.fail {
		return errors.New("db down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now().UTC()
	s.messages = append(s.messages, *m)
	return nil
}

func (s *fakeChatStore) CreateServiceRequest(_ context.Context, m *model.ChatMessage, sr *model.ChatServiceRequest) error {
	if s.fail {
		return errors.New("db down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now().UTC()
	s.nextID++
	sr.ID = s.nextID
	sr.MessageID = m.ID
	s.messages = append(s.messages, *m)
	s.requests = append(s.requests, *sr)
	return nil
}

type fakeMenuStore struct {
	items map[uint64]model.MenuItem
	fail  bool
}

func (s *fakeMenuStore) GetByIDs(_ context.Context, ids []uint64) (map[uint64]model.MenuItem, error) {
	if s.fail {
		return nil, errors.New("db down")
	}
	out := make(map[uint64]model.MenuItem)
	for _, id := range ids {
		if it, ok := s.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	nextID uint64
	orders []model.FoodOrder
	lines  [][]model.FoodOrderItem
	fail   bool
}

func (s *fakeOrderStore) CreateOrder(_ context.Context, o *model.FoodOrder, items []model.FoodOrderItem) error {
	if s.fail {
		return errors.New("db down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = time.Now().UTC()
	for i := range items {
		items[i].OrderID = o.ID
	}
	s.orders = append(s.orders, *o)
	s.lines = append(s.lines, items)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	requests []queue.ServiceRequestedEvent
	orders   []queue.FoodOrderPlacedEvent
}

func (n *recordingNotifier) ServiceRequested(_ context.Context, ev queue.ServiceRequestedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, ev)
}

func (n *recordingNotifier) FoodOrderPlaced(_ context.Context, ev queue.FoodOrderPlacedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, ev)
}

type fixture struct {
	chat     *fakeChatStore
	menu     *fakeMenuStore
	orders   *fakeOrderStore
	notifier *recordingNotifier
	reg      *Registry
	co       *Coordinator
}

func newFixture() *fixture {
	f := &fixture{
		chat: &fakeChatStore{},
		menu: &fakeMenuStore{items: map[uint64]model.MenuItem{
			1: {ID: 1, Name: "Club Sandwich", PriceCents: 1250, Category: "snacks", Available: true},
			2: {ID: 2, Name: "Lemonade", PriceCents: 400, Category: "drinks", Available: true},
			3: {ID: 3, Name: "Lobster", PriceCents: 9900, Category: "mains", Available: false},
		}},
		orders:   &fakeOrderStore{},
		notifier: &recordingNotifier{},
		reg:      NewRegistry(),
	}
	f.co = NewCoordinator(f.chat, f.menu, f.orders, f.reg, f.notifier)
	return f
}

var (
	guest7  = Identity{ID: 7, Role: model.RoleGuest}
	staff2  = Identity{ID: 2, Role: model.RoleStaff}
	guestID = uint64(7)
)

// ----- messages -----

func TestSendMessagePersistsAndDelivers(t *testing.T) {
	f := newFixture()
	receiver := newBufPeer()
	f.reg.Register(staff2, receiver.peer)

	ack, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "towels please",
	})
	require.NoError(t, err)
	assert.True(t, ack.Delivered)
	assert.NotZero(t, ack.MessageID)

	require.Len(t, f.chat.messages, 1)
	assert.Equal(t, "towels please", f.chat.messages[0].Body)
	assert.Equal(t, model.MessageText, f.chat.messages[0].Type)

	frames := receiver.frames(t)
	require.Len(t, frames, 1)
	assert.Equal(t, EventNewMessage, frames[0].Event)
}

func TestSendMessageOfflineReceiverStillPersists(t *testing.T) {
	f := newFixture()
	ack, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "anyone there?",
	})
	require.NoError(t, err)
	assert.False(t, ack.Delivered)
	assert.Len(t, f.chat.messages, 1)
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture()
	_, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: "butler", Message: "hi",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, f.chat.messages, "nothing persisted on validation failure")

	_, err = f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: guestID, ReceiverRole: model.RoleGuest, Message: "note to self",
	})
	require.ErrorAs(t, err, &ve)
}

func TestSendMessageCarriesTypeTag(t *testing.T) {
	f := newFixture()

	_, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff,
		Message: "towels, again", MessageType: model.MessageServiceRequest,
	})
	require.NoError(t, err)
	require.Len(t, f.chat.messages, 1)
	assert.Equal(t, model.MessageServiceRequest, f.chat.messages[0].Type)

	// absent tag defaults to text
	_, err = f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "plain",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MessageText, f.chat.messages[1].Type)

	// unknown tags are rejected
	_, err = f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "x", MessageType: "telegram",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSendMessagePersistenceFailureNoDelivery(t *testing.T) {
	f := newFixture()
	f.chat.fail = true
	receiver := newBufPeer()
	f.reg.Register(staff2, receiver.peer)

	_, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "hello",
	})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Empty(t, receiver.frames(t), "no delivery when the write failed")
}

// ----- history -----

func TestHistoryNewestFirstAndBounded(t *testing.T) {
	f := newFixture()
	for i := 0; i < historyLimit+10; i++ {
		_, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
			ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "msg",
		})
		require.NoError(t, err)
	}

	hist, err := f.co.History(context.Background(), guest7)
	require.NoError(t, err)
	require.Len(t, hist, historyLimit)
	// newest first
	assert.Greater(t, hist[0].MessageID, hist[1].MessageID)
}

func TestHistoryOnlyInvolvesIdentity(t *testing.T) {
	f := newFixture()
	_, err := f.co.SendMessage(context.Background(), guest7, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "mine",
	})
	require.NoError(t, err)
	_, err = f.co.SendMessage(context.Background(), Identity{ID: 8, Role: model.RoleGuest}, PrivateMessagePayload{
		ReceiverID: 3, ReceiverRole: model.RoleStaff, Message: "not mine",
	})
	require.NoError(t, err)

	hist, err := f.co.History(context.Background(), guest7)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "mine", hist[0].Message)
}

// ----- service requests -----

func TestCreateServiceRequestPairsMessageAndTicket(t *testing.T) {
	f := newFixture()
	staff := newBufPeer()
	f.reg.Register(staff2, staff.peer)

	ack, err := f.co.CreateServiceRequest(context.Background(), guest7, nil, ServiceRequestPayload{
		ServiceType: "housekeeping", Notes: "room 204 needs cleaning",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, ack.Status)

	require.Len(t, f.chat.messages, 1)
	require.Len(t, f.chat.requests, 1)
	msg := f.chat.messages[0]
	assert.Equal(t, model.StaffBroadcastID, msg.ReceiverID)
	assert.Equal(t, model.RoleStaff, msg.ReceiverRole)
	assert.Equal(t, model.MessageServiceRequest, msg.Type)
	ticket := f.chat.requests[0]
	assert.Equal(t, msg.ID, ticket.MessageID)
	require.NotNil(t, ticket.Notes)
	assert.Equal(t, "room 204 needs cleaning", *ticket.Notes)

	frames := staff.frames(t)
	require.Len(t, frames, 1)
	assert.Equal(t, EventNewServiceRequest, frames[0].Event)

	require.Len(t, f.notifier.requests, 1)
	assert.Equal(t, ack.RequestID, f.notifier.requests[0].RequestID)
}

func TestCreateServiceRequestValidation(t *testing.T) {
	f := newFixture()
	_, err := f.co.CreateServiceRequest(context.Background(), guest7, nil, ServiceRequestPayload{
		ServiceType: "", Notes: "missing type",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, f.chat.messages)
	assert.Empty(t, f.chat.requests)
}

func TestCreateServiceRequestAcceptsWireShape(t *testing.T) {
	f := newFixture()

	var p ServiceRequestPayload
	require.NoError(t, json.Unmarshal([]byte(`{"serviceType":"room_cleaning","notes":"urgent"}`), &p))

	_, err := f.co.CreateServiceRequest(context.Background(), guest7, nil, p)
	require.NoError(t, err)

	require.Len(t, f.chat.requests, 1)
	ticket := f.chat.requests[0]
	assert.Equal(t, "room_cleaning", ticket.ServiceType)
	require.NotNil(t, ticket.Notes)
	assert.Equal(t, "urgent", *ticket.Notes)
}

// ----- food orders -----

func TestCreateFoodOrderPricesFromMenuSnapshot(t *testing.T) {
	f := newFixture()
	staff := newBufPeer()
	f.reg.Register(staff2, staff.peer)

	ack, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204,
		Items: []OrderItemInput{
			{ItemID: 1, Quantity: 2}, // 2 x 1250
			{ItemID: 2, Quantity: 3}, // 3 x 400
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(2*1250+3*400), ack.TotalAmountCents)
	assert.Equal(t, model.OrderPending, ack.Status)

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.Equal(t, uint64(11), order.BookingID)
	assert.Equal(t, guestID, order.GuestID)
	assert.Equal(t, ack.TotalAmountCents, order.TotalAmountCents)

	lines := f.orders.lines[0]
	require.Len(t, lines, 2)
	assert.Equal(t, uint32(1250), lines[0].PriceCents, "line price is a snapshot of the menu price")

	frames := staff.frames(t)
	require.Len(t, frames, 1)
	assert.Equal(t, EventNewFoodOrder, frames[0].Event)

	require.Len(t, f.notifier.orders, 1)
	assert.Equal(t, ack.OrderID, f.notifier.orders[0].OrderID)
}

func TestCreateFoodOrderRejectsUnknownItem(t *testing.T) {
	f := newFixture()
	_, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 1, Quantity: 1}, {ItemID: 999, Quantity: 1}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, f.orders.orders, "whole order rejected, nothing persisted")
}

func TestCreateFoodOrderRejectsUnavailableItem(t *testing.T) {
	f := newFixture()
	_, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 3, Quantity: 1}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, "Lobster")
	assert.Empty(t, f.orders.orders)
}

func TestCreateFoodOrderRejectsDuplicateAndEmptyItems(t *testing.T) {
	f := newFixture()
	var ve *ValidationError

	_, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 1, Quantity: 1}, {ItemID: 1, Quantity: 2}},
	})
	require.ErrorAs(t, err, &ve)

	_, err = f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204, Items: nil,
	})
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, f.orders.orders)
}

func TestCreateFoodOrderPersistenceFailure(t *testing.T) {
	f := newFixture()
	f.orders.fail = true
	staff := newBufPeer()
	f.reg.Register(staff2, staff.peer)

	_, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 1, Quantity: 1}},
	})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Empty(t, staff.frames(t), "no broadcast when the write failed")
	assert.Empty(t, f.notifier.orders)
}

func TestCreateFoodOrderAttributedToPayloadGuest(t *testing.T) {
	f := newFixture()

	// The numeric id in the access token is a users-table id; the order
	// belongs to the guest profile named in the payload.
	var p FoodOrderPayload
	require.NoError(t, json.Unmarshal(
		[]byte(`{"bookingId":11,"guestId":7,"roomId":204,"items":[{"itemId":1,"quantity":2}]}`), &p))

	_, err := f.co.CreateFoodOrder(context.Background(), Identity{ID: 999, Role: model.RoleGuest}, nil, p)
	require.NoError(t, err)

	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, uint64(7), f.orders.orders[0].GuestID)
}

func TestCreateFoodOrderRequiresGuestID(t *testing.T) {
	f := newFixture()
	_, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 1, Quantity: 1}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, f.orders.orders)
}

func TestCreateFoodOrderRejectsOversizedTotal(t *testing.T) {
	f := newFixture()
	f.menu.items[9] = model.MenuItem{ID: 9, Name: "Charter Package", PriceCents: 100_000_000, Category: "packages", Available: true}

	_, err := f.co.CreateFoodOrder(context.Background(), guest7, nil, FoodOrderPayload{
		BookingID: 11, GuestID: guestID, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 9, Quantity: 50}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, "total")
	assert.Empty(t, f.orders.orders)
}
