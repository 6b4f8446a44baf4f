package chat

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"hotel-management/internal/model"
	"hotel-management/internal/utils"
)

const testSecret = "gateway-test-secret"

func newTestServer(t *testing.T) (*httptest.Server, *fixture) {
	t.Helper()
	f := newFixture()
	gw := NewGateway(f.co, testSecret)
	e := echo.New()
	e.GET("/ws/chat", gw.Handle)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, f
}

type wsClient struct {
	conn *websocket.Conn
	dec  *json.Decoder
}

func dialWS(t *testing.T, srv *httptest.Server) *wsClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, err := websocket.Dial(url, "", srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &wsClient{conn: conn, dec: json.NewDecoder(conn)}
}

func (c *wsClient) send(t *testing.T, event string, payload any) {
	t.Helper()
	require.NoError(t, json.NewEncoder(c.conn).Encode(NewFrame(event, payload)))
}

func (c *wsClient) read(t *testing.T) Frame {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f Frame
	require.NoError(t, c.dec.Decode(&f))
	return f
}

func token(t *testing.T, userID uint64, role string) string {
	t.Helper()
	at, err := utils.NewAccessToken(testSecret, userID, role, 5)
	require.NoError(t, err)
	return at.Token
}

func authenticate(t *testing.T, c *wsClient, userID uint64, role string) (AuthenticatedOut, []MessageOut) {
	t.Helper()
	c.send(t, EventAuthenticate, AuthPayload{Token: token(t, userID, role)})

	f := c.read(t)
	require.Equal(t, EventAuthenticated, f.Event)
	var out AuthenticatedOut
	require.NoError(t, json.Unmarshal(f.Payload, &out))

	f = c.read(t)
	require.Equal(t, EventChatHistory, f.Event)
	var history []MessageOut
	require.NoError(t, json.Unmarshal(f.Payload, &history))
	return out, history
}

func TestGatewayRequiresAuthenticationFirst(t *testing.T) {
	srv, _ := newTestServer(t)
	c := dialWS(t, srv)

	c.send(t, EventPrivateMessage, PrivateMessagePayload{ReceiverID: 1, ReceiverRole: model.RoleStaff, Message: "hi"})
	f := c.read(t)
	require.Equal(t, EventError, f.Event)

	var e ErrorOut
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "authenticate first", e.Message)

	// gateway closes the connection after a failed handshake
	var dummy Frame
	assert.Error(t, c.dec.Decode(&dummy))
}

func TestGatewayRejectsInvalidToken(t *testing.T) {
	srv, _ := newTestServer(t)
	c := dialWS(t, srv)

	c.send(t, EventAuthenticate, AuthPayload{Token: "not-a-jwt"})
	f := c.read(t)
	require.Equal(t, EventError, f.Event)

	var e ErrorOut
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "invalid token", e.Message)
}

func TestGatewayHandshakeReplaysHistory(t *testing.T) {
	srv, f := newTestServer(t)
	require.NoError(t, f.chat.CreateMessage(t.Context(), &model.ChatMessage{
		SenderID: 7, SenderRole: model.RoleGuest,
		ReceiverID: 2, ReceiverRole: model.RoleStaff,
		Body: "earlier message", Type: model.MessageText, Status: model.MessageSent,
	}))

	c := dialWS(t, srv)
	out, history := authenticate(t, c, 7, model.RoleGuest)

	assert.Equal(t, uint64(7), out.UserID)
	assert.Equal(t, model.RoleGuest, out.Role)
	require.Len(t, history, 1)
	assert.Equal(t, "earlier message", history[0].Message)
}

func TestGatewayPrivateMessageFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	staff := dialWS(t, srv)
	authenticate(t, staff, 2, model.RoleStaff)

	guest := dialWS(t, srv)
	authenticate(t, guest, 7, model.RoleGuest)

	guest.send(t, EventPrivateMessage, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "extra pillows please",
	})

	ackFrame := guest.read(t)
	require.Equal(t, EventMessageSent, ackFrame.Event)
	var ack MessageSentOut
	require.NoError(t, json.Unmarshal(ackFrame.Payload, &ack))
	assert.True(t, ack.Delivered)

	inFrame := staff.read(t)
	require.Equal(t, EventNewMessage, inFrame.Event)
	var msg MessageOut
	require.NoError(t, json.Unmarshal(inFrame.Payload, &msg))
	assert.Equal(t, "extra pillows please", msg.Message)
	assert.Equal(t, uint64(7), msg.SenderID)
}

func TestGatewayServiceRequestReachesStaff(t *testing.T) {
	srv, _ := newTestServer(t)

	staff := dialWS(t, srv)
	authenticate(t, staff, 2, model.RoleStaff)

	guest := dialWS(t, srv)
	authenticate(t, guest, 7, model.RoleGuest)

	guest.send(t, EventServiceRequest, ServiceRequestPayload{
		ServiceType: "laundry", Notes: "two shirts",
	})

	ackFrame := guest.read(t)
	require.Equal(t, EventServiceRequestCreated, ackFrame.Event)

	inFrame := staff.read(t)
	require.Equal(t, EventNewServiceRequest, inFrame.Event)
	var req NewServiceRequestOut
	require.NoError(t, json.Unmarshal(inFrame.Payload, &req))
	assert.Equal(t, "laundry", req.ServiceType)
	assert.Equal(t, "two shirts", req.Notes)
	assert.Equal(t, model.RequestPending, req.Status)
}

func TestGatewayFoodOrderFlow(t *testing.T) {
	srv, f := newTestServer(t)

	guest := dialWS(t, srv)
	authenticate(t, guest, 7, model.RoleGuest)

	guest.send(t, EventFoodOrder, FoodOrderPayload{
		BookingID: 11, GuestID: 7, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 1, Quantity: 2}},
	})

	ackFrame := guest.read(t)
	require.Equal(t, EventFoodOrderCreated, ackFrame.Event)
	var ack FoodOrderCreatedOut
	require.NoError(t, json.Unmarshal(ackFrame.Payload, &ack))
	assert.Equal(t, uint32(2500), ack.TotalAmountCents)
	require.Len(t, f.orders.orders, 1)
}

func TestGatewayStaffCannotPlaceOrders(t *testing.T) {
	srv, _ := newTestServer(t)

	staff := dialWS(t, srv)
	authenticate(t, staff, 2, model.RoleStaff)

	staff.send(t, EventFoodOrder, FoodOrderPayload{
		BookingID: 11, GuestID: 7, RoomID: 204,
		Items: []OrderItemInput{{ItemID: 1, Quantity: 1}},
	})

	f := staff.read(t)
	require.Equal(t, EventError, f.Event)
	var e ErrorOut
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, EventFoodOrder, e.Event)
}

func TestGatewayUnknownEvent(t *testing.T) {
	srv, _ := newTestServer(t)

	c := dialWS(t, srv)
	authenticate(t, c, 7, model.RoleGuest)

	c.send(t, "teleport", nil)
	f := c.read(t)
	require.Equal(t, EventError, f.Event)
	var e ErrorOut
	require.NoError(t, json.Unmarshal(f.Payload, &e))
	assert.Equal(t, "unknown event", e.Message)
}

func TestGatewayValidationErrorKeepsConnection(t *testing.T) {
	srv, _ := newTestServer(t)

	guest := dialWS(t, srv)
	authenticate(t, guest, 7, model.RoleGuest)

	guest.send(t, EventPrivateMessage, PrivateMessagePayload{ReceiverID: 2, ReceiverRole: "butler", Message: "hi"})
	f := guest.read(t)
	require.Equal(t, EventError, f.Event)

	// connection survives; a valid message still goes through
	guest.send(t, EventPrivateMessage, PrivateMessagePayload{
		ReceiverID: 2, ReceiverRole: model.RoleStaff, Message: "second try",
	})
	f = guest.read(t)
	assert.Equal(t, EventMessageSent, f.Event)
}
