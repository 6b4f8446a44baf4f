package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"hotel-management/internal/model"
	"hotel-management/internal/utils"
)

// Gateway bridges websocket connections to the coordinator. Every
// connection must authenticate with an access token before any other
// event is accepted; the handshake reply carries the recent history.
type Gateway struct {
	co     *Coordinator
	secret string
}

// NewGateway returns a gateway validating handshakes against the given
// JWT secret.
func NewGateway(co *Coordinator, jwtSecret string) *Gateway {
	return &Gateway{co: co, secret: jwtSecret}
}

// Handle mounts the websocket endpoint on an Echo route.
func (g *Gateway) Handle(c echo.Context) error {
	websocket.Handler(g.serve).ServeHTTP(c.Response(), c.Request())
	return nil
}

func (g *Gateway) serve(ws *websocket.Conn) {
	defer ws.Close()

	dec := json.NewDecoder(ws)
	peer := NewPeer(json.NewEncoder(ws))
	ctx := ws.Request().Context()

	ident, err := g.handshake(dec, peer)
	if err != nil {
		return
	}

	history, err := g.co.History(ctx, ident)
	if err != nil {
		writeError(peer, EventAuthenticate, "failed to load history")
		return
	}

	reg := g.co.Registry()
	reg.Register(ident, peer)
	// Single teardown path: whatever ends the frame loop, the peer
	// leaves the registry exactly here.
	defer reg.Unregister(peer)

	if err := peer.Send(NewFrame(EventAuthenticated, AuthenticatedOut{
		UserID: ident.ID,
		Role:   ident.Role,
	})); err != nil {
		return
	}
	if err := peer.Send(NewFrame(EventChatHistory, history)); err != nil {
		return
	}

	for {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			return
		}
		g.dispatch(ctx, peer, ident, f)
	}
}

// handshake reads the first frame, which must be an authenticate event
// carrying a valid access token. The chat identity uses the staff role
// for admins so they share the staff channel.
func (g *Gateway) handshake(dec *json.Decoder, peer *Peer) (Identity, error) {
	var f Frame
	if err := dec.Decode(&f); err != nil {
		return Identity{}, err
	}
	if f.Event != EventAuthenticate {
		writeError(peer, f.Event, "authenticate first")
		return Identity{}, &AuthError{Reason: "not authenticated"}
	}
	var p AuthPayload
	if err := json.Unmarshal(f.Payload, &p); err != nil || p.Token == "" {
		writeError(peer, EventAuthenticate, "token required")
		return Identity{}, &AuthError{Reason: "token required"}
	}
	claims, err := utils.ParseAccessToken(g.secret, p.Token)
	if err != nil {
		writeError(peer, EventAuthenticate, "invalid token")
		return Identity{}, &AuthError{Reason: "invalid token"}
	}
	role := claims.Role
	if role == model.RoleAdmin {
		role = model.RoleStaff
	}
	if role != model.RoleGuest && role != model.RoleStaff {
		writeError(peer, EventAuthenticate, "unsupported role")
		return Identity{}, &AuthError{Reason: "unsupported role"}
	}
	return Identity{ID: claims.UserID, Role: role}, nil
}

func (g *Gateway) dispatch(ctx context.Context, peer *Peer, ident Identity, f Frame) {
	switch f.Event {
	case EventPrivateMessage:
		var p PrivateMessagePayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			writeError(peer, f.Event, "malformed payload")
			return
		}
		ack, err := g.co.SendMessage(ctx, ident, p)
		if err != nil {
			g.sendError(peer, f.Event, err)
			return
		}
		_ = peer.Send(NewFrame(EventMessageSent, ack))

	case EventServiceRequest:
		if ident.Role != model.RoleGuest {
			writeError(peer, f.Event, "only guests can raise service requests")
			return
		}
		var p ServiceRequestPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			writeError(peer, f.Event, "malformed payload")
			return
		}
		ack, err := g.co.CreateServiceRequest(ctx, ident, peer, p)
		if err != nil {
			g.sendError(peer, f.Event, err)
			return
		}
		_ = peer.Send(NewFrame(EventServiceRequestCreated, ack))

	case EventFoodOrder:
		if ident.Role != model.RoleGuest {
			writeError(peer, f.Event, "only guests can place food orders")
			return
		}
		var p FoodOrderPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			writeError(peer, f.Event, "malformed payload")
			return
		}
		ack, err := g.co.CreateFoodOrder(ctx, ident, peer, p)
		if err != nil {
			g.sendError(peer, f.Event, err)
			return
		}
		_ = peer.Send(NewFrame(EventFoodOrderCreated, ack))

	case EventAuthenticate:
		writeError(peer, f.Event, "already authenticated")

	default:
		writeError(peer, f.Event, "unknown event")
	}
}

// sendError maps coordinator errors onto the error envelope. Internal
// details stay in the server log; clients get a stable message.
func (g *Gateway) sendError(peer *Peer, event string, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		writeError(peer, event, ve.Reason)
		return
	}
	log.Printf("chat: %s failed: %v", event, err)
	writeError(peer, event, "operation failed")
}

func writeError(peer *Peer, event, msg string) {
	_ = peer.Send(NewFrame(EventError, ErrorOut{Event: event, Message: msg}))
}
