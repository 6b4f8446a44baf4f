package chat

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management/internal/model"
)

// bufPeer is a peer writing frames into a buffer so tests can inspect
// what was delivered.
type bufPeer struct {
	buf  *bytes.Buffer
	peer *Peer
}

func newBufPeer() *bufPeer {
	buf := &bytes.Buffer{}
	return &bufPeer{buf: buf, peer: NewPeer(json.NewEncoder(buf))}
}

func (b *bufPeer) frames(t *testing.T) []Frame {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(b.buf.Bytes()))
	var out []Frame
	for dec.More() {
		var f Frame
		require.NoError(t, dec.Decode(&f))
		out = append(out, f)
	}
	return out
}

func TestRegistrySendToAllDevices(t *testing.T) {
	reg := NewRegistry()
	id := Identity{ID: 7, Role: model.RoleGuest}

	phone := newBufPeer()
	tablet := newBufPeer()
	reg.Register(id, phone.peer)
	reg.Register(id, tablet.peer)

	delivered := reg.Send(id, NewFrame(EventNewMessage, MessageOut{MessageID: 1}))
	assert.True(t, delivered)
	assert.Len(t, phone.frames(t), 1)
	assert.Len(t, tablet.frames(t), 1)
}

func TestRegistrySendOffline(t *testing.T) {
	reg := NewRegistry()
	delivered := reg.Send(Identity{ID: 99, Role: model.RoleGuest}, NewFrame(EventNewMessage, MessageOut{}))
	assert.False(t, delivered)
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	id := Identity{ID: 3, Role: model.RoleStaff}
	p := newBufPeer()
	reg.Register(id, p.peer)
	require.True(t, reg.Online(id))

	reg.Unregister(p.peer)
	assert.False(t, reg.Online(id))
	// second call must not panic or resurrect anything
	reg.Unregister(p.peer)
	assert.False(t, reg.Online(id))
}

func TestRegistryGuestAndStaffShareNumericID(t *testing.T) {
	reg := NewRegistry()
	guest := newBufPeer()
	staff := newBufPeer()
	reg.Register(Identity{ID: 5, Role: model.RoleGuest}, guest.peer)
	reg.Register(Identity{ID: 5, Role: model.RoleStaff}, staff.peer)

	reg.Send(Identity{ID: 5, Role: model.RoleGuest}, NewFrame(EventNewMessage, MessageOut{MessageID: 42}))

	assert.Len(t, guest.frames(t), 1)
	assert.Empty(t, staff.frames(t))
}

func TestRegistryBroadcastStaffExcludesOrigin(t *testing.T) {
	reg := NewRegistry()
	origin := newBufPeer()
	other := newBufPeer()
	guest := newBufPeer()
	reg.Register(Identity{ID: 1, Role: model.RoleStaff}, origin.peer)
	reg.Register(Identity{ID: 2, Role: model.RoleStaff}, other.peer)
	reg.Register(Identity{ID: 3, Role: model.RoleGuest}, guest.peer)

	n := reg.BroadcastStaff(NewFrame(EventNewServiceRequest, NewServiceRequestOut{RequestID: 1}), origin.peer)

	assert.Equal(t, 1, n)
	assert.Empty(t, origin.frames(t))
	assert.Len(t, other.frames(t), 1)
	assert.Empty(t, guest.frames(t))
}

func TestRegistryStaffLeavesChannelOnUnregister(t *testing.T) {
	reg := NewRegistry()
	p := newBufPeer()
	reg.Register(Identity{ID: 8, Role: model.RoleStaff}, p.peer)
	reg.Unregister(p.peer)

	n := reg.BroadcastStaff(NewFrame(EventNewFoodOrder, NewFoodOrderOut{}), nil)
	assert.Zero(t, n)
	assert.Empty(t, p.frames(t))
}
