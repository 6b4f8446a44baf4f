package chat

import (
	"encoding/json"
	"sync"

	"hotel-management/internal/model"
)

// Identity is the addressing key for a chat participant: the numeric id
// together with the role. Guest id 7 and staff id 7 are different
// participants.
type Identity struct {
	ID   uint64
	Role string
}

// Peer is one live websocket connection. Writes are serialized through
// a mutex because multiple goroutines (the owner's frame loop plus
// fan-out from other connections) may send concurrently.
type Peer struct {
	mu  sync.Mutex
	enc *json.Encoder

	identity Identity
}

// NewPeer wraps a JSON encoder, normally one bound to a websocket
// connection.
func NewPeer(enc *json.Encoder) *Peer {
	return &Peer{enc: enc}
}

// Identity returns the identity assigned at registration time. Zero
// value before registration.
func (p *Peer) Identity() Identity { return p.identity }

// Send encodes one frame onto the connection. Errors are returned so
// the registry can drop dead peers, but a failed delivery to one peer
// never aborts fan-out to the others.
func (p *Peer) Send(f Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(f)
}

// Registry tracks which participants are connected right now. A single
// identity may hold several live connections (phone plus tablet); all
// of them receive deliveries. Staff connections additionally join the
// shared staff channel that group-addressed traffic fans out to.
type Registry struct {
	mu    sync.Mutex
	peers map[Identity]map[*Peer]struct{}
	staff map[*Peer]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		peers: make(map[Identity]map[*Peer]struct{}),
		staff: make(map[*Peer]struct{}),
	}
}

// Register adds a peer under the given identity. Staff peers also join
// the staff channel. Registering the same peer twice is a no-op.
func (r *Registry) Register(id Identity, p *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.identity = id
	set, ok := r.peers[id]
	if !ok {
		set = make(map[*Peer]struct{})
		r.peers[id] = set
	}
	set[p] = struct{}{}
	if id.Role == model.RoleStaff {
		r.staff[p] = struct{}{}
	}
}

// Unregister removes a peer. It is idempotent: the gateway calls it from
// a single teardown path, but a second call for the same peer is
// harmless.
func (r *Registry) Unregister(p *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.peers[p.identity]; ok {
		delete(set, p)
		if len(set) == 0 {
			delete(r.peers, p.identity)
		}
	}
	delete(r.staff, p)
}

// Online reports whether at least one connection exists for the
// identity.
func (r *Registry) Online(id Identity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers[id]) > 0
}

// Send delivers a frame to every connection of one identity and reports
// whether anyone received it. An offline receiver is not an error; the
// message is already persisted and will surface through history.
func (r *Registry) Send(id Identity, f Frame) bool {
	r.mu.Lock()
	targets := make([]*Peer, 0, len(r.peers[id]))
	for p := range r.peers[id] {
		targets = append(targets, p)
	}
	r.mu.Unlock()

	delivered := false
	for _, p := range targets {
		if err := p.Send(f); err == nil {
			delivered = true
		}
	}
	return delivered
}

// BroadcastStaff delivers a frame to every staff connection, skipping
// the excluded peer (usually the originator). Returns the number of
// peers that received it.
func (r *Registry) BroadcastStaff(f Frame, exclude *Peer) int {
	r.mu.Lock()
	targets := make([]*Peer, 0, len(r.staff))
	for p := range r.staff {
		if p != exclude {
			targets = append(targets, p)
		}
	}
	r.mu.Unlock()

	n := 0
	for _, p := range targets {
		if err := p.Send(f); err == nil {
			n++
		}
	}
	return n
}
