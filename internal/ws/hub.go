package ws

import (
	"sort"
	"sync"
)

// Sink is the delivery end of a connection. Implementations must not block;
// the hub calls Send outside its lock but from handler goroutines.
type Sink interface {
	Send(Event)
}

// Hub tracks live connections, which user each one authenticated as, and
// the rooms a connection has joined. All state is process-lifetime-scoped
// and resets on restart; scaling past one process would move these maps to
// a shared store.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]Sink            // connection id -> sink
	online   map[string]string          // user id -> connection id
	rooms    map[string]map[string]Sink // room -> connection id -> sink
}

// NewHub returns an empty presence/room registry.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]Sink),
		online:   make(map[string]string),
		rooms:    make(map[string]map[string]Sink),
	}
}

// Connect tracks a freshly upgraded connection before it has announced an
// identity.
func (h *Hub) Connect(connID string, sink Sink) {
	h.mu.Lock()
	h.sessions[connID] = sink
	h.mu.Unlock()
}

// Register binds a user identity to a connection, joins the connection to
// its identity room and broadcasts the updated online set. Only the latest
// connection per user is tracked; registering again overwrites.
func (h *Hub) Register(userID, connID string) {
	h.mu.Lock()
	h.online[userID] = connID
	h.joinLocked(connID, userID)
	h.mu.Unlock()

	h.broadcastPresence()
}

// Disconnect removes the connection from every room and, if it carried an
// identity, from the presence table. Presence removal scans the table for
// the matching connection; concurrent connection counts stay small enough
// that O(n) is fine.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	delete(h.sessions, connID)

	for room, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}

	wasOnline := false
	for userID, cid := range h.online {
		if cid == connID {
			delete(h.online, userID)
			wasOnline = true
			break
		}
	}
	h.mu.Unlock()

	if wasOnline {
		h.broadcastPresence()
	}
}

// Join adds the connection to a named room. A connection may belong to many
// rooms at once; membership disappears implicitly on disconnect.
func (h *Hub) Join(connID, room string) {
	h.mu.Lock()
	h.joinLocked(connID, room)
	h.mu.Unlock()
}

func (h *Hub) joinLocked(connID, room string) {
	sink, ok := h.sessions[connID]
	if !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]Sink)
	}
	h.rooms[room][connID] = sink
}

// Online returns the identifiers of currently registered users, sorted.
func (h *Hub) Online() []string {
	h.mu.RLock()
	users := make([]string, 0, len(h.online))
	for userID := range h.online {
		users = append(users, userID)
	}
	h.mu.RUnlock()

	sort.Strings(users)
	return users
}

// Broadcast sends an event to every live connection.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	sinks := make([]Sink, 0, len(h.sessions))
	for _, sink := range h.sessions {
		sinks = append(sinks, sink)
	}
	h.mu.RUnlock()

	for _, sink := range sinks {
		sink.Send(ev)
	}
}

// EmitToRoom delivers an event to every connection in the room except the
// given one. An empty or unknown room is a silent no-op.
func (h *Hub) EmitToRoom(room string, ev Event, exceptConnID string) {
	h.mu.RLock()
	var sinks []Sink
	for connID, sink := range h.rooms[room] {
		if connID == exceptConnID {
			continue
		}
		sinks = append(sinks, sink)
	}
	h.mu.RUnlock()

	for _, sink := range sinks {
		sink.Send(ev)
	}
}

// FanOut delivers a message payload to the identity room of every chat
// member except the sender. Delivery is at-most-once; members without a
// live connection are skipped silently. Returns ErrMissingMembers when the
// payload carries no member list.
func (h *Hub) FanOut(msg MessagePayload, senderConnID string) error {
	if len(msg.Chat.Users) == 0 {
		return ErrMissingMembers
	}

	ev := Event{Type: EventMessageReceived, Message: &msg}
	for _, member := range msg.Chat.Users {
		if member.ID == msg.Sender.ID {
			continue
		}
		h.EmitToRoom(member.ID, ev, senderConnID)
	}
	return nil
}

func (h *Hub) broadcastPresence() {
	h.Broadcast(Event{Type: EventOnlineUsers, Users: h.Online()})
}
