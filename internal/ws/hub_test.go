package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakeSink) Send(ev Event) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
}

func (f *fakeSink) byType(kind string) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Event
	for _, ev := range f.events {
		if ev.Type == kind {
			out = append(out, ev)
		}
	}
	return out
}

func connect(h *Hub, connID string) *fakeSink {
	sink := &fakeSink{}
	h.Connect(connID, sink)
	return sink
}

func TestRegisterTracksPresenceAndBroadcasts(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := connect(h, "conn-a")
	b := connect(h, "conn-b")

	h.Register("alice", "conn-a")

	assert.Equal(t, []string{"alice"}, h.Online())

	// Both live connections see the presence update.
	for _, sink := range []*fakeSink{a, b} {
		updates := sink.byType(EventOnlineUsers)
		require.Len(t, updates, 1)
		assert.Equal(t, []string{"alice"}, updates[0].Users)
	}
}

func TestRegisterLatestConnectionWins(t *testing.T) {
	t.Parallel()

	h := NewHub()
	old := connect(h, "conn-old")
	connect(h, "conn-new")

	h.Register("alice", "conn-old")
	h.Register("alice", "conn-new")

	assert.Equal(t, []string{"alice"}, h.Online())

	// Identity-channel traffic only reaches the latest connection.
	h.EmitToRoom("alice", Event{Type: EventMessageReceived}, "")
	received := old.byType(EventMessageReceived)
	assert.Len(t, received, 1, "stale connection keeps its old room membership until it drops")

	// Dropping the stale connection must not knock alice offline.
	h.Disconnect("conn-old")
	assert.Equal(t, []string{"alice"}, h.Online())
}

func TestDisconnectRemovesPresenceAndBroadcasts(t *testing.T) {
	t.Parallel()

	h := NewHub()
	connect(h, "conn-a")
	watcher := connect(h, "conn-b")

	h.Register("alice", "conn-a")
	h.Register("bob", "conn-b")
	h.Disconnect("conn-a")

	assert.Equal(t, []string{"bob"}, h.Online())

	updates := watcher.byType(EventOnlineUsers)
	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.Equal(t, []string{"bob"}, last.Users)
}

func TestDisconnectWithoutIdentityIsQuiet(t *testing.T) {
	t.Parallel()

	h := NewHub()
	connect(h, "conn-anon")
	watcher := connect(h, "conn-b")

	h.Disconnect("conn-anon")

	assert.Empty(t, h.Online())
	assert.Empty(t, watcher.byType(EventOnlineUsers))
}

func TestEmitToRoomExcludesSender(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := connect(h, "conn-a")
	b := connect(h, "conn-b")
	c := connect(h, "conn-c")

	h.Join("conn-a", "room-1")
	h.Join("conn-b", "room-1")
	h.Join("conn-c", "room-2")

	h.EmitToRoom("room-1", Event{Type: EventTyping, Room: "room-1"}, "conn-a")

	assert.Empty(t, a.byType(EventTyping), "sender must not receive its own signal")
	assert.Len(t, b.byType(EventTyping), 1)
	assert.Empty(t, c.byType(EventTyping), "other rooms stay silent")
}

func TestEmitToUnknownRoomIsNoOp(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := connect(h, "conn-a")

	h.EmitToRoom("nowhere", Event{Type: EventTyping, Room: "nowhere"}, "")
	assert.Empty(t, a.events)
}

func TestFanOutDeliversToMembersExceptSender(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := connect(h, "conn-a")
	b := connect(h, "conn-b")
	outsider := connect(h, "conn-x")

	h.Register("alice", "conn-a")
	h.Register("bob", "conn-b")
	h.Register("mallory", "conn-x")

	msg := MessagePayload{
		Sender:  UserRef{ID: "alice"},
		Chat:    ChatRef{ID: "conv-1", Users: []UserRef{{ID: "alice"}, {ID: "bob"}}},
		Content: "selling my cycle",
	}

	require.NoError(t, h.FanOut(msg, "conn-a"))

	got := b.byType(EventMessageReceived)
	require.Len(t, got, 1)
	assert.Equal(t, "selling my cycle", got[0].Message.Content)

	assert.Empty(t, a.byType(EventMessageReceived), "sender excluded")
	assert.Empty(t, outsider.byType(EventMessageReceived), "non-members excluded")
}

func TestFanOutToOfflineMemberIsSilent(t *testing.T) {
	t.Parallel()

	h := NewHub()
	connect(h, "conn-a")
	h.Register("alice", "conn-a")

	msg := MessagePayload{
		Sender: UserRef{ID: "alice"},
		Chat:   ChatRef{ID: "conv-1", Users: []UserRef{{ID: "alice"}, {ID: "bob"}}},
	}

	assert.NoError(t, h.FanOut(msg, "conn-a"))
}

func TestFanOutWithoutMembersIsRejected(t *testing.T) {
	t.Parallel()

	h := NewHub()
	msg := MessagePayload{Sender: UserRef{ID: "alice"}, Chat: ChatRef{ID: "conv-1"}}

	assert.ErrorIs(t, h.FanOut(msg, "conn-a"), ErrMissingMembers)
}

func TestOnlineIsSorted(t *testing.T) {
	t.Parallel()

	h := NewHub()
	connect(h, "c1")
	connect(h, "c2")
	connect(h, "c3")

	h.Register("charlie", "c3")
	h.Register("alice", "c1")
	h.Register("bob", "c2")

	assert.Equal(t, []string{"alice", "bob", "charlie"}, h.Online())
}
