package ws

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const sendBuffer = 32

// Client wraps a websocket connection with a buffered outbound queue so
// hub delivery never blocks on a slow reader.
type Client struct {
	ID   string
	conn *websocket.Conn

	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send queues an event for delivery. Events for closed connections or full
// buffers are dropped; delivery is best-effort by contract.
func (c *Client) Send(ev Event) {
	select {
	case <-c.done:
	case c.send <- ev:
	default:
		log.Printf("ws: dropping %s event for slow connection %s", ev.Type, c.ID)
	}
}

// WriteLoop drains the outbound queue onto the wire. It returns when Close
// is called or a write fails.
func (c *Client) WriteLoop() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.send:
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

// Close stops the write loop. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
