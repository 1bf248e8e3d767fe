package ws

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeGuard rejects plain HTTP requests on the websocket endpoint.
func UpgradeGuard(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler runs the read loop for one chat connection. Events are validated
// at the boundary; malformed ones are logged and dropped, never surfaced
// back to the sender.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient(conn)
		hub.Connect(client.ID, client)
		go client.WriteLoop()

		defer func() {
			hub.Disconnect(client.ID)
			client.Close()
		}()

		for {
			var ev Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			dispatch(hub, client, ev)
		}
	})
}

func dispatch(hub *Hub, client *Client, ev Event) {
	if err := ev.Validate(); err != nil {
		log.Printf("ws: dropping event from %s: %v", client.ID, err)
		return
	}

	switch ev.Type {
	case EventSetup:
		hub.Register(ev.User.ID, client.ID)
		client.Send(Event{Type: EventConnected})
	case EventJoinChat:
		hub.Join(client.ID, ev.Room)
	case EventNewMessage:
		if err := hub.FanOut(*ev.Message, client.ID); err != nil {
			log.Printf("ws: fan-out skipped: %v", err)
		}
	case EventTyping, EventStopTyping:
		hub.EmitToRoom(ev.Room, Event{Type: ev.Type, Room: ev.Room}, client.ID)
	}
}
