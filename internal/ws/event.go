package ws

import "errors"

// Event kinds exchanged over the chat transport.
const (
	EventSetup           = "setup"
	EventConnected       = "connected"
	EventJoinChat        = "join_chat"
	EventNewMessage      = "new_message"
	EventMessageReceived = "message_received"
	EventTyping          = "typing"
	EventStopTyping      = "stop_typing"
	EventOnlineUsers     = "online_users"
)

var (
	ErrUnknownEvent   = errors.New("ws: unknown event type")
	ErrMissingUser    = errors.New("ws: setup event missing user id")
	ErrMissingRoom    = errors.New("ws: event missing room")
	ErrMissingMessage = errors.New("ws: message event missing payload")
	ErrMissingMembers = errors.New("ws: message payload missing chat members")
)

// UserRef is the public identity attached to chat payloads.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ChatRef carries a conversation's identifier and member list. Fan-out
// resolves recipients from Users; it is never re-fetched from storage.
type ChatRef struct {
	ID    string    `json:"id"`
	Users []UserRef `json:"users"`
}

// MessagePayload is the fan-out input published by a client after it has
// persisted a message through the REST endpoint.
type MessagePayload struct {
	Sender  UserRef `json:"sender"`
	Chat    ChatRef `json:"chat"`
	Content string  `json:"content"`
}

// Event is the tagged union travelling over a chat connection. Exactly one
// of the optional fields is meaningful for a given Type.
type Event struct {
	Type    string          `json:"type"`
	User    *UserRef        `json:"user,omitempty"`
	Room    string          `json:"room,omitempty"`
	Message *MessagePayload `json:"message,omitempty"`
	Users   []string        `json:"users,omitempty"`
}

// Validate checks the fixed schema for the event's kind before it is
// dispatched into the hub.
func (e Event) Validate() error {
	switch e.Type {
	case EventSetup:
		if e.User == nil || e.User.ID == "" {
			return ErrMissingUser
		}
	case EventJoinChat, EventTyping, EventStopTyping:
		if e.Room == "" {
			return ErrMissingRoom
		}
	case EventNewMessage:
		if e.Message == nil {
			return ErrMissingMessage
		}
		if len(e.Message.Chat.Users) == 0 {
			return ErrMissingMembers
		}
	default:
		return ErrUnknownEvent
	}
	return nil
}
