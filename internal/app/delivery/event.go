/*
Package delivery implements best-effort live delivery of persisted messages.

Every connected actor joins one room named after its own id. Publishing a message fans it
out to whoever is currently subscribed to the recipient's room; an empty room is a silent
no-op. Durability always comes from the message store, never from this layer.
*/
package delivery

import "encoding/json"

// EventType discriminates the frames exchanged over the websocket.
type EventType string

const (
	// EventJoinRoom is sent by the client to subscribe to messages addressed to the given id.
	EventJoinRoom EventType = "join_room"

	// EventReceiveMessage is sent by the server to deliver a message to the recipient's room.
	EventReceiveMessage EventType = "receive_message"
)

// InboundEvent is the raw frame read from a client connection.
type InboundEvent struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// OutboundEvent is a frame written to a client connection.
type OutboundEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// JoinRoomPayload carries the room id a client wants to subscribe to.
type JoinRoomPayload struct {
	ID string `json:"id"`
}
