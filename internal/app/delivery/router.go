package delivery

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"fitchat/internal/app/message"
	"fitchat/internal/pkg/logx"
)

// Router is the room-based publish/subscribe registry. Connections are handled by
// independent goroutines, so the membership table is guarded by a single mutex:
// join, publish, and disconnect can race.
type Router struct {
	// rooms maps a room id (an actor id) to its current subscriber set.
	rooms map[string]map[*Client]struct{}

	// mu protects concurrent access to the rooms map and each client's room field.
	mu sync.RWMutex

	// structured logger with Router context.
	logger zerolog.Logger
}

// NewRouter constructs and returns a new Router instance. It is created once at
// process start and handed to every component that publishes, never looked up
// from ambient state.
func NewRouter() *Router {
	return &Router{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logx.Logger().With().Str("component", "Router").Logger(),
	}
}

// Join subscribes the client to the room named by roomID. A client subscribes to
// at most one room; joining again moves it.
func (rt *Router) Join(c *Client, roomID string) {
	if roomID == "" {
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if c.room != "" {
		rt.removeLocked(c)
	}

	subscribers, ok := rt.rooms[roomID]
	if !ok {
		subscribers = make(map[*Client]struct{})
		rt.rooms[roomID] = subscribers
	}
	subscribers[c] = struct{}{}
	c.room = roomID

	rt.logger.Info().
		Str("room_id", roomID).
		Int("subscribers", len(subscribers)).
		Msg("Client joined room.")
}

// Leave removes the client from its room, if any. Called on disconnect; it
// changes no persisted state.
func (rt *Router) Leave(c *Client) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.removeLocked(c)
}

// removeLocked drops the client from its current room and deletes the room when
// it becomes empty. Caller must hold mu.
func (rt *Router) removeLocked(c *Client) {
	if c.room == "" {
		return
	}

	if subscribers, ok := rt.rooms[c.room]; ok {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(rt.rooms, c.room)
		}
	}
	c.room = ""
}

// Publish broadcasts the message to every current subscriber of the target room
// and returns the number of connections it was queued to. Zero subscribers is a
// normal, silent outcome: the recipient will see the message via the thread
// endpoint instead. Delivery is at-most-once and best-effort.
func (rt *Router) Publish(targetID string, msg message.Message) int {
	event := OutboundEvent{
		Type:    EventReceiveMessage,
		Payload: msg,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		rt.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Error marshaling message for delivery.")
		return 0
	}

	rt.mu.RLock()
	defer rt.mu.RUnlock()

	subscribers, ok := rt.rooms[targetID]
	if !ok {
		return 0
	}

	delivered := 0
	for client := range subscribers {
		if client.enqueue(eventBytes) {
			delivered++
		} else {
			rt.logger.Warn().
				Str("room_id", targetID).
				Msg("Subscriber send queue full, dropping live delivery.")
		}
	}
	return delivered
}

// RoomSize returns the current subscriber count of a room.
func (rt *Router) RoomSize(roomID string) int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	return len(rt.rooms[roomID])
}

// Shutdown closes the send queue of every connected client so their write pumps
// terminate with a close frame.
func (rt *Router) Shutdown() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	for roomID, subscribers := range rt.rooms {
		for client := range subscribers {
			client.closeSend()
		}
		delete(rt.rooms, roomID)
	}

	rt.logger.Info().Msg("Router shutdown complete.")
}
