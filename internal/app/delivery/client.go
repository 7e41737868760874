package delivery

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"fitchat/internal/app/actor"
	"fitchat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxFrameSize = 4096

	// sendQueueSize is the per-connection buffer of outbound frames.
	sendQueueSize = 256
)

// Client represents one live WebSocket connection and its authenticated actor.
// Lifecycle: connected (unjoined) until a join_room frame arrives, then joined
// to exactly one room, then gone on disconnect.
type Client struct {
	// the router this connection registers with.
	router *Router

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// the authenticated actor behind the connection.
	actor actor.Ref

	// room is the id of the joined room, empty while unjoined. Guarded by router.mu.
	room string

	// a buffered channel queueing frames waiting to be written to the client.
	send chan []byte

	// closeOnce guards the send channel against double close.
	closeOnce sync.Once

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection. The connection is
// not subscribed to any room until the client sends join_room.
func NewClient(router *Router, conn *websocket.Conn, ref actor.Ref) *Client {
	clientLogger := logx.Logger().With().
		Str("actor_id", ref.ID).
		Str("actor_kind", string(ref.Kind)).
		Logger()

	return &Client{
		router: router,
		conn:   conn,
		actor:  ref,
		send:   make(chan []byte, sendQueueSize),
		logger: clientLogger,
	}
}

// enqueue queues a frame for the write pump without blocking.
// Returns false when the queue is full; the frame is dropped.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once, letting the write pump exit.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump reads frames from the connection until it closes. It handles the
// pong heartbeat and dispatches inbound events, then cleans up on exit.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frameBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.processInboundFrame(frameBytes)
	}
}

// cleanupOnDisconnect unregisters the client from its room and closes the connection.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.router.Leave(c)
	c.closeSend()

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// processInboundFrame dispatches a raw frame from the client. The only inbound
// event this core understands is join_room; everything else is dropped.
func (c *Client) processInboundFrame(frameBytes []byte) {
	var event InboundEvent
	if err := json.Unmarshal(frameBytes, &event); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON frame")
		return
	}

	switch event.Type {
	case EventJoinRoom:
		var payload JoinRoomPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid join_room payload")
			return
		}
		// The joined id is taken as-is; the upgrade itself was token-gated.
		c.router.Join(c, payload.ID)

	default:
		c.logger.Warn().Str("event_type", string(event.Type)).Msg("Client sent unsupported event type")
	}
}

// WritePump writes queued frames to the connection and keeps the ping heartbeat.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel.
// Returns false when the write pump should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing frame")
		return false
	}

	return true
}

// writePingMessage sends a periodic Ping to maintain the connection heartbeat.
// Returns false when the write pump should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
