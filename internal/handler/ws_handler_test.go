package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"fitchat/internal/app/delivery"
	"fitchat/internal/app/message"
)

func wsURL(server *httptest.Server, token string) string {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func TestWebSocketRequiresToken(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	server := httptest.NewServer(env.handler)
	defer server.Close()

	_, response, err := websocket.DefaultDialer.Dial(wsURL(server, ""), nil)
	req.Error(err)
	req.Equal(http.StatusUnauthorized, response.StatusCode)
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	server := httptest.NewServer(env.handler)
	defer server.Close()

	_, response, err := websocket.DefaultDialer.Dial(wsURL(server, "not.a.token"), nil)
	req.Error(err)
	req.Equal(http.StatusUnauthorized, response.StatusCode)
}

func TestWebSocketJoinAndReceive(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	server := httptest.NewServer(env.handler)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, authToken(t, coachRef)), nil)
	req.NoError(err)
	defer conn.Close()

	req.NoError(conn.WriteJSON(delivery.InboundEvent{
		Type:    delivery.EventJoinRoom,
		Payload: json.RawMessage(`{"id":"` + coachID + `"}`),
	}))

	// The join frame is processed asynchronously by the read pump.
	req.Eventually(func() bool {
		return env.deps.Router.RoomSize(coachID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	msg, err := env.store.Send(t.Context(), aliceRef, coachRef, "running late, sorry")
	req.NoError(err)
	req.Equal(1, env.deps.Router.Publish(coachID, msg))

	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	var event struct {
		Type    delivery.EventType `json:"type"`
		Payload message.Message    `json:"payload"`
	}
	req.NoError(conn.ReadJSON(&event))
	req.Equal(delivery.EventReceiveMessage, event.Type)
	req.Equal(msg.ID, event.Payload.ID)
	req.Equal("running late, sorry", event.Payload.Body)
}

func TestWebSocketDisconnectLeavesRoom(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	server := httptest.NewServer(env.handler)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, authToken(t, aliceRef)), nil)
	req.NoError(err)

	req.NoError(conn.WriteJSON(delivery.InboundEvent{
		Type:    delivery.EventJoinRoom,
		Payload: json.RawMessage(`{"id":"` + aliceID + `"}`),
	}))
	req.Eventually(func() bool {
		return env.deps.Router.RoomSize(aliceID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	req.NoError(conn.Close())

	req.Eventually(func() bool {
		return env.deps.Router.RoomSize(aliceID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
