package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fitchat/internal/app/message"
	"fitchat/internal/pkg/errs"
)

func TestSendMessageUnauthenticated(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	w := env.doRequest(t, http.MethodPost, "/messages/send", "", SendMessageInput{
		ReceiverID:   coachID,
		ReceiverKind: "trainer",
		Body:         "hello",
	})

	req.Equal(http.StatusUnauthorized, w.Code)
	req.Equal(errs.ErrUnauthenticated, decodeError(t, w).Code)
}

func TestSendMessagePersistsAndReturnsCreated(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	token := authToken(t, aliceRef)

	w := env.doRequest(t, http.MethodPost, "/messages/send", token, SendMessageInput{
		ReceiverID:   coachID,
		ReceiverKind: "trainer",
		Body:         "can we move Friday to 7?",
	})

	req.Equal(http.StatusCreated, w.Code)

	var msg message.Message
	req.NoError(json.Unmarshal(w.Body.Bytes(), &msg))
	req.NotEmpty(msg.ID)
	req.Equal(aliceRef, msg.Sender)
	req.Equal(coachRef, msg.Receiver)
	req.Equal("can we move Friday to 7?", msg.Body)
	req.False(msg.CreatedAt.IsZero())

	req.Len(env.store.messages, 1)
}

func TestSendMessageValidation(t *testing.T) {
	env := newTestEnv()
	token := authToken(t, aliceRef)

	tests := []struct {
		name       string
		input      SendMessageInput
		wantStatus int
		wantCode   int
	}{
		{
			"unknown receiver kind",
			SendMessageInput{ReceiverID: coachID, ReceiverKind: "ghost", Body: "hi"},
			http.StatusBadRequest, errs.ErrInvalidParams,
		},
		{
			"receiver id not a uuid",
			SendMessageInput{ReceiverID: "not-a-uuid", ReceiverKind: "trainer", Body: "hi"},
			http.StatusBadRequest, errs.ErrInvalidParams,
		},
		{
			"missing body",
			SendMessageInput{ReceiverID: coachID, ReceiverKind: "trainer"},
			http.StatusBadRequest, errs.ErrInvalidParams,
		},
		{
			"message to self",
			SendMessageInput{ReceiverID: aliceID, ReceiverKind: "user", Body: "hi me"},
			http.StatusBadRequest, errs.ErrSelfMessage,
		},
		{
			"body too long",
			SendMessageInput{ReceiverID: coachID, ReceiverKind: "trainer", Body: strings.Repeat("x", message.MaxBodyRunes+1)},
			http.StatusBadRequest, errs.ErrMessageBodyTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			w := env.doRequest(t, http.MethodPost, "/messages/send", token, tt.input)
			req.Equal(tt.wantStatus, w.Code)
			req.Equal(tt.wantCode, decodeError(t, w).Code)
		})
	}

	require.Empty(t, env.store.messages, "rejected sends must not be persisted")
}

func TestSendMessagePersistenceFailure(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	env.store.failSend = true
	token := authToken(t, aliceRef)

	w := env.doRequest(t, http.MethodPost, "/messages/send", token, SendMessageInput{
		ReceiverID:   coachID,
		ReceiverKind: "trainer",
		Body:         "hello",
	})

	req.Equal(http.StatusInternalServerError, w.Code)
	req.Equal(errs.ErrPersistence, decodeError(t, w).Code)
}

func TestFetchThreadMergesBothDirections(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	ctx := t.Context()

	_, err := env.store.Send(ctx, aliceRef, coachRef, "hi coach")
	req.NoError(err)
	_, err = env.store.Send(ctx, coachRef, aliceRef, "hi alice")
	req.NoError(err)
	_, err = env.store.Send(ctx, aliceRef, bobRef, "hi bob")
	req.NoError(err)

	token := authToken(t, aliceRef)
	w := env.doRequest(t, http.MethodGet, "/messages/"+coachID, token, nil)
	req.Equal(http.StatusOK, w.Code)

	var thread []message.Message
	req.NoError(json.Unmarshal(w.Body.Bytes(), &thread))
	req.Len(thread, 2, "the thread with Bob must not leak in")
	req.Equal("hi coach", thread[0].Body)
	req.Equal("hi alice", thread[1].Body)
	req.True(thread[0].CreatedAt.Before(thread[1].CreatedAt))
}

func TestFetchThreadUnknownOtherReturnsEmptyList(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	token := authToken(t, aliceRef)

	w := env.doRequest(t, http.MethodGet, "/messages/99999999-9999-4999-8999-999999999999", token, nil)
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq("[]", w.Body.String())
}

func TestFetchThreadRejectsMalformedID(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	token := authToken(t, aliceRef)

	w := env.doRequest(t, http.MethodGet, "/messages/not-a-uuid", token, nil)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal(errs.ErrInvalidParams, decodeError(t, w).Code)
}
