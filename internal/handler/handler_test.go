package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"fitchat/internal/app/actor"
	"fitchat/internal/app/conversation"
	"fitchat/internal/app/delivery"
	"fitchat/internal/app/message"
	"fitchat/internal/configs"
	"fitchat/internal/pkg/auth/jwt"
	"fitchat/internal/pkg/resp"
)

const testJWTSecret = "handler-test-secret"

// Fixed UUIDs for the test cast. Alice and Bob are users, Coach is a trainer.
const (
	aliceID = "11111111-1111-4111-8111-111111111111"
	bobID   = "22222222-2222-4222-8222-222222222222"
	coachID = "33333333-3333-4333-8333-333333333333"
)

var (
	aliceRef = actor.Ref{Kind: actor.KindUser, ID: aliceID}
	bobRef   = actor.Ref{Kind: actor.KindUser, ID: bobID}
	coachRef = actor.Ref{Kind: actor.KindTrainer, ID: coachID}
)

// memStore is an in-memory message.Store with the same contract as the
// PostgreSQL implementation: validated append, symmetric thread lookup,
// distinct correspondent ids.
type memStore struct {
	mu       sync.Mutex
	messages []message.Message
	failSend bool
	seq      int
}

func (s *memStore) Send(ctx context.Context, sender, receiver actor.Ref, body string) (message.Message, error) {
	if customErr := message.ValidateSend(sender, receiver, body); customErr != nil {
		return message.Message{}, customErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSend {
		return message.Message{}, errors.New("simulated storage failure")
	}

	s.seq++
	msg := message.Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Receiver:  receiver,
		Body:      body,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *memStore) FetchThread(ctx context.Context, caller actor.Ref, otherID string) ([]message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := make([]message.Message, 0)
	for _, m := range s.messages {
		betweenPair := (m.Sender.ID == caller.ID && m.Receiver.ID == otherID) ||
			(m.Sender.ID == otherID && m.Receiver.ID == caller.ID)
		if betweenPair {
			thread = append(thread, m)
		}
	}
	return thread, nil
}

func (s *memStore) CorrespondentIDs(ctx context.Context, caller actor.Ref) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var ids []string
	for _, m := range s.messages {
		var other string
		switch caller.ID {
		case m.Sender.ID:
			other = m.Receiver.ID
		case m.Receiver.ID:
			other = m.Sender.ID
		default:
			continue
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			ids = append(ids, other)
		}
	}
	return ids, nil
}

// stubDirectory resolves ids against fixed user and trainer sets and serves
// canned search results.
type stubDirectory struct {
	users         map[string]actor.Summary
	trainers      map[string]actor.Summary
	searchResults []actor.Summary
}

func (d *stubDirectory) UserByID(ctx context.Context, id string) (actor.Summary, error) {
	if s, ok := d.users[id]; ok {
		return s, nil
	}
	return actor.Summary{}, actor.ErrNotFound
}

func (d *stubDirectory) TrainerByID(ctx context.Context, id string) (actor.Summary, error) {
	if s, ok := d.trainers[id]; ok {
		return s, nil
	}
	return actor.Summary{}, actor.ErrNotFound
}

func (d *stubDirectory) UsersByIDs(ctx context.Context, ids []string) ([]actor.Summary, error) {
	var result []actor.Summary
	for _, id := range ids {
		if s, ok := d.users[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

func (d *stubDirectory) TrainersByIDs(ctx context.Context, ids []string) ([]actor.Summary, error) {
	var result []actor.Summary
	for _, id := range ids {
		if s, ok := d.trainers[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

func (d *stubDirectory) Search(ctx context.Context, query string) ([]actor.Summary, error) {
	return d.searchResults, nil
}

// stubRoster serves a fixed trainer/client assignment.
type stubRoster struct {
	clients map[string][]actor.Summary
	trainer map[string]*actor.Summary
}

func (r *stubRoster) ClientsOf(ctx context.Context, trainerID string) ([]actor.Summary, error) {
	return r.clients[trainerID], nil
}

func (r *stubRoster) TrainerOf(ctx context.Context, userID string) (*actor.Summary, error) {
	return r.trainer[userID], nil
}

// stubStorage presigns deterministic fake URLs.
type stubStorage struct {
	fail bool
}

func (s *stubStorage) PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error) {
	if s.fail {
		return "", errors.New("simulated storage outage")
	}
	return "https://storage.test/upload/" + key, nil
}

func (s *stubStorage) PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error) {
	if s.fail {
		return "", errors.New("simulated storage outage")
	}
	return "https://storage.test/download/" + key, nil
}

// testEnv bundles the fakes behind a fully wired HTTP handler.
type testEnv struct {
	deps    *Deps
	handler http.Handler
	store   *memStore
	dir     *stubDirectory
	roster  *stubRoster
	storage *stubStorage
}

func newTestEnv() *testEnv {
	store := &memStore{}
	dir := &stubDirectory{
		users: map[string]actor.Summary{
			aliceID: {ID: aliceID, Name: "Alice", Email: "alice@x.com", Kind: actor.KindUser},
			bobID:   {ID: bobID, Name: "Bob", Email: "bob@x.com", Kind: actor.KindUser},
		},
		trainers: map[string]actor.Summary{
			coachID: {ID: coachID, Name: "Coach", Email: "coach@gym.com", Kind: actor.KindTrainer, Role: "strength"},
		},
	}
	roster := &stubRoster{
		clients: map[string][]actor.Summary{},
		trainer: map[string]*actor.Summary{},
	}
	storageStub := &stubStorage{}

	deps := &Deps{
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
			JWTSecret:      testJWTSecret,
		},
		Store:      store,
		Directory:  dir,
		Aggregator: conversation.NewAggregator(store, dir, roster),
		Search:     actor.NewSearch(dir),
		Router:     delivery.NewRouter(),
		Storage:    storageStub,
	}

	return &testEnv{
		deps:    deps,
		handler: Router(deps),
		store:   store,
		dir:     dir,
		roster:  roster,
		storage: storageStub,
	}
}

// authToken mints a signed token for the given actor.
func authToken(t *testing.T, ref actor.Ref) string {
	t.Helper()

	token, err := jwt.GenerateToken(&jwt.Payload{
		ID:        ref.ID,
		ActorKind: string(ref.Kind),
	}, testJWTSecret, jwt.IdentityExpiration)
	require.NoError(t, err)
	return token
}

// doRequest performs a request against the wired router and records the response.
func (e *testEnv) doRequest(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, target, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)
	return w
}

// decodeError unmarshals the unified error envelope.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) resp.ErrorResponse {
	t.Helper()

	var envelope resp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestHealthEndpoint(t *testing.T) {
	req := require.New(t)

	env := newTestEnv()
	w := env.doRequest(t, http.MethodGet, "/health", "", nil)

	req.Equal(http.StatusOK, w.Code)

	var body map[string]string
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.Equal("ok", body["status"])
}
