package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitchat/internal/app/actor"
)

// Store is the persistence port for the message log.
type Store interface {
	// Send appends a new message and returns the persisted record,
	// including its server-assigned id and timestamp.
	Send(ctx context.Context, sender, receiver actor.Ref, body string) (Message, error)

	// FetchThread returns every message between caller and otherID, in either
	// direction, ordered ascending by creation time. An unknown otherID yields
	// an empty result, not an error.
	FetchThread(ctx context.Context, caller actor.Ref, otherID string) ([]Message, error)

	// CorrespondentIDs returns the distinct ids of every actor the caller has
	// exchanged messages with, regardless of kind.
	CorrespondentIDs(ctx context.Context, caller actor.Ref) ([]string, error)
}

// PGStore is the PostgreSQL-backed Store implementation.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a Store backed by the given connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Send(ctx context.Context, sender, receiver actor.Ref, body string) (Message, error) {
	if customErr := ValidateSend(sender, receiver, body); customErr != nil {
		return Message{}, customErr
	}

	msg := Message{
		ID:       uuid.New().String(),
		Sender:   sender,
		Receiver: receiver,
		Body:     body,
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO messages (id, sender_id, sender_kind, receiver_id, receiver_kind, body)
		 VALUES ($1::uuid, $2::uuid, $3, $4::uuid, $5, $6)
		 RETURNING created_at`,
		msg.ID, sender.ID, string(sender.Kind), receiver.ID, string(receiver.Kind), body)

	if err := row.Scan(&msg.CreatedAt); err != nil {
		return Message{}, fmt.Errorf("message insert failed: %w", err)
	}
	return msg, nil
}

// FetchThread queries both directions of the pair; sender and receiver roles are
// not chosen by the caller, so the lookup has to be symmetric.
func (s *PGStore) FetchThread(ctx context.Context, caller actor.Ref, otherID string) ([]Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, sender_id::text, sender_kind, receiver_id::text, receiver_kind, body, created_at
		 FROM messages
		 WHERE (sender_id = $1::uuid AND receiver_id = $2::uuid)
		    OR (sender_id = $2::uuid AND receiver_id = $1::uuid)
		 ORDER BY created_at ASC`,
		caller.ID, otherID)
	if err != nil {
		return nil, fmt.Errorf("thread query failed: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		var senderKind, receiverKind string
		err := rows.Scan(&m.ID, &m.Sender.ID, &senderKind, &m.Receiver.ID, &receiverKind, &m.Body, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("thread scan failed: %w", err)
		}
		m.Sender.Kind = actor.Kind(senderKind)
		m.Receiver.Kind = actor.Kind(receiverKind)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *PGStore) CorrespondentIDs(ctx context.Context, caller actor.Ref) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT CASE WHEN sender_id = $1::uuid THEN receiver_id::text ELSE sender_id::text END
		 FROM messages
		 WHERE sender_id = $1::uuid OR receiver_id = $1::uuid`,
		caller.ID)
	if err != nil {
		return nil, fmt.Errorf("correspondent query failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("correspondent scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
