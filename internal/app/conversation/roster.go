package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitchat/internal/app/actor"
)

// Roster exposes the trainer/client assignment maintained by the external
// client-management service. Read-only from this subsystem's perspective.
type Roster interface {
	// ClientsOf returns every user currently assigned to the given trainer.
	ClientsOf(ctx context.Context, trainerID string) ([]actor.Summary, error)

	// TrainerOf returns the trainer assigned to the given user, or nil if the
	// user has no assigned trainer.
	TrainerOf(ctx context.Context, userID string) (*actor.Summary, error)
}

// PGRoster reads the assignment from the users.trainer_id column.
type PGRoster struct {
	pool *pgxpool.Pool
}

// NewPGRoster returns a Roster backed by the given connection pool.
func NewPGRoster(pool *pgxpool.Pool) *PGRoster {
	return &PGRoster{pool: pool}
}

func (r *PGRoster) ClientsOf(ctx context.Context, trainerID string) ([]actor.Summary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, email, COALESCE(avatar_key, '')
		 FROM users WHERE trainer_id = $1::uuid`, trainerID)
	if err != nil {
		return nil, fmt.Errorf("clients lookup failed: %w", err)
	}
	defer rows.Close()

	var clients []actor.Summary
	for rows.Next() {
		s := actor.Summary{Kind: actor.KindUser}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.AvatarKey); err != nil {
			return nil, fmt.Errorf("clients scan failed: %w", err)
		}
		clients = append(clients, s)
	}
	return clients, rows.Err()
}

func (r *PGRoster) TrainerOf(ctx context.Context, userID string) (*actor.Summary, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT t.id::text, t.name, t.email, COALESCE(t.specialization, ''), COALESCE(t.avatar_key, '')
		 FROM trainers t
		 JOIN users u ON u.trainer_id = t.id
		 WHERE u.id = $1::uuid`, userID)

	s := actor.Summary{Kind: actor.KindTrainer}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.AvatarKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("trainer lookup failed: %w", err)
	}
	return &s, nil
}
