package actor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by single-record lookups when no directory entry matches.
var ErrNotFound = errors.New("actor not found")

// Directory resolves participant records across both kinds.
type Directory interface {
	// UserByID fetches a single user record. Returns ErrNotFound if absent.
	UserByID(ctx context.Context, id string) (Summary, error)

	// TrainerByID fetches a single trainer record. Returns ErrNotFound if absent.
	TrainerByID(ctx context.Context, id string) (Summary, error)

	// UsersByIDs fetches every user whose id appears in ids. Unknown ids are skipped.
	UsersByIDs(ctx context.Context, ids []string) ([]Summary, error)

	// TrainersByIDs fetches every trainer whose id appears in ids. Unknown ids are skipped.
	TrainersByIDs(ctx context.Context, ids []string) ([]Summary, error)

	// Search scans both directories for a case-insensitive substring match
	// against name or email. The caller is not excluded here; see Search service.
	Search(ctx context.Context, query string) ([]Summary, error)
}

// PGDirectory is the PostgreSQL-backed Directory implementation.
type PGDirectory struct {
	pool *pgxpool.Pool
}

// NewPGDirectory returns a Directory backed by the given connection pool.
func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

func (d *PGDirectory) UserByID(ctx context.Context, id string) (Summary, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id::text, name, email, COALESCE(avatar_key, '')
		 FROM users WHERE id = $1::uuid`, id)

	s := Summary{Kind: KindUser}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.AvatarKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, fmt.Errorf("user lookup failed: %w", err)
	}
	return s, nil
}

func (d *PGDirectory) TrainerByID(ctx context.Context, id string) (Summary, error) {
	row := d.pool.QueryRow(ctx,
		`SELECT id::text, name, email, COALESCE(specialization, ''), COALESCE(avatar_key, '')
		 FROM trainers WHERE id = $1::uuid`, id)

	s := Summary{Kind: KindTrainer}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.AvatarKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, fmt.Errorf("trainer lookup failed: %w", err)
	}
	return s, nil
}

func (d *PGDirectory) UsersByIDs(ctx context.Context, ids []string) ([]Summary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx,
		`SELECT id::text, name, email, COALESCE(avatar_key, '')
		 FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("users batch lookup failed: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		s := Summary{Kind: KindUser}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.AvatarKey); err != nil {
			return nil, fmt.Errorf("users batch scan failed: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (d *PGDirectory) TrainersByIDs(ctx context.Context, ids []string) ([]Summary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx,
		`SELECT id::text, name, email, COALESCE(specialization, ''), COALESCE(avatar_key, '')
		 FROM trainers WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("trainers batch lookup failed: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		s := Summary{Kind: KindTrainer}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.AvatarKey); err != nil {
			return nil, fmt.Errorf("trainers batch scan failed: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Search runs the substring scan in SQL so both directories are covered in one round trip.
func (d *PGDirectory) Search(ctx context.Context, query string) ([]Summary, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id::text, name, email, 'user', '', COALESCE(avatar_key, '')
		 FROM users
		 WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		 UNION ALL
		 SELECT id::text, name, email, 'trainer', COALESCE(specialization, ''), COALESCE(avatar_key, '')
		 FROM trainers
		 WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'`, query)
	if err != nil {
		return nil, fmt.Errorf("directory search failed: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var s Summary
		var kind string
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &kind, &s.Role, &s.AvatarKey); err != nil {
			return nil, fmt.Errorf("directory search scan failed: %w", err)
		}
		s.Kind = Kind(kind)
		result = append(result, s)
	}
	return result, rows.Err()
}
