package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	// GetRole returns exactly one role value for the user. A missing
	// profile is ErrNotFound so callers can fail closed.
	GetRole(ctx context.Context, userID string) (string, error)
	Upsert(ctx context.Context, p *Profile) error
	List(ctx context.Context) ([]Profile, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(address, ''), role, created_at
		FROM profiles WHERE id = $1
	`, userID).Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Address, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return &p, nil
}

func (r *repo) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM profiles WHERE id = $1`, userID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("select role: %w", err)
	}
	return role, nil
}

// Upsert writes the customer-editable fields. The role column is
// deliberately left out: self-service updates must not escalate it.
func (r *repo) Upsert(ctx context.Context, p *Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, full_name, phone, address, role, created_at)
		VALUES ($1, $2, $3, $4, $5, 'customer', $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address
	`, p.ID, p.Email, p.FullName, p.Phone, p.Address, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(address, ''), role, created_at
		FROM profiles ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Address, &p.Role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
