package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"contact-importer/internal/contact"
)

// Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Postgres implements ContactStore and ErrorLog on a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// CreateContact inserts one contact. The unique index on
// (email, user_id) is the source of truth for duplicate detection;
// its violation comes back as a conflict field error.
func (s *Postgres) CreateContact(ctx context.Context, c *contact.Contact) error {
	const q = `
		INSERT INTO contacts
			(name, email, birth_date, phone, address, credit_card, franchise, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id`

	err := s.pool.QueryRow(ctx, q,
		c.Name, c.Email, c.BirthDate, c.Phone, c.Address, c.CreditCard, c.Franchise, c.OwnerID,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return contact.Conflict(contact.FieldEmail)
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// Append writes one error-log entry with the raw row data as JSONB.
func (s *Postgres) Append(ctx context.Context, data map[string]string, message string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal error-log data: %w", err)
	}

	const q = `
		INSERT INTO error_logs (data, message, created_at, updated_at)
		VALUES ($1, $2, now(), now())`

	if _, err := s.pool.Exec(ctx, q, payload, message); err != nil {
		return fmt.Errorf("insert error log: %w", err)
	}
	return nil
}

// Migrate creates the schema if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			email       TEXT NOT NULL,
			birth_date  DATE NOT NULL,
			phone       TEXT NOT NULL,
			address     TEXT NOT NULL,
			credit_card TEXT NOT NULL,
			franchise   TEXT NOT NULL,
			user_id     UUID NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_email_user
			ON contacts (email, user_id)`,
		`CREATE TABLE IF NOT EXISTS error_logs (
			id         BIGSERIAL PRIMARY KEY,
			data       JSONB,
			message    TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
