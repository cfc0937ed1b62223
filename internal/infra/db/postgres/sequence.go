package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const sequenceName = "quote"

// Sequence is the quote counter backed by a single row per sequence name.
type Sequence struct {
	db *DB
}

func NewSequence(ctx context.Context, db *DB) (*Sequence, error) {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS quote_sequences (
			name       text PRIMARY KEY,
			value      bigint NOT NULL CHECK (value >= 0),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("migrate quote_sequences: %w", err)
	}
	return &Sequence{db: db}, nil
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO quote_sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE
		SET value = quote_sequences.value + 1, updated_at = now()
		RETURNING value`, sequenceName).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}

func (s *Sequence) Current(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.Pool.QueryRow(ctx, `SELECT value FROM quote_sequences WHERE name = $1`, sequenceName).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current sequence: %w", err)
	}
	return n, nil
}
