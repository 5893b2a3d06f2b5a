// Package pgstore persists contact records in postgres, one row per
// record with the record body as jsonb. Save rewrites the whole table
// in a transaction, keeping the blob-store full-rewrite contract.
package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"assistant/internal/domain/contact"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("pgstore: ping: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (map[string]contact.Record, error) {
	const q = `SELECT key, record FROM contacts`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("pgstore: query: %w", err)
	}
	defer rows.Close()

	records := make(map[string]contact.Record)
	for rows.Next() {
		var (
			key  string
			body []byte
		)
		if err := rows.Scan(&key, &body); err != nil {
			return nil, fmt.Errorf("pgstore: scan: %w", err)
		}
		var r contact.Record
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, fmt.Errorf("pgstore: decode record %q: %w", key, err)
		}
		records[key] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: rows: %w", err)
	}
	return records, nil
}

func (s *Store) Save(ctx context.Context, records map[string]contact.Record) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("pgstore: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("pgstore: clear: %w", err)
	}

	const q = `INSERT INTO contacts (key, record) VALUES ($1, $2)`
	for key, r := range records {
		body, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("pgstore: encode record %q: %w", key, err)
		}
		if _, err := tx.Exec(ctx, q, key, body); err != nil {
			return fmt.Errorf("pgstore: insert %q: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgstore: commit: %w", err)
	}
	return nil
}
