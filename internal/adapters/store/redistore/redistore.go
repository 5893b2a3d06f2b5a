// Package redistore keeps the contact book as one serialized document
// under a single redis key, preserving the whole-blob load/save
// contract of the file store.
package redistore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"assistant/internal/domain/contact"
)

const defaultKey = "assistant:contacts"

type Store struct {
	rdb *redis.Client
	key string
}

func New(rdb *redis.Client, key string) *Store {
	if key == "" {
		key = defaultKey
	}
	return &Store{rdb: rdb, key: key}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redistore: ping: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (map[string]contact.Record, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]contact.Record{}, nil
		}
		return nil, fmt.Errorf("redistore: get %s: %w", s.key, err)
	}

	var records map[string]contact.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("redistore: decode %s: %w", s.key, err)
	}
	if records == nil {
		records = map[string]contact.Record{}
	}
	return records, nil
}

func (s *Store) Save(ctx context.Context, records map[string]contact.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("redistore: encode: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redistore: set %s: %w", s.key, err)
	}
	return nil
}
