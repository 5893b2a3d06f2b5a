// Package filestore persists the contact book as a single JSON document
// on disk, mirroring the classic contacts.json layout.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"assistant/internal/domain/contact"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Ping checks the document is reachable. A missing file is fine, a
// fresh store starts empty.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: stat %s: %w", s.path, err)
	}
	return nil
}

// Load reads the whole document. A missing file is an empty book, not
// an error; a corrupt file is.
func (s *Store) Load(ctx context.Context) (map[string]contact.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]contact.Record{}, nil
		}
		return nil, fmt.Errorf("filestore: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return map[string]contact.Record{}, nil
	}

	var records map[string]contact.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("filestore: decode %s: %w", s.path, err)
	}
	if records == nil {
		records = map[string]contact.Record{}
	}
	return records, nil
}

// Save rewrites the whole document atomically: write to a temp file in
// the same directory, then rename over the target.
func (s *Store) Save(ctx context.Context, records map[string]contact.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("filestore: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("filestore: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: rename to %s: %w", s.path, err)
	}
	return nil
}
