package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
)

const defaultFilePath = "storefront.json"

// fileStore keeps every entry in one JSON document. Each write rewrites the
// document through a temporary file and a rename.
type fileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewFileStore opens (or creates) the JSON document at path.
func NewFileStore(path string) (repository.KVStore, error) {
	if path == "" {
		path = defaultFilePath
	}

	s := &fileStore{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read store file %s", path)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, errors.Wrapf(err, "store file %s is corrupt", path)
		}
	}

	return s, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.entries[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return value, nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[key]
	s.entries[key] = value

	if err := s.flush(); err != nil {
		if existed {
			s.entries[key] = previous
		} else {
			delete(s.entries, key)
		}

		return err
	}

	return nil
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[key]
	if !existed {
		return nil
	}
	delete(s.entries, key)

	if err := s.flush(); err != nil {
		s.entries[key] = previous

		return err
	}

	return nil
}

func (s *fileStore) Close() error {
	return nil
}

// flush writes the document. The caller must hold s.mu.
func (s *fileStore) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode store file")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp store file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to write temp store file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to sync temp store file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp store file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", s.path)
	}

	return nil
}
