// Package file stores state documents as JSON files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/schema"
)

const ext = ".json"

// Store implements ports.StateStore using the local filesystem.
// Each key is one JSON file in BasePath, named key+".json" unless Verbatim
// is set, in which case the key is the file name itself.
type Store struct {
	BasePath string
	Pretty   bool
	Verbatim bool
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to the directory of domain.DefaultStatePath.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Dir(domain.DefaultStatePath)
	}
	return &Store{BasePath: basePath, Pretty: true}
}

// ForPath returns a verbatim Store and the key that address exactly path.
func ForPath(path string) (*Store, string) {
	s := New(filepath.Dir(path))
	s.Verbatim = true
	return s, filepath.Base(path)
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	if s.Verbatim {
		return filepath.Join(s.BasePath, key)
	}
	return filepath.Join(s.BasePath, key+ext)
}

// Save persists the state atomically.
func (s *Store) Save(ctx context.Context, key string, state *domain.State) error {
	if key == "" {
		return fmt.Errorf("state key cannot be empty")
	}

	data, err := schema.EncodeState(state, s.Pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return WriteAtomic(s.Path(key), data)
}

// Load reads and validates the state file.
func (s *Store) Load(ctx context.Context, key string) (*domain.State, error) {
	if key == "" {
		return nil, fmt.Errorf("state key cannot be empty")
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrStateNotFound, s.Path(key))
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state, err := schema.DecodeState(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(key), err)
	}
	return state, nil
}

// Delete removes the state file.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("state key cannot be empty")
	}

	err := os.Remove(s.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}

	return nil
}

// List returns the keys of all state files in BasePath.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		if s.Verbatim {
			keys = append(keys, name)
			continue
		}
		if filepath.Ext(name) != ext {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	sort.Strings(keys)
	return keys, nil
}
