package ports

import (
	"context"

	"github.com/aretw0/figspec/pkg/domain"
)

// StateStore persists state documents under a key.
// A key names one indexed design, e.g. the base name of a state file.
type StateStore interface {
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, state *domain.State) error

	// Load retrieves the document stored under key.
	// Returns domain.ErrStateNotFound if nothing is stored there.
	Load(ctx context.Context, key string) (*domain.State, error)

	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys.
	List(ctx context.Context) ([]string, error)
}
