package store

import (
	"context"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Entries() Entries
}

// Entries is the persistence surface for meal entries. Adapters assign the
// entry id and timestamps on Create, recompute the per-person cost on every
// write, and return model.ErrNotFound for missing rows.
type Entries interface {
	Create(ctx context.Context, e *model.Entry) (*model.Entry, error)
	GetByID(ctx context.Context, ownerID, entryID string) (*model.Entry, error)
	// ListByOwner returns the owner's entries ordered by date descending,
	// most recently created first within a date.
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Entry, error)
	Update(ctx context.Context, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error)
	Delete(ctx context.Context, ownerID, entryID string) error
}
