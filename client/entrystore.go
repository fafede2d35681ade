package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/api/validate"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

// remote is the slice of Client the store needs; tests substitute a fake.
type remote interface {
	ListEntries(ctx context.Context, ownerID string) ([]model.Entry, error)
	CreateEntry(ctx context.Context, ownerID string, ins model.EntryInsert) (*model.Entry, error)
	UpdateEntry(ctx context.Context, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error)
	DeleteEntry(ctx context.Context, ownerID, entryID string) error
}

// EntryStore keeps a local mirror of one owner's entries, ordered by date
// descending, and reconciles it against the change feed.
//
// Mutations are optimistic to different degrees: Add and Update touch local
// state only after the service accepts the write; Remove drops the entry
// locally first and does not restore it if the remote delete fails (the feed
// converges the mirror either way). All methods are safe for concurrent use.
type EntryStore struct {
	mu      sync.Mutex
	remote  remote
	ownerID string
	log     zerolog.Logger

	entries []model.Entry
	loading bool
	err     error
}

// NewEntryStore builds a store for one owner on top of a Client. Call Load
// before reading.
func NewEntryStore(c *Client, ownerID string, log zerolog.Logger) *EntryStore {
	return newEntryStore(c, ownerID, log)
}

func newEntryStore(r remote, ownerID string, log zerolog.Logger) *EntryStore {
	return &EntryStore{remote: r, ownerID: ownerID, log: log}
}

// Load replaces the mirror with the server's current state. On failure the
// previous entries are kept and the error is retained for Err.
func (s *EntryStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	entries, err := s.remote.ListEntries(ctx, s.ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	s.entries = entries
	return nil
}

// Add validates the insert, sends it to the service, and places the created
// entry into the mirror. Local state is untouched on failure.
func (s *EntryStore) Add(ctx context.Context, ins model.EntryInsert) (*model.Entry, error) {
	ins.OwnerID = s.ownerID
	if err := validate.EntryInsert(ins); err != nil {
		mutationsTotal.WithLabelValues("add", "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, err)
	}

	created, err := s.remote.CreateEntry(ctx, s.ownerID, ins)
	if err != nil {
		mutationsTotal.WithLabelValues("add", "error").Inc()
		return nil, fmt.Errorf("add entry: %w", err)
	}
	mutationsTotal.WithLabelValues("add", "ok").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(*created)
	out := *created
	return &out, nil
}

// Update validates the patch, requires the entry to exist locally, and
// applies the server's authoritative result. Local state is untouched on
// failure.
func (s *EntryStore) Update(ctx context.Context, entryID string, patch model.EntryPatch) (*model.Entry, error) {
	if err := validate.EntryPatch(patch); err != nil {
		mutationsTotal.WithLabelValues("update", "rejected").Inc()
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, err)
	}

	s.mu.Lock()
	if s.indexOfLocked(entryID) < 0 {
		s.mu.Unlock()
		mutationsTotal.WithLabelValues("update", "rejected").Inc()
		return nil, fmt.Errorf("update entry %s: %w", entryID, model.ErrNotFound)
	}
	s.mu.Unlock()

	updated, err := s.remote.UpdateEntry(ctx, s.ownerID, entryID, patch)
	if err != nil {
		mutationsTotal.WithLabelValues("update", "error").Inc()
		return nil, fmt.Errorf("update entry %s: %w", entryID, err)
	}
	mutationsTotal.WithLabelValues("update", "ok").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(*updated)
	out := *updated
	return &out, nil
}

// Remove deletes the entry locally first, then remotely. A remote failure is
// reported but the local removal stands; the change feed restores the entry
// if the delete never committed.
func (s *EntryStore) Remove(ctx context.Context, entryID string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(entryID)
	if idx < 0 {
		s.mu.Unlock()
		mutationsTotal.WithLabelValues("remove", "rejected").Inc()
		return fmt.Errorf("remove entry %s: %w", entryID, model.ErrNotFound)
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.mu.Unlock()

	if err := s.remote.DeleteEntry(ctx, s.ownerID, entryID); err != nil {
		mutationsTotal.WithLabelValues("remove", "error").Inc()
		s.log.Error().Err(err).Str("entryId", entryID).Msg("remote delete failed after local removal")
		return fmt.Errorf("delete entry %s: %w", entryID, err)
	}
	mutationsTotal.WithLabelValues("remove", "ok").Inc()
	return nil
}

// ApplyRemoteChange folds one change-feed event into the mirror. It is
// idempotent: replaying or reordering events cannot duplicate an entry.
// Events for other owners and deletes for unknown ids are no-ops. An updated
// event for an id the mirror has never seen inserts the entry, healing a
// missed insert.
func (s *EntryStore) ApplyRemoteChange(evt model.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch evt.Kind {
	case model.ChangeInserted, model.ChangeUpdated:
		if evt.Entry == nil {
			feedEventsSkippedTotal.Inc()
			s.log.Warn().Str("kind", string(evt.Kind)).Str("entryId", evt.EntryID).Msg("change event without entry payload")
			return
		}
		if evt.Entry.OwnerID != s.ownerID {
			return
		}
		s.upsertLocked(*evt.Entry)
	case model.ChangeDeleted:
		if idx := s.indexOfLocked(evt.EntryID); idx >= 0 {
			s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		}
	default:
		feedEventsSkippedTotal.Inc()
		s.log.Warn().Str("kind", string(evt.Kind)).Msg("unknown change event kind")
		return
	}
	feedEventsAppliedTotal.WithLabelValues(string(evt.Kind)).Inc()
}

// Entries returns a copy of the mirror, date-descending.
func (s *EntryStore) Entries() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id, if present.
func (s *EntryStore) Get(entryID string) (*model.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOfLocked(entryID); idx >= 0 {
		e := s.entries[idx]
		return &e, true
	}
	return nil, false
}

// Loading reports whether a Load is in flight.
func (s *EntryStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error from the most recent Load, if any.
func (s *EntryStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// upsertLocked replaces the entry in place when the id is known and its date
// is unchanged; otherwise it removes any stale copy and inserts at the sort
// position for its date, ahead of entries already carrying that date.
func (s *EntryStore) upsertLocked(e model.Entry) {
	if idx := s.indexOfLocked(e.ID); idx >= 0 {
		if s.entries[idx].Date == e.Date {
			s.entries[idx] = e
			return
		}
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	}
	pos := 0
	for pos < len(s.entries) && s.entries[pos].Date > e.Date {
		pos++
	}
	s.entries = append(s.entries, model.Entry{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = e
}

func (s *EntryStore) indexOfLocked(entryID string) int {
	for i := range s.entries {
		if s.entries[i].ID == entryID {
			return i
		}
	}
	return -1
}
