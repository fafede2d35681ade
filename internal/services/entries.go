// Package services orchestrates entry use cases on top of the store and the
// change-event bus.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/api/validate"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/dates"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/events"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/stats"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/store"
)

// EntryService validates requests, persists them, and publishes one change
// event per committed mutation.
type EntryService struct {
	store store.Store
	bus   *events.Bus
	log   zerolog.Logger
}

func NewEntryService(s store.Store, bus *events.Bus, log zerolog.Logger) *EntryService {
	return &EntryService{store: s, bus: bus, log: log}
}

func (s *EntryService) CreateEntry(ctx context.Context, ins model.EntryInsert) (*model.Entry, error) {
	if err := validate.EntryInsert(ins); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, err)
	}
	date := ins.Date
	if date == "" {
		date = dates.TodayISO()
	}

	created, err := s.store.Entries().Create(ctx, &model.Entry{
		OwnerID:     ins.OwnerID,
		Date:        date,
		Location:    ins.Location,
		TotalAmount: ins.TotalAmount,
		PartySize:   ins.PartySize,
		Notes:       ins.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.publish(model.ChangeEvent{Kind: model.ChangeInserted, Entry: created, EntryID: created.ID})
	return created, nil
}

func (s *EntryService) GetEntry(ctx context.Context, ownerID, entryID string) (*model.Entry, error) {
	return s.store.Entries().GetByID(ctx, ownerID, entryID)
}

func (s *EntryService) ListEntries(ctx context.Context, ownerID string) ([]*model.Entry, error) {
	return s.store.Entries().ListByOwner(ctx, ownerID)
}

func (s *EntryService) UpdateEntry(ctx context.Context, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error) {
	if err := validate.EntryPatch(patch); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, err)
	}

	updated, err := s.store.Entries().Update(ctx, ownerID, entryID, patch)
	if err != nil {
		return nil, err
	}
	s.publish(model.ChangeEvent{Kind: model.ChangeUpdated, Entry: updated, EntryID: updated.ID})
	return updated, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	if err := s.store.Entries().Delete(ctx, ownerID, entryID); err != nil {
		return err
	}
	s.publish(model.ChangeEvent{Kind: model.ChangeDeleted, EntryID: entryID})
	return nil
}

// Stats filters the owner's entries to the reporting period and aggregates
// them.
func (s *EntryService) Stats(ctx context.Context, ownerID string, period dates.Period) (model.PeriodStats, []model.LocationStats, error) {
	if !period.Valid() {
		return model.PeriodStats{}, nil, fmt.Errorf("%w: unknown period %q", model.ErrValidation, period)
	}

	all, err := s.store.Entries().ListByOwner(ctx, ownerID)
	if err != nil {
		return model.PeriodStats{}, nil, err
	}

	start, end := dates.Range(period, time.Now())
	var in []model.Entry
	for _, e := range all {
		d, err := dates.ParseISO(e.Date)
		if err != nil {
			s.log.Warn().Str("entryId", e.ID).Str("date", e.Date).Msg("skipping entry with unparseable date")
			continue
		}
		if dates.InRange(d, start, end) {
			in = append(in, *e)
		}
	}
	return stats.ForPeriod(in), stats.ByLocation(in), nil
}

// publish is best effort; a saturated subscriber misses the event and
// resyncs on its own.
func (s *EntryService) publish(evt model.ChangeEvent) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(evt)
}
