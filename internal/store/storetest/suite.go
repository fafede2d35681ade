// Package storetest holds a conformance suite shared by store adapters.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	ownerID := "owner-" + uuid.New().String()

	// Create assigns id, timestamps and the per-person figure.
	e1, err := s.Entries().Create(ctx, &model.Entry{
		OwnerID:     ownerID,
		Date:        "2024-03-10",
		Location:    "Bait Al Mandi",
		TotalAmount: 1000,
		PartySize:   3,
	})
	if err != nil {
		t.Fatalf("Create e1: %v", err)
	}
	if e1.ID == "" {
		t.Fatal("Create: empty entry id")
	}
	if e1.PerPersonCost != 333.33 {
		t.Fatalf("Create: perPersonCost = %v, want 333.33", e1.PerPersonCost)
	}
	if e1.CreatedAt.IsZero() || e1.UpdatedAt.IsZero() {
		t.Fatal("Create: timestamps not assigned")
	}

	e2, err := s.Entries().Create(ctx, &model.Entry{
		OwnerID:     ownerID,
		Date:        "2024-03-12",
		Location:    "Mandi Mahal",
		TotalAmount: 600,
		PartySize:   2,
	})
	if err != nil {
		t.Fatalf("Create e2: %v", err)
	}
	e3, err := s.Entries().Create(ctx, &model.Entry{
		OwnerID:     ownerID,
		Date:        "2024-03-10",
		Location:    "Zam Zam",
		TotalAmount: 450,
		PartySize:   1,
	})
	if err != nil {
		t.Fatalf("Create e3: %v", err)
	}

	// GetByID round trip.
	got, err := s.Entries().GetByID(ctx, ownerID, e1.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Location != "Bait Al Mandi" || got.TotalAmount != 1000 {
		t.Fatalf("GetByID: got %+v", got)
	}

	// ListByOwner: date descending, newest insert first within a date.
	lst, err := s.Entries().ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(lst) != 3 {
		t.Fatalf("ListByOwner: n=%d, want 3", len(lst))
	}
	wantOrder := []string{e2.ID, e3.ID, e1.ID}
	for i, want := range wantOrder {
		if lst[i].ID != want {
			t.Fatalf("ListByOwner order[%d] = %s (date %s), want %s", i, lst[i].ID, lst[i].Date, want)
		}
	}

	// Owner isolation.
	other, err := s.Entries().ListByOwner(ctx, "owner-"+uuid.New().String())
	if err != nil {
		t.Fatalf("ListByOwner other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("ListByOwner other: n=%d, want 0", len(other))
	}

	// Update patches only the supplied fields and recomputes per-person cost.
	amount := 900.0
	people := 4
	upd, err := s.Entries().Update(ctx, ownerID, e1.ID, model.EntryPatch{
		TotalAmount: &amount,
		PartySize:   &people,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Location != "Bait Al Mandi" {
		t.Fatalf("Update: location clobbered to %q", upd.Location)
	}
	if upd.TotalAmount != 900 || upd.PartySize != 4 || upd.PerPersonCost != 225 {
		t.Fatalf("Update: got %+v", upd)
	}
	if !upd.UpdatedAt.After(e1.UpdatedAt) && !upd.UpdatedAt.Equal(e1.UpdatedAt) {
		t.Fatalf("Update: updatedAt regressed: %v -> %v", e1.UpdatedAt, upd.UpdatedAt)
	}

	// Not-found mapping.
	if _, err := s.Entries().GetByID(ctx, ownerID, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByID missing: err=%v, want ErrNotFound", err)
	}
	if _, err := s.Entries().Update(ctx, ownerID, uuid.New().String(), model.EntryPatch{Location: &e2.Location}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Update missing: err=%v, want ErrNotFound", err)
	}
	if err := s.Entries().Delete(ctx, ownerID, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Delete missing: err=%v, want ErrNotFound", err)
	}

	// Delete removes the row.
	if err := s.Entries().Delete(ctx, ownerID, e3.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Entries().GetByID(ctx, ownerID, e3.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByID after Delete: err=%v, want ErrNotFound", err)
	}
	lst, err = s.Entries().ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner after Delete: %v", err)
	}
	if len(lst) != 2 {
		t.Fatalf("ListByOwner after Delete: n=%d, want 2", len(lst))
	}
}
