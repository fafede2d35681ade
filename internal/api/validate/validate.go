// Package validate holds request-level validation helpers shared by the API
// handlers and the entry service.
package validate

import (
	"fmt"
	"math"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/dates"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

const (
	maxLocationLen = 200
	maxNotesLen    = 2000
)

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field, v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// Date requires the YYYY-MM-DD wire form.
func Date(v string) error {
	if v == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := dates.ParseISO(v); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

func Amount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("totalAmount must be a finite number")
	}
	if v <= 0 {
		return fmt.Errorf("totalAmount must be greater than zero")
	}
	return nil
}

func PartySize(n int) error {
	if n < 1 {
		return fmt.Errorf("partySize must be at least 1")
	}
	return nil
}

// EntryInsert checks a create payload. Date may be empty; the service fills
// in today's date.
func EntryInsert(ins model.EntryInsert) error {
	if err := NonEmpty("ownerId", ins.OwnerID); err != nil {
		return err
	}
	if err := NonEmpty("location", ins.Location); err != nil {
		return err
	}
	if err := MaxLen("location", ins.Location, maxLocationLen); err != nil {
		return err
	}
	if err := Amount(ins.TotalAmount); err != nil {
		return err
	}
	if err := PartySize(ins.PartySize); err != nil {
		return err
	}
	if ins.Date != "" {
		if err := Date(ins.Date); err != nil {
			return err
		}
	}
	if ins.Notes != nil {
		if err := MaxLen("notes", *ins.Notes, maxNotesLen); err != nil {
			return err
		}
	}
	return nil
}

// EntryPatch checks a partial update; nil fields are skipped.
func EntryPatch(p model.EntryPatch) error {
	if p.Date != nil {
		if err := Date(*p.Date); err != nil {
			return err
		}
	}
	if p.Location != nil {
		if err := NonEmpty("location", *p.Location); err != nil {
			return err
		}
		if err := MaxLen("location", *p.Location, maxLocationLen); err != nil {
			return err
		}
	}
	if p.TotalAmount != nil {
		if err := Amount(*p.TotalAmount); err != nil {
			return err
		}
	}
	if p.PartySize != nil {
		if err := PartySize(*p.PartySize); err != nil {
			return err
		}
	}
	if p.Notes != nil {
		if err := MaxLen("notes", *p.Notes, maxNotesLen); err != nil {
			return err
		}
	}
	return nil
}
