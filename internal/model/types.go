package model

import "time"

// Entry is one recorded shared-meal expense.
//
// Date carries date-only semantics and travels as "YYYY-MM-DD"; lexicographic
// order on it equals chronological order. PerPersonCost is derived at write
// time and stored redundantly so historical figures stay stable even if the
// rounding rule changes later.
type Entry struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Date          string    `json:"date"`
	Location      string    `json:"location"`
	TotalAmount   float64   `json:"totalAmount"`
	PartySize     int       `json:"partySize"`
	PerPersonCost float64   `json:"perPersonCost"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EntryInsert is the payload for creating an entry. ID, PerPersonCost and
// timestamps are assigned by the service.
type EntryInsert struct {
	OwnerID     string  `json:"ownerId"`
	Date        string  `json:"date,omitempty"`
	Location    string  `json:"location"`
	TotalAmount float64 `json:"totalAmount"`
	PartySize   int     `json:"partySize"`
	Notes       *string `json:"notes,omitempty"`
}

// EntryPatch is a partial update; nil fields are left unchanged.
type EntryPatch struct {
	Date        *string  `json:"date,omitempty"`
	Location    *string  `json:"location,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
	PartySize   *int     `json:"partySize,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// ChangeKind labels a change-feed event.
type ChangeKind string

const (
	ChangeInserted ChangeKind = "inserted"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDeleted  ChangeKind = "deleted"
)

// ChangeEvent is one change-feed message. Entry is present for inserted and
// updated events; deleted events carry only the id.
type ChangeEvent struct {
	Kind    ChangeKind `json:"kind"`
	Entry   *Entry     `json:"entry,omitempty"`
	EntryID string     `json:"entryId"`
}

// PeriodStats aggregates per-person spend over a time window.
type PeriodStats struct {
	TotalSpent       float64 `json:"totalSpent"`
	AveragePerMeal   float64 `json:"averagePerMeal"`
	TotalCount       int     `json:"totalCount"`
	AverageGroupSize float64 `json:"averageGroupSize"`
}

// LocationStats aggregates spend for one merchant.
type LocationStats struct {
	Location   string  `json:"location"`
	VisitCount int     `json:"visitCount"`
	TotalSpent float64 `json:"totalSpent"`
	Percentage float64 `json:"percentage"`
}
