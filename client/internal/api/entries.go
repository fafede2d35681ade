// Package api holds the raw HTTP wrappers used by the public client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

// errorBody mirrors the service's standard error response.
type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// StatusError carries the HTTP status of a failed call so callers can map it
// onto sentinel errors.
type StatusError struct {
	StatusCode int
	Operation  string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
}

func newStatusError(op string, resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode, Operation: op}
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		se.Message = body.Message
	}
	return se
}

// CreateEntry POSTs a new entry for the owner.
func CreateEntry(ctx context.Context, httpClient *http.Client, baseURL, ownerID string, ins model.EntryInsert) (*model.Entry, error) {
	payload, err := json.Marshal(ins)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/owners/%s/entries", baseURL, ownerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, newStatusError("create entry", resp)
	}
	var out model.Entry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEntries GETs all entries for the owner, date-descending.
func ListEntries(ctx context.Context, httpClient *http.Client, baseURL, ownerID string) ([]model.Entry, error) {
	url := fmt.Sprintf("%s/api/owners/%s/entries", baseURL, ownerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("list entries", resp)
	}
	var lr struct {
		Entries []model.Entry `json:"entries"`
		Count   int           `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Entries, nil
}

// GetEntry GETs a single entry by id.
func GetEntry(ctx context.Context, httpClient *http.Client, baseURL, ownerID, entryID string) (*model.Entry, error) {
	url := fmt.Sprintf("%s/api/owners/%s/entries/%s", baseURL, ownerID, entryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("get entry", resp)
	}
	var out model.Entry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEntry PATCHes an entry and returns the updated row.
func UpdateEntry(ctx context.Context, httpClient *http.Client, baseURL, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/owners/%s/entries/%s", baseURL, ownerID, entryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("update entry", resp)
	}
	var out model.Entry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry DELETEs an entry.
func DeleteEntry(ctx context.Context, httpClient *http.Client, baseURL, ownerID, entryID string) error {
	url := fmt.Sprintf("%s/api/owners/%s/entries/%s", baseURL, ownerID, entryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return newStatusError("delete entry", resp)
	}
	return nil
}

// StatsResponse is the wire shape of the stats endpoint.
type StatsResponse struct {
	Period    string                `json:"period"`
	Summary   model.PeriodStats     `json:"summary"`
	Locations []model.LocationStats `json:"locations"`
}

// GetStats GETs aggregated spend statistics for the owner and period.
func GetStats(ctx context.Context, httpClient *http.Client, baseURL, ownerID, period string) (*StatsResponse, error) {
	url := fmt.Sprintf("%s/api/owners/%s/stats?period=%s", baseURL, ownerID, period)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("get stats", resp)
	}
	var out StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
