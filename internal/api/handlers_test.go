package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/events"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/money"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/services"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/store"
)

// memStore is a minimal in-memory store.Store for handler tests.
type memStore struct {
	entries map[string]model.Entry
	nextID  int
}

func newMemStore() *memStore { return &memStore{entries: map[string]model.Entry{}} }

func (m *memStore) Entries() store.Entries { return (*memEntries)(m) }

type memEntries memStore

func (m *memEntries) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	out := *e
	m.nextID++
	out.ID = fmt.Sprintf("e-%d", m.nextID)
	out.CreatedAt = time.Now().UTC()
	out.UpdatedAt = out.CreatedAt
	out.PerPersonCost = money.PerPersonCost(out.TotalAmount, out.PartySize)
	m.entries[out.ID] = out
	return &out, nil
}

func (m *memEntries) GetByID(ctx context.Context, ownerID, entryID string) (*model.Entry, error) {
	e, ok := m.entries[entryID]
	if !ok || e.OwnerID != ownerID {
		return nil, model.ErrNotFound
	}
	return &e, nil
}

func (m *memEntries) ListByOwner(ctx context.Context, ownerID string) ([]*model.Entry, error) {
	var out []*model.Entry
	for _, e := range m.entries {
		if e.OwnerID == ownerID {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *memEntries) Update(ctx context.Context, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error) {
	e, ok := m.entries[entryID]
	if !ok || e.OwnerID != ownerID {
		return nil, model.ErrNotFound
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.TotalAmount != nil {
		e.TotalAmount = *patch.TotalAmount
	}
	if patch.PartySize != nil {
		e.PartySize = *patch.PartySize
	}
	if patch.Notes != nil {
		e.Notes = patch.Notes
	}
	e.PerPersonCost = money.PerPersonCost(e.TotalAmount, e.PartySize)
	e.UpdatedAt = time.Now().UTC()
	m.entries[entryID] = e
	return &e, nil
}

func (m *memEntries) Delete(ctx context.Context, ownerID, entryID string) error {
	e, ok := m.entries[entryID]
	if !ok || e.OwnerID != ownerID {
		return model.ErrNotFound
	}
	delete(m.entries, entryID)
	return nil
}

func newTestRouter() (http.Handler, *events.Bus) {
	bus := events.NewBus(16)
	svc := services.NewEntryService(newMemStore(), bus, zerolog.Nop())
	return NewRouter(svc, bus, nil, zerolog.Nop()), bus
}

func postEntry(t *testing.T, h http.Handler, ownerID string, body string) model.Entry {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/owners/"+ownerID+"/entries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateEntryHandler(t *testing.T) {
	h, _ := newTestRouter()

	out := postEntry(t, h, "o1", `{"location":"Bait Al Mandi","totalAmount":1000,"partySize":3,"date":"2024-03-10"}`)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "o1", out.OwnerID)
	assert.Equal(t, 333.33, out.PerPersonCost)
}

func TestCreateEntryHandlerBadJSON(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/owners/o1/entries", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntryHandlerValidation(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/owners/o1/entries", strings.NewReader(`{"location":"","totalAmount":0,"partySize":0}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEntriesHandler(t *testing.T) {
	h, _ := newTestRouter()
	postEntry(t, h, "o1", `{"location":"A","totalAmount":100,"partySize":1,"date":"2024-03-10"}`)
	postEntry(t, h, "o1", `{"location":"B","totalAmount":200,"partySize":2,"date":"2024-03-12"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/owners/o1/entries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Entries []model.Entry `json:"entries"`
		Count   int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, 2, out.Count)
	assert.Equal(t, "B", out.Entries[0].Location, "newest date first")
}

func TestListEntriesHandlerEmpty(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/owners/nobody/entries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":[],"count":0}`, rec.Body.String())
}

func TestGetEntryHandlerNotFound(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/owners/o1/entries/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEntryHandler(t *testing.T) {
	h, _ := newTestRouter()
	created := postEntry(t, h, "o1", `{"location":"A","totalAmount":100,"partySize":1,"date":"2024-03-10"}`)

	req := httptest.NewRequest(http.MethodPatch, "/api/owners/o1/entries/"+created.ID, strings.NewReader(`{"totalAmount":300,"partySize":2}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 300.0, out.TotalAmount)
	assert.Equal(t, 150.0, out.PerPersonCost)
	assert.Equal(t, "A", out.Location, "unpatched fields preserved")
}

func TestDeleteEntryHandler(t *testing.T) {
	h, _ := newTestRouter()
	created := postEntry(t, h, "o1", `{"location":"A","totalAmount":100,"partySize":1,"date":"2024-03-10"}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/owners/o1/entries/"+created.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/owners/o1/entries/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	h, _ := newTestRouter()
	today := time.Now().Format("2006-01-02")
	postEntry(t, h, "o1", fmt.Sprintf(`{"location":"A","totalAmount":600,"partySize":2,"date":%q}`, today))

	req := httptest.NewRequest(http.MethodGet, "/api/owners/o1/stats?period=monthly", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Period    string                `json:"period"`
		Summary   model.PeriodStats     `json:"summary"`
		Locations []model.LocationStats `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "monthly", out.Period)
	assert.Equal(t, 1, out.Summary.TotalCount)
	assert.Equal(t, 300.0, out.Summary.TotalSpent)
	require.Len(t, out.Locations, 1)
}

func TestStatsHandlerUnknownPeriod(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/owners/o1/stats?period=hourly", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsStream(t *testing.T) {
	h, bus := newTestRouter()
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/entries/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, ": connected"))

	// Skip the blank line terminating the comment, then publish.
	_, _ = reader.ReadString('\n')
	bus.Publish(model.ChangeEvent{Kind: model.ChangeDeleted, EntryID: "e-9"})

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			break
		}
	}

	var evt model.ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &evt))
	assert.Equal(t, model.ChangeDeleted, evt.Kind)
	assert.Equal(t, "e-9", evt.EntryID)
}
