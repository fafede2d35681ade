// Package client is the SDK for the Mandi Counter service. Client wraps the
// HTTP API; EntryStore keeps an optimistic local mirror of one owner's
// entries; Feed streams change events into the store.
package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Dawn-Fighter/Mandi-Counter/client/internal/api"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the given service base URL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errEmptyBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Client) CreateEntry(ctx context.Context, ownerID string, ins model.EntryInsert) (*model.Entry, error) {
	out, err := api.CreateEntry(ctx, c.http, c.baseURL, ownerID, ins)
	return out, mapStatusError(err)
}

func (c *Client) ListEntries(ctx context.Context, ownerID string) ([]model.Entry, error) {
	out, err := api.ListEntries(ctx, c.http, c.baseURL, ownerID)
	return out, mapStatusError(err)
}

func (c *Client) GetEntry(ctx context.Context, ownerID, entryID string) (*model.Entry, error) {
	out, err := api.GetEntry(ctx, c.http, c.baseURL, ownerID, entryID)
	return out, mapStatusError(err)
}

func (c *Client) UpdateEntry(ctx context.Context, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error) {
	out, err := api.UpdateEntry(ctx, c.http, c.baseURL, ownerID, entryID, patch)
	return out, mapStatusError(err)
}

func (c *Client) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	return mapStatusError(api.DeleteEntry(ctx, c.http, c.baseURL, ownerID, entryID))
}

func (c *Client) GetStats(ctx context.Context, ownerID, period string) (*api.StatsResponse, error) {
	out, err := api.GetStats(ctx, c.http, c.baseURL, ownerID, period)
	return out, mapStatusError(err)
}
