package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/Dawn-Fighter/Mandi-Counter/client/internal/api"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

// Feed subscribes to the service's change-event stream and folds every event
// into an EntryStore. The connection is re-established with exponential
// backoff; delivery is at least once, which the store's idempotent
// reconciliation absorbs.
type Feed struct {
	baseURL string
	http    *http.Client
	store   *EntryStore
	log     zerolog.Logger
}

// NewFeed builds a feed for the store. It derives a streaming HTTP client
// from the Client's transport; the Client's request timeout does not apply
// to the long-lived stream.
func NewFeed(c *Client, store *EntryStore, log zerolog.Logger) *Feed {
	return &Feed{
		baseURL: c.baseURL,
		http:    &http.Client{Transport: c.http.Transport},
		store:   store,
		log:     log,
	}
}

// Run blocks, streaming events into the store until ctx is canceled. After
// every disconnect it resyncs via Load before resuming, so events missed
// while offline are not lost.
func (f *Feed) Run(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 0 // retry forever

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := f.stream(ctx, policy)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isRecoverable(err) {
			f.log.Error().Err(err).Msg("change feed failed permanently")
			return err
		}
		f.log.Warn().Err(err).Msg("change feed disconnected")

		wait := policy.NextBackOff()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		feedReconnectsTotal.Inc()
	}
}

// stream opens one SSE connection and dispatches its events. The backoff
// policy is reset once the stream is established and the mirror resynced.
func (f *Feed) stream(ctx context.Context, policy *backoff.ExponentialBackOff) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/entries/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &api.StatusError{StatusCode: resp.StatusCode, Operation: "event stream"}
	}

	// The stream only carries changes from now on; reload to pick up
	// anything that happened while disconnected.
	if err := f.store.Load(ctx); err != nil {
		return err
	}
	policy.Reset()
	f.log.Info().Msg("change feed connected")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				f.dispatch(data.String())
				data.Reset()
			}
		case strings.HasPrefix(line, ":"):
			// heartbeat comment
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("event stream closed")
}

// dispatch decodes one event payload. Malformed payloads are logged and
// skipped; the feed never fails on bad input.
func (f *Feed) dispatch(payload string) {
	var evt model.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		feedEventsSkippedTotal.Inc()
		f.log.Warn().Err(err).Str("payload", payload).Msg("skipping malformed change event")
		return
	}
	f.store.ApplyRemoteChange(evt)
}
