package playback

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reelcheck/internal/config"
	"reelcheck/internal/reconcile"
	"reelcheck/internal/services"
	"reelcheck/internal/store"
)

// HTTPDoer describes the HTTP client used by the playback service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches playback history from the configured server.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	client   HTTPDoer
}

// NewConfiguredClient returns a client when playback sync is enabled, nil
// otherwise. Callers treat a nil client as "sync disabled".
func NewConfiguredClient(cfg *config.Config) *Client {
	if cfg == nil || !cfg.Playback.Enabled {
		return nil
	}
	httpClient := &http.Client{Timeout: time.Duration(cfg.Playback.RequestTimeout) * time.Second}
	return NewClient(cfg.Playback.URL, cfg.Playback.APIKey, cfg.Playback.PageSize, httpClient)
}

// NewClient constructs a playback history client.
func NewClient(baseURL, apiKey string, pageSize int, doer HTTPDoer) *Client {
	if pageSize <= 0 {
		pageSize = 200
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:   strings.TrimSpace(apiKey),
		pageSize: pageSize,
		client:   doer,
	}
}

type historyItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	ClientName string    `json:"client_name"`
	DeviceID   string    `json:"device_id"`
	PlayMethod string    `json:"play_method"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

type historyPage struct {
	Items []historyItem `json:"items"`
	Total int           `json:"total"`
}

// History returns all playback events since the given time, oldest first.
// A zero since fetches the full history.
func (c *Client) History(ctx context.Context, since time.Time) ([]store.Event, error) {
	if c == nil || c.client == nil || c.baseURL == "" {
		return nil, services.Wrap(services.ErrValidation, "playback", "history", "client not configured", nil)
	}

	var events []store.Event
	for offset := 0; ; offset += c.pageSize {
		page, err := c.fetchPage(ctx, since, offset)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			events = append(events, store.Event{
				PlaybackEvent: reconcile.PlaybackEvent{
					Title:      item.Title,
					Path:       item.Path,
					StartedAt:  item.StartedAt,
					EndedAt:    item.EndedAt,
					ClientName: item.ClientName,
					DeviceID:   item.DeviceID,
				},
				ExternalID: item.ID,
				PlayMethod: item.PlayMethod,
			})
		}
		if len(page.Items) < c.pageSize {
			return events, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, since time.Time, offset int) (historyPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.pageSize))
	query.Set("offset", strconv.Itoa(offset))
	if !since.IsZero() {
		query.Set("since", since.UTC().Format(time.RFC3339))
	}

	endpoint := fmt.Sprintf("%s/api/history?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return historyPage{}, services.Wrap(services.ErrValidation, "playback", "history", "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return historyPage{}, services.Wrap(services.ErrTransient, "playback", "history", "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return historyPage{}, services.Wrap(services.ErrValidation, "playback", "history",
			fmt.Sprintf("server rejected credentials (%d)", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return historyPage{}, services.Wrap(services.ErrTransient, "playback", "history",
			fmt.Sprintf("server returned %d", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return historyPage{}, services.Wrap(services.ErrExternalTool, "playback", "history",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var page historyPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return historyPage{}, services.Wrap(services.ErrExternalTool, "playback", "history", "decode response", err)
	}
	return page, nil
}
