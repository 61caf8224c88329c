package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/insativity/portal/internal/calendar"
	"github.com/insativity/portal/internal/store"
)

// Client is the remote-API-backed event source: it speaks the event
// service's envelope protocol and adapts server records to the calendar's
// working representation.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the portal at baseURL. A nil httpClient gets a
// default with a 10 second timeout so a stalled request cannot hang the
// interaction flow indefinitely.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// Load fetches the full collection.
func (c *Client) Load(ctx context.Context) ([]calendar.Event, error) {
	env, err := c.do(ctx, http.MethodGet, url.Values{"action": {"getAll"}}, nil)
	if err != nil {
		return nil, err
	}

	var records []store.Event
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]calendar.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, fromRecord(rec))
	}
	return events, nil
}

// Create submits a new event. Server records carry no category, so the
// submitted category is preserved only client-side.
func (c *Client) Create(ctx context.Context, evt calendar.Event) (calendar.Event, error) {
	payload := map[string]any{
		"title":       evt.Title,
		"club":        evt.Club,
		"date":        evt.Date,
		"time":        evt.Time,
		"location":    evt.Location,
		"description": evt.Description,
		"featured":    evt.Featured,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("encode payload: %w", err)
	}

	env, err := c.do(ctx, http.MethodPost, url.Values{"action": {"create"}}, body)
	if err != nil {
		return calendar.Event{}, err
	}

	var rec store.Event
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return calendar.Event{}, fmt.Errorf("decode created event: %w", err)
	}

	created := fromRecord(rec)
	created.Category = calendar.Normalize(string(evt.Category))
	return created, nil
}

// Delete removes an event by its server-assigned id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, url.Values{"action": {"delete"}, "id": {id}}, nil)
	return err
}

func (c *Client) do(ctx context.Context, method string, query url.Values, body []byte) (*envelope, error) {
	endpoint := c.baseURL + "/api/events?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if env.Status != "success" {
		if len(env.Errors) > 0 {
			return nil, fmt.Errorf("event service: %s", env.Errors[0])
		}
		return nil, fmt.Errorf("event service: status %d", resp.StatusCode)
	}
	return &env, nil
}

// fromRecord maps a server event onto the calendar's working shape. Server
// records carry no category, so it defaults to other.
func fromRecord(rec store.Event) calendar.Event {
	return calendar.Event{
		ID:          strconv.Itoa(rec.ID),
		Title:       rec.Title,
		Date:        rec.Date,
		Time:        rec.Time,
		Category:    calendar.CategoryOther,
		Location:    rec.Location,
		Description: rec.Description,
		Club:        rec.Club,
		Featured:    rec.Featured,
	}
}
