package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/insativity/portal/internal/calendar"
)

// storageKey is the key the event collection lives under.
const storageKey = "insativity_events"

// defaultEvents seeds the store when no persisted collection exists.
var defaultEvents = []calendar.Event{
	{ID: "e1", Title: "Basketball Tournament", Date: "2026-02-02", Category: calendar.CategorySports, Time: "14:00", Location: "Sports Hall", Description: "Inter-club basketball match. Everyone welcome!"},
	{ID: "e2", Title: "Career Fair", Date: "2026-02-04", Category: calendar.CategoryCareer, Time: "09:00", Location: "Main Hall", Description: "Meet 40+ recruiters from top companies."},
	{ID: "e3", Title: "Hackathon 2026", Date: "2026-02-07", Category: calendar.CategoryAcademic, Time: "08:00", Location: "Tech Hub", Description: "48-hour coding challenge. Form teams of 3."},
	{ID: "e4", Title: "Alumni Gala", Date: "2026-02-15", Category: calendar.CategorySocial, Time: "20:00", Location: "Main Quad", Description: "Annual alumni networking gala with dinner."},
	{ID: "e5", Title: "Art Exhibition", Date: "2026-03-20", Category: calendar.CategoryCulture, Time: "08:00", Location: "Gallery", Description: "Student art showcase — 3 weeks of work."},
	{ID: "e6", Title: "Tech Talk: AI Futures", Date: "2026-02-25", Category: calendar.CategoryAcademic, Time: "10:00", Location: "Amphitheatre", Description: "Panel discussion on AI trends in industry."},
}

// Store is the locally-persisted event backend: the whole collection is one
// value in a key-value store, ids are generated string tokens, and the
// category enum is kept for presentation.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted collection, falling back to the default seed
// events when nothing valid is stored.
func (s *Store) Load(ctx context.Context) ([]calendar.Event, error) {
	raw, ok := s.kv.Get(storageKey)
	if !ok {
		return seed(), nil
	}

	var events []calendar.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return seed(), nil
	}
	for i := range events {
		events[i].Category = calendar.Normalize(string(events[i].Category))
	}
	return events, nil
}

// Create appends an event with a freshly generated token id and persists
// the collection.
func (s *Store) Create(ctx context.Context, evt calendar.Event) (calendar.Event, error) {
	events, err := s.Load(ctx)
	if err != nil {
		return calendar.Event{}, err
	}

	evt.ID = "e" + uuid.NewString()
	evt.Category = calendar.Normalize(string(evt.Category))
	events = append(events, evt)

	if err := s.save(events); err != nil {
		return calendar.Event{}, err
	}
	return evt, nil
}

// Delete removes an event by id and persists the collection. Removing an
// absent id is a no-op, matching the interactive delete flow.
func (s *Store) Delete(ctx context.Context, id string) error {
	events, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := events[:0:0]
	for _, evt := range events {
		if evt.ID != id {
			kept = append(kept, evt)
		}
	}
	return s.save(kept)
}

func (s *Store) save(events []calendar.Event) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return s.kv.Set(storageKey, string(raw))
}

func seed() []calendar.Event {
	events := make([]calendar.Event, len(defaultEvents))
	copy(events, defaultEvents)
	return events
}
