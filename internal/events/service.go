package events

import (
	"context"

	"github.com/insativity/portal/internal/store"
)

// Service is the validated CRUD facade over the event store. Every mutation
// persists the affected partition(s) and reloads the full store before
// returning, so callers always observe post-mutation state with freshly
// computed status fields.
type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// CreatePayload is the request body of a create operation. Title, Club,
// Date, Time, Location and Description are required; the rest default to
// zero values.
type CreatePayload struct {
	Title           string `json:"title"`
	Club            string `json:"club"`
	ClubLogo        string `json:"clubLogo"`
	Image           string `json:"image"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	Participants    int    `json:"participants"`
	MaxParticipants int    `json:"maxParticipants"`
	Featured        bool   `json:"featured"`
}

// Patch is a partial event for update operations. Nil fields are left
// unchanged. The id and status fields are not patchable by construction;
// unknown fields in the request body are discarded during decoding.
type Patch struct {
	Title           *string `json:"title"`
	Club            *string `json:"club"`
	ClubLogo        *string `json:"clubLogo"`
	Image           *string `json:"image"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Location        *string `json:"location"`
	Description     *string `json:"description"`
	Participants    *int    `json:"participants"`
	MaxParticipants *int    `json:"maxParticipants"`
	Featured        *bool   `json:"featured"`
}

// Create validates the payload, allocates an id, appends the event to its
// club's partition and returns the event as observed after reload.
func (s *Service) Create(ctx context.Context, p CreatePayload) (*store.Event, error) {
	s.store.LoadAll(ctx)

	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"title", p.Title},
		{"club", p.Club},
		{"date", p.Date},
		{"time", p.Time},
		{"location", p.Location},
		{"description", p.Description},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &store.ValidationError{Missing: missing}
	}

	clubID, err := s.store.ResolveClubID(p.Club)
	if err != nil {
		return nil, err
	}

	evt := store.Event{
		ID:              s.store.NextID(),
		Title:           p.Title,
		Club:            p.Club,
		ClubLogo:        p.ClubLogo,
		Image:           p.Image,
		Date:            p.Date,
		Time:            p.Time,
		Location:        p.Location,
		Description:     p.Description,
		Participants:    p.Participants,
		MaxParticipants: p.MaxParticipants,
		Featured:        p.Featured,
	}

	partition := s.store.ReadPartition(ctx, clubID)
	partition = append(partition, evt)
	if err := s.store.WritePartition(ctx, clubID, partition); err != nil {
		return nil, err
	}

	s.store.LoadAll(ctx)
	return s.find(evt.ID), nil
}

// Update merges the patch over the existing event. A changed club moves the
// record from the old partition to the new one.
func (s *Service) Update(ctx context.Context, id int, patch Patch) (*store.Event, error) {
	s.store.LoadAll(ctx)

	existing := s.find(id)
	if existing == nil {
		return nil, &store.NotFoundError{ID: id}
	}

	updated := applyPatch(*existing, patch)

	oldClubID, err := s.store.ResolveClubID(existing.Club)
	if err != nil {
		return nil, err
	}
	newClubID, err := s.store.ResolveClubID(updated.Club)
	if err != nil {
		return nil, err
	}

	oldPartition := s.store.ReadPartition(ctx, oldClubID)
	newPartition := oldPartition
	if oldClubID != newClubID {
		newPartition = s.store.ReadPartition(ctx, newClubID)
	}

	found := false
	for i, evt := range oldPartition {
		if evt.ID != id {
			continue
		}
		if oldClubID == newClubID {
			oldPartition[i] = updated
		} else {
			oldPartition = append(oldPartition[:i], oldPartition[i+1:]...)
			newPartition = append(newPartition, updated)
		}
		found = true
		break
	}
	if !found {
		// In-memory snapshot and partition file disagree.
		return nil, &store.NotFoundError{ID: id}
	}

	if err := s.store.WritePartition(ctx, oldClubID, oldPartition); err != nil {
		return nil, err
	}
	if oldClubID != newClubID {
		if err := s.store.WritePartition(ctx, newClubID, newPartition); err != nil {
			return nil, err
		}
	}

	s.store.LoadAll(ctx)
	return s.find(id), nil
}

// Delete removes the event from its club's partition.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.store.LoadAll(ctx)

	existing := s.find(id)
	if existing == nil {
		return &store.NotFoundError{ID: id}
	}

	clubID, err := s.store.ResolveClubID(existing.Club)
	if err != nil {
		return err
	}

	partition := s.store.ReadPartition(ctx, clubID)
	remaining := partition[:0:0]
	for _, evt := range partition {
		if evt.ID != id {
			remaining = append(remaining, evt)
		}
	}
	if len(remaining) == len(partition) {
		return &store.NotFoundError{ID: id}
	}

	if err := s.store.WritePartition(ctx, clubID, remaining); err != nil {
		return err
	}

	s.store.LoadAll(ctx)
	return nil
}

// Get returns a single event by id, or nil when absent.
func (s *Service) Get(ctx context.Context, id int) *store.Event {
	s.store.LoadAll(ctx)
	return s.find(id)
}

// GetAll returns the full collection.
func (s *Service) GetAll(ctx context.Context) []store.Event {
	all := s.store.LoadAll(ctx)
	if all == nil {
		all = []store.Event{}
	}
	return all
}

// ByClub returns events whose club display name matches exactly.
func (s *Service) ByClub(ctx context.Context, club string) []store.Event {
	return filter(s.store.LoadAll(ctx), func(e store.Event) bool {
		return e.Club == club
	})
}

// ByClubAndStatus returns events of one club with the given derived status.
func (s *Service) ByClubAndStatus(ctx context.Context, club string, status store.Status) []store.Event {
	return filter(s.store.LoadAll(ctx), func(e store.Event) bool {
		return e.Club == club && e.Status == status
	})
}

// ByStatus returns events with the given derived status.
func (s *Service) ByStatus(ctx context.Context, status store.Status) []store.Event {
	return filter(s.store.LoadAll(ctx), func(e store.Event) bool {
		return e.Status == status
	})
}

// Featured returns events flagged for promotional display.
func (s *Service) Featured(ctx context.Context) []store.Event {
	return filter(s.store.LoadAll(ctx), func(e store.Event) bool {
		return e.Featured
	})
}

func (s *Service) find(id int) *store.Event {
	for _, evt := range s.store.Events() {
		if evt.ID == id {
			e := evt
			return &e
		}
	}
	return nil
}

func filter(events []store.Event, keep func(store.Event) bool) []store.Event {
	result := []store.Event{}
	for _, evt := range events {
		if keep(evt) {
			result = append(result, evt)
		}
	}
	return result
}

func applyPatch(evt store.Event, patch Patch) store.Event {
	if patch.Title != nil {
		evt.Title = *patch.Title
	}
	if patch.Club != nil {
		evt.Club = *patch.Club
	}
	if patch.ClubLogo != nil {
		evt.ClubLogo = *patch.ClubLogo
	}
	if patch.Image != nil {
		evt.Image = *patch.Image
	}
	if patch.Date != nil {
		evt.Date = *patch.Date
	}
	if patch.Time != nil {
		evt.Time = *patch.Time
	}
	if patch.Location != nil {
		evt.Location = *patch.Location
	}
	if patch.Description != nil {
		evt.Description = *patch.Description
	}
	if patch.Participants != nil {
		evt.Participants = *patch.Participants
	}
	if patch.MaxParticipants != nil {
		evt.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Featured != nil {
		evt.Featured = *patch.Featured
	}
	evt.Status = ""
	return evt
}
