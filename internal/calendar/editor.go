package calendar

import (
	"context"
	"errors"
	"time"
)

// Draft is the create-flow input of the event editor. Only Title and Date
// are required; Category defaults to academic.
type Draft struct {
	Title       string
	Date        string // YYYY-MM-DD
	Time        string
	Category    string
	Location    string
	Description string
	Club        string
}

var (
	ErrTitleRequired = errors.New("event title is required")
	ErrDateRequired  = errors.New("event date is required")
)

// Validate checks the minimal editor contract.
func (d Draft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.Date == "" {
		return ErrDateRequired
	}
	return nil
}

// SubmitDraft validates the draft, creates the event through the view
// model's source, applies the mutation locally, and navigates the view to
// the event's date so the new event is immediately visible in context.
func (vm *ViewModel) SubmitDraft(ctx context.Context, draft Draft) (Event, error) {
	if err := draft.Validate(); err != nil {
		return Event{}, err
	}

	category := draft.Category
	if category == "" {
		category = string(CategoryAcademic)
	}

	created, err := vm.source.Create(ctx, Event{
		Title:       draft.Title,
		Date:        draft.Date,
		Time:        draft.Time,
		Category:    Normalize(category),
		Location:    draft.Location,
		Description: draft.Description,
		Club:        draft.Club,
	})
	if err != nil {
		return Event{}, err
	}

	vm.ApplyMutation(created, MutationCreate)

	if when, err := time.ParseInLocation("2006-01-02", created.Date, time.Local); err == nil {
		vm.ViewYear = when.Year()
		vm.ViewMonth = int(when.Month()) - 1
		vm.SelectDay(when.Year(), int(when.Month())-1, when.Day())
	}

	return created, nil
}
