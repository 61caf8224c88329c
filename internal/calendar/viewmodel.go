package calendar

import (
	"context"
	"time"
)

// DayRef identifies one day cell. Month is 0-based (January = 0), matching
// the grid arithmetic.
type DayRef struct {
	Year  int
	Month int
	Day   int
}

// MutationKind names the outcome of an event source call being applied to
// the working collection.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// ViewModel owns the calendar's ephemeral state: the month in view, the
// selected day, and the working copy of events. It is not safe for
// concurrent use; interaction handlers are expected to run one at a time.
type ViewModel struct {
	ViewYear  int
	ViewMonth int // 0-based
	Selected  *DayRef
	Events    []Event

	source EventSource
	now    func() time.Time
}

// NewViewModel creates a view model showing the current month, with no
// selection and an empty working collection. A nil clock defaults to
// time.Now.
func NewViewModel(source EventSource, clock func() time.Time) *ViewModel {
	if clock == nil {
		clock = time.Now
	}
	t := clock()
	return &ViewModel{
		ViewYear:  t.Year(),
		ViewMonth: int(t.Month()) - 1,
		source:    source,
		now:       clock,
	}
}

// Refresh reloads the working collection from the event source. On failure
// the prior collection is left untouched.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	events, err := vm.source.Load(ctx)
	if err != nil {
		return err
	}
	vm.Events = events
	return nil
}

// GoToMonth moves the view by delta months, rolling the year over as needed,
// and clears any selection.
func (vm *ViewModel) GoToMonth(delta int) {
	month := vm.ViewMonth + delta
	year := vm.ViewYear
	for month < 0 {
		month += 12
		year--
	}
	for month > 11 {
		month -= 12
		year++
	}
	vm.ViewYear = year
	vm.ViewMonth = month
	vm.Selected = nil
}

// GoToToday resets the view to the current month and auto-selects today.
func (vm *ViewModel) GoToToday() {
	t := vm.now()
	vm.ViewYear = t.Year()
	vm.ViewMonth = int(t.Month()) - 1
	vm.Selected = &DayRef{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

// SelectDay marks a day cell as selected. The caller must already be viewing
// that month; the view is not changed.
func (vm *ViewModel) SelectDay(year, month, day int) {
	vm.Selected = &DayRef{Year: year, Month: month, Day: day}
}

// CloseSelection clears the selection, leaving the view untouched.
func (vm *ViewModel) CloseSelection() {
	vm.Selected = nil
}

// ApplyMutation updates the working collection to match the outcome of an
// event source call. Create appends, update replaces by id, delete removes.
func (vm *ViewModel) ApplyMutation(evt Event, kind MutationKind) {
	switch kind {
	case MutationCreate:
		vm.Events = append(vm.Events, evt)
	case MutationUpdate:
		for i := range vm.Events {
			if vm.Events[i].ID == evt.ID {
				vm.Events[i] = evt
				break
			}
		}
	case MutationDelete:
		kept := vm.Events[:0:0]
		for _, e := range vm.Events {
			if e.ID != evt.ID {
				kept = append(kept, e)
			}
		}
		vm.Events = kept
	}
}

// DeleteEvent removes an event via the source and applies the deletion to
// the working collection.
func (vm *ViewModel) DeleteEvent(ctx context.Context, id string) error {
	if err := vm.source.Delete(ctx, id); err != nil {
		return err
	}
	vm.ApplyMutation(Event{ID: id}, MutationDelete)
	return nil
}
