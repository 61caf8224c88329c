package calendar

import (
	"context"
	"errors"
	"testing"
)

// fakeSource is an in-memory EventSource for view model tests.
type fakeSource struct {
	events  []Event
	loadErr error
	nextID  int
}

func (f *fakeSource) Load(ctx context.Context) ([]Event, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeSource) Create(ctx context.Context, evt Event) (Event, error) {
	f.nextID++
	evt.ID = "fake-" + string(rune('0'+f.nextID))
	f.events = append(f.events, evt)
	return evt, nil
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	kept := f.events[:0:0]
	for _, evt := range f.events {
		if evt.ID != id {
			kept = append(kept, evt)
		}
	}
	f.events = kept
	return nil
}

func TestNewViewModelDefaultsToToday(t *testing.T) {
	vm := NewViewModel(&fakeSource{}, february2026)
	if vm.ViewYear != 2026 || vm.ViewMonth != 1 {
		t.Errorf("view = %d-%d, want 2026-1", vm.ViewYear, vm.ViewMonth)
	}
	if vm.Selected != nil {
		t.Error("new view model should start without a selection")
	}
}

func TestGoToMonthRollover(t *testing.T) {
	testCases := []struct {
		name      string
		year      int
		month     int
		delta     int
		wantYear  int
		wantMonth int
	}{
		{"forward within year", 2026, 4, 1, 2026, 5},
		{"backward within year", 2026, 4, -1, 2026, 3},
		{"january back to december", 2026, 0, -1, 2025, 11},
		{"december forward to january", 2026, 11, 1, 2027, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vm := NewViewModel(&fakeSource{}, february2026)
			vm.ViewYear = tc.year
			vm.ViewMonth = tc.month
			vm.SelectDay(tc.year, tc.month, 15)

			vm.GoToMonth(tc.delta)
			if vm.ViewYear != tc.wantYear || vm.ViewMonth != tc.wantMonth {
				t.Errorf("view = %d-%d, want %d-%d", vm.ViewYear, vm.ViewMonth, tc.wantYear, tc.wantMonth)
			}
			if vm.Selected != nil {
				t.Error("month navigation must clear the selection")
			}
		})
	}
}

func TestGoToTodayAutoSelects(t *testing.T) {
	vm := NewViewModel(&fakeSource{}, february2026)
	vm.ViewYear = 2030
	vm.ViewMonth = 6

	vm.GoToToday()
	if vm.ViewYear != 2026 || vm.ViewMonth != 1 {
		t.Errorf("view = %d-%d", vm.ViewYear, vm.ViewMonth)
	}
	if vm.Selected == nil || vm.Selected.Day != 10 || vm.Selected.Month != 1 {
		t.Errorf("selected = %+v", vm.Selected)
	}
}

func TestCloseSelectionKeepsView(t *testing.T) {
	vm := NewViewModel(&fakeSource{}, february2026)
	vm.SelectDay(2026, 1, 3)
	vm.CloseSelection()

	if vm.Selected != nil {
		t.Error("selection not cleared")
	}
	if vm.ViewYear != 2026 || vm.ViewMonth != 1 {
		t.Errorf("view changed to %d-%d", vm.ViewYear, vm.ViewMonth)
	}
}

func TestRefresh(t *testing.T) {
	src := &fakeSource{events: []Event{{ID: "a", Title: "One", Date: "2026-02-02"}}}
	vm := NewViewModel(src, february2026)

	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(vm.Events) != 1 {
		t.Fatalf("events = %d", len(vm.Events))
	}

	// A failing reload leaves the prior collection untouched.
	src.loadErr = errors.New("backend down")
	if err := vm.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if len(vm.Events) != 1 || vm.Events[0].ID != "a" {
		t.Errorf("prior events lost: %+v", vm.Events)
	}
}

func TestApplyMutation(t *testing.T) {
	vm := NewViewModel(&fakeSource{}, february2026)
	vm.Events = []Event{
		{ID: "a", Title: "One"},
		{ID: "b", Title: "Two"},
	}

	vm.ApplyMutation(Event{ID: "c", Title: "Three"}, MutationCreate)
	if len(vm.Events) != 3 {
		t.Fatalf("after create: %d events", len(vm.Events))
	}

	vm.ApplyMutation(Event{ID: "b", Title: "Two v2"}, MutationUpdate)
	if vm.Events[1].Title != "Two v2" {
		t.Errorf("after update: %+v", vm.Events[1])
	}

	vm.ApplyMutation(Event{ID: "a"}, MutationDelete)
	if len(vm.Events) != 2 || vm.Events[0].ID != "b" {
		t.Errorf("after delete: %+v", vm.Events)
	}
}

func TestDeleteEvent(t *testing.T) {
	src := &fakeSource{events: []Event{{ID: "a"}, {ID: "b"}}}
	vm := NewViewModel(src, february2026)
	if err := vm.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := vm.DeleteEvent(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if len(vm.Events) != 1 || vm.Events[0].ID != "b" {
		t.Errorf("events = %+v", vm.Events)
	}
	if len(src.events) != 1 {
		t.Errorf("source events = %+v", src.events)
	}
}
