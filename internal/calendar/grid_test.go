package calendar

import (
	"testing"
	"time"
)

// february2026 pins "now" inside the month most fixtures use.
func february2026() time.Time {
	return time.Date(2026, time.February, 10, 9, 0, 0, 0, time.Local)
}

func testViewModel(events []Event, clock func() time.Time) *ViewModel {
	vm := NewViewModel(nil, clock)
	vm.Events = events
	return vm
}

func TestBuildGridCellCount(t *testing.T) {
	testCases := []struct {
		name  string
		year  int
		month int // 0-based
	}{
		{"february 2026", 2026, 1},
		{"march 2026", 2026, 2},
		{"february 2024 leap", 2024, 1},
		{"august 2026 starts on saturday", 2026, 7},
		{"february 2026 view of december", 2026, 11},
		{"january 2027", 2027, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vm := testViewModel(nil, february2026)
			vm.ViewYear = tc.year
			vm.ViewMonth = tc.month

			grid := BuildGrid(vm)
			if len(grid.Cells)%7 != 0 {
				t.Errorf("cell count %d is not a multiple of 7", len(grid.Cells))
			}

			firstWeekday := int(time.Date(tc.year, time.Month(tc.month+1), 1, 0, 0, 0, 0, time.Local).Weekday())
			daysInMonth := time.Date(tc.year, time.Month(tc.month+2), 0, 0, 0, 0, 0, time.Local).Day()
			if len(grid.Cells) < firstWeekday+daysInMonth {
				t.Errorf("cell count %d cannot fit offset %d + %d days", len(grid.Cells), firstWeekday, daysInMonth)
			}
		})
	}
}

func TestBuildGridEventBuckets(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "First", Date: "2026-02-02", Category: CategorySports},
		{ID: "b", Title: "Second", Date: "2026-02-04", Category: CategoryCareer},
	}
	vm := testViewModel(events, february2026)
	vm.ViewYear = 2026
	vm.ViewMonth = 1

	grid := BuildGrid(vm)

	cells := make(map[string]Cell)
	for _, c := range grid.Cells {
		if !c.Muted {
			cells[c.Date] = c
		}
	}

	if !cells["2026-02-02"].HasEvents {
		t.Error("Feb 2 should have events")
	}
	if cells["2026-02-01"].HasEvents {
		t.Error("Feb 1 should not have events")
	}
	if got := cells["2026-02-02"].Pills; len(got) != 1 || got[0].Title != "First" || got[0].Class != "pill-green" {
		t.Errorf("Feb 2 pills = %+v", got)
	}
}

func TestBuildGridPillOverflow(t *testing.T) {
	events := []Event{
		{ID: "1", Title: "A", Date: "2026-02-14"},
		{ID: "2", Title: "B", Date: "2026-02-14"},
		{ID: "3", Title: "C", Date: "2026-02-14"},
		{ID: "4", Title: "D", Date: "2026-02-14"},
	}
	vm := testViewModel(events, february2026)
	vm.ViewYear = 2026
	vm.ViewMonth = 1

	grid := BuildGrid(vm)
	for _, c := range grid.Cells {
		if c.Date != "2026-02-14" || c.Muted {
			continue
		}
		if len(c.Pills) != 2 {
			t.Errorf("pills shown = %d, want 2", len(c.Pills))
		}
		if c.Overflow != 2 {
			t.Errorf("overflow = %d, want 2", c.Overflow)
		}
		return
	}
	t.Fatal("day cell for 2026-02-14 not found")
}

func TestBuildGridMutedCells(t *testing.T) {
	// April 2026 starts on a Wednesday, so its grid opens with muted cells
	// carrying the tail of March.
	vm := testViewModel([]Event{{ID: "x", Title: "Edge", Date: "2026-03-30"}}, february2026)
	vm.ViewYear = 2026
	vm.ViewMonth = 3 // April

	grid := BuildGrid(vm)
	if grid.MonthLabel != "April" {
		t.Errorf("month label = %q", grid.MonthLabel)
	}

	first := grid.Cells[0]
	if !first.Muted {
		t.Fatal("April 2026 grid should open with muted March cells")
	}
	if first.Month != 2 || first.Year != 2026 || first.Day != 29 {
		t.Errorf("leading muted cell = %d-%d-%d", first.Year, first.Month, first.Day)
	}

	for _, c := range grid.Cells {
		if c.Muted && (len(c.Pills) > 0 || c.HasEvents) {
			t.Errorf("muted cell %s carries events", c.Date)
		}
		if c.Muted && c.IsToday {
			t.Errorf("muted cell %s flagged as today", c.Date)
		}
	}
}

func TestBuildGridTodayAndSelection(t *testing.T) {
	vm := testViewModel(nil, february2026)
	vm.ViewYear = 2026
	vm.ViewMonth = 1
	vm.SelectDay(2026, 1, 14)

	grid := BuildGrid(vm)

	var today, selected int
	for _, c := range grid.Cells {
		if c.IsToday {
			today++
			if c.Date != "2026-02-10" {
				t.Errorf("today cell = %s", c.Date)
			}
		}
		if c.IsSelected {
			selected++
			if c.Date != "2026-02-14" {
				t.Errorf("selected cell = %s", c.Date)
			}
		}
	}
	if today != 1 {
		t.Errorf("today cells = %d, want 1", today)
	}
	if selected != 1 {
		t.Errorf("selected cells = %d, want 1", selected)
	}
}

func TestDateString(t *testing.T) {
	if got := DateString(2026, 1, 2); got != "2026-02-02" {
		t.Errorf("DateString = %q", got)
	}
	if got := DateString(2026, 11, 31); got != "2026-12-31" {
		t.Errorf("DateString = %q", got)
	}
}

func TestAgendaFor(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Morning Run", Date: "2026-02-02", Time: "07:00", Category: CategorySports, Location: "Track"},
		{ID: "b", Title: "Quiet One", Date: "2026-02-02", Category: CategoryOther},
		{ID: "c", Title: "Elsewhere", Date: "2026-02-03"},
	}
	vm := testViewModel(events, february2026)

	agenda := AgendaFor(vm, 2026, 1, 2)
	if agenda.Title != "Monday, February 2, 2026" {
		t.Errorf("title = %q", agenda.Title)
	}
	if len(agenda.Items) != 2 || agenda.Empty {
		t.Fatalf("items = %d, empty = %v", len(agenda.Items), agenda.Empty)
	}
	if agenda.Items[0].TimeLabel != "07:00" || agenda.Items[0].LocationLabel == "" {
		t.Errorf("first item = %+v", agenda.Items[0])
	}
	if agenda.Items[1].TimeLabel != "—" {
		t.Errorf("missing time should render a dash, got %q", agenda.Items[1].TimeLabel)
	}

	empty := AgendaFor(vm, 2026, 1, 5)
	if !empty.Empty || len(empty.Items) != 0 {
		t.Errorf("expected empty agenda, got %+v", empty)
	}
}
