package calendar

import (
	"fmt"
	"time"
)

// maxPills is the number of event titles shown inside one day cell before
// the overflow indicator takes over.
const maxPills = 2

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Pill is one event title rendered inside a day cell.
type Pill struct {
	Title string
	Class string
}

// Cell is one day of the rendered month grid. Muted cells belong to the
// adjacent month, never carry pills, and are not interactive.
type Cell struct {
	Year  int
	Month int // 0-based
	Day   int
	Date  string // YYYY-MM-DD

	Muted      bool
	IsToday    bool
	IsSelected bool
	HasEvents  bool

	Pills    []Pill
	Overflow int // events beyond maxPills, 0 when none
}

// Grid is the full projection of one month: whole weeks only, with
// leading/trailing days of the adjacent months filled in as muted cells.
type Grid struct {
	Year       int
	Month      int // 0-based
	MonthLabel string
	YearLabel  string
	Cells      []Cell
}

// BuildGrid projects the view model's state into a month grid. The cell
// count is always a multiple of seven.
func BuildGrid(vm *ViewModel) Grid {
	year, month := vm.ViewYear, vm.ViewMonth
	today := vm.now()

	firstWeekday := int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local).Weekday())
	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.Local).Day()
	daysInPrev := time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.Local).Day()

	totalCells := ((firstWeekday + daysInMonth + 6) / 7) * 7

	byDate := make(map[string][]Event, len(vm.Events))
	for _, evt := range vm.Events {
		byDate[evt.Date] = append(byDate[evt.Date], evt)
	}

	grid := Grid{
		Year:       year,
		Month:      month,
		MonthLabel: monthNames[month],
		YearLabel:  fmt.Sprintf("%d", year),
		Cells:      make([]Cell, 0, totalCells),
	}

	for i := 0; i < totalCells; i++ {
		var cell Cell

		switch {
		case i < firstWeekday:
			// Previous month overflow
			cell.Day = daysInPrev - firstWeekday + 1 + i
			cell.Year, cell.Month = rollMonth(year, month, -1)
			cell.Muted = true
		case i >= firstWeekday+daysInMonth:
			// Next month overflow
			cell.Day = i - firstWeekday - daysInMonth + 1
			cell.Year, cell.Month = rollMonth(year, month, 1)
			cell.Muted = true
		default:
			cell.Day = i - firstWeekday + 1
			cell.Year, cell.Month = year, month
		}

		cell.Date = DateString(cell.Year, cell.Month, cell.Day)
		dayEvents := byDate[cell.Date]

		cell.IsToday = !cell.Muted &&
			cell.Day == today.Day() &&
			cell.Month == int(today.Month())-1 &&
			cell.Year == today.Year()

		cell.IsSelected = vm.Selected != nil &&
			vm.Selected.Year == cell.Year &&
			vm.Selected.Month == cell.Month &&
			vm.Selected.Day == cell.Day

		if !cell.Muted {
			cell.HasEvents = len(dayEvents) > 0
			for _, evt := range dayEvents {
				if len(cell.Pills) == maxPills {
					break
				}
				cell.Pills = append(cell.Pills, Pill{
					Title: evt.Title,
					Class: evt.Category.Style().Pill,
				})
			}
			if len(dayEvents) > maxPills {
				cell.Overflow = len(dayEvents) - maxPills
			}
		}

		grid.Cells = append(grid.Cells, cell)
	}

	return grid
}

// AgendaItem is one event of the selected day's panel.
type AgendaItem struct {
	Event
	DotClass      string
	TimeLabel     string
	LocationLabel string
}

// Agenda is the day-selection panel: a dated heading plus the day's events.
// Empty is set when no events fall on the selected day so the caller can
// render the explicit placeholder.
type Agenda struct {
	Title string
	Date  string
	Items []AgendaItem
	Empty bool
}

// AgendaFor lists the events of one day with display labels. Month is
// 0-based.
func AgendaFor(vm *ViewModel, year, month, day int) Agenda {
	date := DateString(year, month, day)
	weekday := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.Local).Weekday()

	agenda := Agenda{
		Title: fmt.Sprintf("%s, %s %d, %d", weekdayNames[weekday], monthNames[month], day, year),
		Date:  date,
	}

	for _, evt := range vm.Events {
		if evt.Date != date {
			continue
		}
		item := AgendaItem{
			Event:     evt,
			DotClass:  evt.Category.Style().Pill,
			TimeLabel: evt.Time,
		}
		if item.TimeLabel == "" {
			item.TimeLabel = "—"
		}
		if evt.Location != "" {
			item.LocationLabel = "📍 " + evt.Location
		}
		agenda.Items = append(agenda.Items, item)
	}
	agenda.Empty = len(agenda.Items) == 0
	return agenda
}

// DateString renders a zero-padded YYYY-MM-DD date. Month is 0-based.
func DateString(year, month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, month+1, day)
}

func rollMonth(year, month, delta int) (int, int) {
	month += delta
	if month < 0 {
		return year - 1, 11
	}
	if month > 11 {
		return year + 1, 0
	}
	return year, month
}
