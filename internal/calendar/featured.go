package calendar

import (
	"sort"
	"strings"
	"time"
)

// upcomingLimit caps the featured/upcoming list.
const upcomingLimit = 8

// Card is one entry of the featured/upcoming list.
type Card struct {
	Event
	DateLabel  string
	BadgeClass string
	BadgeLabel string
	Summary    string
}

// UpcomingList is the rendered featured panel. Placeholder is set instead of
// Cards when nothing matches, so the caller shows an explicit message rather
// than an empty list.
type UpcomingList struct {
	Cards       []Card
	Placeholder string
}

// Upcoming filters events dated today or later, optionally narrowed by a
// case-insensitive substring match against title, location, or category,
// sorted ascending by date and capped to the first eight.
func Upcoming(events []Event, filter string, now time.Time) []Event {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	needle := strings.ToLower(filter)

	var matched []Event
	for _, evt := range events {
		when, err := time.ParseInLocation("2006-01-02", evt.Date, now.Location())
		if err != nil || when.Before(startOfToday) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(evt.Title), needle) &&
			!strings.Contains(strings.ToLower(evt.Location), needle) &&
			!strings.Contains(strings.ToLower(string(evt.Category)), needle) {
			continue
		}
		matched = append(matched, evt)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date < matched[j].Date
	})

	if len(matched) > upcomingLimit {
		matched = matched[:upcomingLimit]
	}
	return matched
}

// BuildUpcoming renders the featured panel for the view model's working
// collection.
func BuildUpcoming(vm *ViewModel, filter string) UpcomingList {
	events := Upcoming(vm.Events, filter, vm.now())
	if len(events) == 0 {
		return UpcomingList{Placeholder: "No events match your search."}
	}

	list := UpcomingList{Cards: make([]Card, 0, len(events))}
	for _, evt := range events {
		style := evt.Category.Style()
		list.Cards = append(list.Cards, Card{
			Event:      evt,
			DateLabel:  dateLabel(evt.Date),
			BadgeClass: style.BadgeClass,
			BadgeLabel: style.BadgeLabel,
			Summary:    truncate(evt.Description, 60),
		})
	}
	return list
}

// dateLabel renders "2 Feb 2026" from a YYYY-MM-DD date; unparsable dates
// pass through untouched.
func dateLabel(date string) string {
	when, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return when.Format("2 Jan 2006")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
