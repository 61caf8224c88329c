package calendar

import "context"

// Category classifies an event for presentation only. Unknown values fall
// back to CategoryOther.
type Category string

const (
	CategoryAcademic Category = "academic"
	CategorySports   Category = "sports"
	CategoryCulture  Category = "culture"
	CategoryCareer   Category = "career"
	CategorySocial   Category = "social"
	CategoryOther    Category = "other"
)

// Style carries the presentation attributes of a category: the pill CSS
// class, the label color, and the badge class/label pair.
type Style struct {
	Pill       string
	LabelColor string
	BadgeClass string
	BadgeLabel string
}

var categoryStyles = map[Category]Style{
	CategoryAcademic: {Pill: "pill-blue", LabelColor: "#2b3e4e", BadgeClass: "badge-blue", BadgeLabel: "Academic"},
	CategorySports:   {Pill: "pill-green", LabelColor: "#3B6B35", BadgeClass: "badge-green", BadgeLabel: "Sports"},
	CategoryCulture:  {Pill: "pill-purple", LabelColor: "#5B3FA6", BadgeClass: "badge-purple", BadgeLabel: "Cultural"},
	CategoryCareer:   {Pill: "pill-gold", LabelColor: "#ad9d61", BadgeClass: "badge-gold", BadgeLabel: "Career"},
	CategorySocial:   {Pill: "pill-red", LabelColor: "#820608", BadgeClass: "badge-red", BadgeLabel: "Social"},
	CategoryOther:    {Pill: "pill-grey", LabelColor: "#6b7280", BadgeClass: "badge-grey", BadgeLabel: "Other"},
}

// Normalize maps an arbitrary category string onto the fixed set.
func Normalize(category string) Category {
	c := Category(category)
	if _, ok := categoryStyles[c]; ok {
		return c
	}
	return CategoryOther
}

// Style returns the presentation attributes for the category.
func (c Category) Style() Style {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return categoryStyles[CategoryOther]
}

// Event is the calendar's working representation of an activity. ID is an
// opaque token: the local store issues generated string tokens, the remote
// backend exposes numeric ids rendered as strings.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Category    Category `json:"category"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Club        string   `json:"club,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// EventSource is the storage backend behind the calendar: either the local
// key-value store or the remote event service.
type EventSource interface {
	Load(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, evt Event) (Event, error)
	Delete(ctx context.Context, id string) error
}
