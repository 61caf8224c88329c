package store

// Status is the derived lifecycle label of an event. It is computed on every
// load from the event's date and time and never written to disk.
type Status string

const (
	// StatusPublished marks events whose date-time lies in the future.
	StatusPublished Status = "published"
	// StatusFinished marks events whose date-time has passed.
	StatusFinished Status = "finished"
)

// Event is a club activity as persisted in a club's partition file. Date is
// "YYYY-MM-DD" and Time is "HH:MM", both in local wall-clock time. Status is
// derived at load time and stripped before persisting.
type Event struct {
	ID              int    `json:"id"`
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
	Status          Status `json:"status,omitempty"`
}

// stripped returns a copy without the computed status, suitable for writing.
func (e Event) stripped() Event {
	e.Status = ""
	return e
}
