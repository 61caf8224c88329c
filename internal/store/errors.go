package store

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields missing from a write payload.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return "invalid payload"
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ClubResolutionError reports a club name that maps to no canonical club.
type ClubResolutionError struct {
	Name string
}

func (e *ClubResolutionError) Error() string {
	if strings.TrimSpace(e.Name) == "" {
		return "club name is empty"
	}
	return fmt.Sprintf("unknown club %q", e.Name)
}

// NotFoundError reports a referenced event id that does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("event %d not found", e.ID)
}

// PersistenceError wraps an encode or durable-write failure for a partition.
type PersistenceError struct {
	ClubID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist partition %s: %v", e.ClubID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
