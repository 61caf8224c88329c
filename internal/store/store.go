package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/insativity/portal/internal/clubs"
)

// Store owns the authoritative event collection, partitioned by club. Each
// club's events live in a single JSON file named <clubID>_events.json under
// the data directory. The in-memory collection is a snapshot of the last
// load; mutating callers are expected to reload after writing.
type Store struct {
	dataDir   string
	directory *clubs.Directory
	now       func() time.Time

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	events []Event
}

// New creates a file-backed store rooted at dataDir. A nil clock defaults to
// time.Now; tests inject a fixed clock to pin status derivation.
func New(dataDir string, directory *clubs.Directory, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		dataDir:   dataDir,
		directory: directory,
		now:       clock,
		locks:     make(map[string]*sync.Mutex),
	}
}

// LoadAll re-reads every club partition, recomputes each event's status
// against the current clock, and returns the union. Missing or malformed
// partition files contribute no events and no error. The returned slice is
// the store's new snapshot; callers must not mutate it.
func (s *Store) LoadAll(ctx context.Context) []Event {
	defer observeStore(ctx, "store.load_all")()

	today := s.startOfToday()
	var all []Event
	for _, clubID := range s.directory.IDs() {
		for _, evt := range s.readPartitionFile(clubID) {
			evt.Status = statusAt(evt.Date, evt.Time, today)
			all = append(all, evt)
		}
	}

	s.mu.Lock()
	s.events = all
	s.mu.Unlock()
	return all
}

// Events returns the snapshot from the most recent load.
func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// ResolveClubID maps a club display name to its canonical identifier,
// ignoring case and surrounding whitespace.
func (s *Store) ResolveClubID(name string) (string, error) {
	id, ok := s.directory.Resolve(name)
	if !ok {
		return "", &ClubResolutionError{Name: name}
	}
	return id, nil
}

// NextID allocates the next event id: one past the largest id in the current
// snapshot. Safe only under the single-writer assumption.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, evt := range s.events {
		if evt.ID > maxID {
			maxID = evt.ID
		}
	}
	return maxID + 1
}

// ReadPartition returns the raw persisted events of one club. Missing,
// unreadable, or malformed files degrade to an empty partition.
func (s *Store) ReadPartition(ctx context.Context, clubID string) []Event {
	defer observeStore(ctx, "store.read_partition")()

	lock := s.partitionLock(clubID)
	lock.Lock()
	defer lock.Unlock()
	return s.readPartitionFile(clubID)
}

// WritePartition serializes events (status stripped) and atomically replaces
// the club's partition file.
func (s *Store) WritePartition(ctx context.Context, clubID string, events []Event) error {
	defer observeStore(ctx, "store.write_partition")()

	records := make([]Event, len(events))
	for i, evt := range events {
		records[i] = evt.stripped()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return &PersistenceError{ClubID: clubID, Err: fmt.Errorf("encode: %w", err)}
	}

	lock := s.partitionLock(clubID)
	lock.Lock()
	defer lock.Unlock()

	path := s.partitionPath(clubID)
	tmp, err := os.CreateTemp(s.dataDir, clubID+"_events.*.tmp")
	if err != nil {
		return &PersistenceError{ClubID: clubID, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{ClubID: clubID, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{ClubID: clubID, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{ClubID: clubID, Err: err}
	}
	return nil
}

// StatusOf derives the lifecycle label for an event at the given date and
// time: published while the event lies strictly after the start of today,
// finished otherwise. Pure given a fixed clock.
func (s *Store) StatusOf(date, timeOfDay string) Status {
	return statusAt(date, timeOfDay, s.startOfToday())
}

// HealthCheck verifies the data directory is accessible.
func (s *Store) HealthCheck(ctx context.Context) error {
	info, err := os.Stat(s.dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dataDir)
	}
	return nil
}

func (s *Store) readPartitionFile(clubID string) []Event {
	path := s.partitionPath(clubID)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		log.Printf("[WARN] skipping malformed partition %s: %v", path, err)
		return nil
	}
	return events
}

func (s *Store) partitionPath(clubID string) string {
	return filepath.Join(s.dataDir, clubID+"_events.json")
}

func (s *Store) partitionLock(clubID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[clubID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[clubID] = lock
	}
	return lock
}

func (s *Store) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func statusAt(date, timeOfDay string, startOfToday time.Time) Status {
	when, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, startOfToday.Location())
	if err != nil {
		when, err = time.ParseInLocation("2006-01-02", date, startOfToday.Location())
		if err != nil {
			return StatusFinished
		}
	}
	if when.After(startOfToday) {
		return StatusPublished
	}
	return StatusFinished
}
