package events

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insativity/portal/internal/clubs"
	"github.com/insativity/portal/internal/store"
)

func fixedClock() time.Time {
	return time.Date(2026, time.February, 10, 12, 0, 0, 0, time.Local)
}

func setupService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	st := store.New(dir, clubs.DefaultDirectory(), fixedClock)
	return NewService(st), dir
}

func seedPartition(t *testing.T, dir, clubID string, events []store.Event) {
	t.Helper()
	raw, err := json.Marshal(events)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, clubID+"_events.json"), raw, 0o644))
}

func readPartition(t *testing.T, dir, clubID string) []store.Event {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, clubID+"_events.json"))
	require.NoError(t, err)
	var events []store.Event
	require.NoError(t, json.Unmarshal(raw, &events))
	return events
}

func validPayload() CreatePayload {
	return CreatePayload{
		Title:       "Robotics Workshop",
		Club:        "IEEE",
		Date:        "2026-03-01",
		Time:        "14:00",
		Location:    "Lab 3",
		Description: "Hands-on intro to line followers.",
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Robotics Workshop", created.Title)
	assert.Equal(t, store.StatusPublished, created.Status, "created event carries freshly computed status")
	assert.Equal(t, 0, created.Participants)
	assert.False(t, created.Featured)

	got := svc.Get(ctx, created.ID)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)

	persisted := readPartition(t, dir, "ieee")
	require.Len(t, persisted, 1)
	assert.Empty(t, persisted[0].Status, "status must not be persisted")
}

func TestCreateMissingFields(t *testing.T) {
	svc, _ := setupService(t)

	p := validPayload()
	p.Time = ""
	p.Description = ""

	_, err := svc.Create(context.Background(), p)
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"time", "description"}, verr.Missing)
}

func TestCreateUnresolvableClub(t *testing.T) {
	svc, _ := setupService(t)

	p := validPayload()
	p.Club = "Knitting Circle"

	_, err := svc.Create(context.Background(), p)
	var cerr *store.ClubResolutionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Knitting Circle", cerr.Name)
}

func TestCreateAllocatesSequentialIDs(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		p := validPayload()
		created, err := svc.Create(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, want, created.ID)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	title := "Robotics Workshop v2"
	date := "2025-01-01"
	updated, err := svc.Update(ctx, created.ID, Patch{Title: &title, Date: &date})
	require.NoError(t, err)

	assert.Equal(t, "Robotics Workshop v2", updated.Title)
	assert.Equal(t, "Lab 3", updated.Location, "unpatched fields retained")
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, store.StatusFinished, updated.Status, "status recomputed from patched date")
}

func TestUpdateMovesEventBetweenPartitions(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	club := "ACM"
	updated, err := svc.Update(ctx, created.ID, Patch{Club: &club})
	require.NoError(t, err)
	assert.Equal(t, "ACM", updated.Club)

	oldPartition := readPartition(t, dir, "ieee")
	assert.Empty(t, oldPartition, "old partition must no longer hold the event")

	newPartition := readPartition(t, dir, "acm")
	require.Len(t, newPartition, 1)
	assert.Equal(t, created.ID, newPartition[0].ID)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := setupService(t)

	title := "x"
	_, err := svc.Update(context.Background(), 42, Patch{Title: &title})
	var nferr *store.NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, 42, nferr.ID)
}

func TestUpdateDetectsPartitionDivergence(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	// The record sits in the ieee partition file but claims to belong to
	// ACM, so the write path looks for it in a partition that lacks it.
	seedPartition(t, dir, "ieee", []store.Event{
		{ID: 5, Title: "Stray", Club: "ACM", Date: "2026-04-01", Time: "10:00"},
	})

	title := "x"
	_, err := svc.Update(ctx, 5, Patch{Title: &title})
	var nferr *store.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestDeleteDetectsPartitionDivergence(t *testing.T) {
	svc, dir := setupService(t)

	seedPartition(t, dir, "ieee", []store.Event{
		{ID: 6, Title: "Stray", Club: "ACM", Date: "2026-04-01", Time: "10:00"},
	})

	err := svc.Delete(context.Background(), 6)
	var nferr *store.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestDelete(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Nil(t, svc.Get(ctx, created.ID))
	assert.Empty(t, svc.GetAll(ctx))
	assert.Empty(t, readPartition(t, dir, "ieee"))
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.Delete(context.Background(), 7)
	var nferr *store.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestQueryFilters(t *testing.T) {
	svc, dir := setupService(t)
	ctx := context.Background()

	seedPartition(t, dir, "ieee", []store.Event{
		{ID: 1, Title: "Future", Club: "IEEE", Date: "2026-03-01", Time: "10:00", Featured: true},
		{ID: 2, Title: "Past", Club: "IEEE", Date: "2025-01-01", Time: "10:00"},
	})
	seedPartition(t, dir, "acm", []store.Event{
		{ID: 3, Title: "Other", Club: "ACM", Date: "2026-03-05", Time: "10:00"},
	})

	assert.Len(t, svc.GetAll(ctx), 3)
	assert.Len(t, svc.ByClub(ctx, "IEEE"), 2)
	assert.Empty(t, svc.ByClub(ctx, "ieee"), "club query is exact-match on free text")

	published := svc.ByStatus(ctx, store.StatusPublished)
	assert.Len(t, published, 2)

	ieeePublished := svc.ByClubAndStatus(ctx, "IEEE", store.StatusPublished)
	require.Len(t, ieeePublished, 1)
	assert.Equal(t, 1, ieeePublished[0].ID)

	featured := svc.Featured(ctx)
	require.Len(t, featured, 1)
	assert.Equal(t, 1, featured[0].ID)
}
