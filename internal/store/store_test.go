package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/priorities"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleOutfit(id int, label string) outfit.Snapshot {
	def := 1.0
	return outfit.Snapshot{
		ID: id,
		Settings: outfit.Settings{
			Label:               label,
			Filter:              outfit.Filter{AllowAll: true, ForbiddenBodyParts: []string{"Eyes"}},
			PenaltyWornByCorpse: true,
			TargetTemperatures:  outfit.TemperatureRange{Min: -10, Max: 30},
		},
		StatPriorities: []outfit.PrioritySnapshot{
			{Stat: "MoveSpeed", Weight: 2, Assignment: outfit.Manual},
			{Stat: "WorkSpeedGlobal", Weight: 1.5, Default: &def, Assignment: outfit.Override},
		},
	}
}

func TestEventConstants(t *testing.T) {
	assert.Equal(t, "outfit.created", EventOutfitCreated)
	assert.Equal(t, "outfit.priority.reset", EventPriorityReset)
}

func TestSQLiteOutfitRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleOutfit(3, "Miner")
	require.NoError(t, s.SaveOutfit(ctx, want))

	got, err := s.GetOutfit(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestSQLiteGetOutfitMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetOutfit(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteSaveOutfitUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOutfit(ctx, sampleOutfit(2, "Worker")))
	require.NoError(t, s.SaveOutfit(ctx, sampleOutfit(1, "Anything")))
	updated := sampleOutfit(2, "Laborer")
	updated.StatPriorities = nil
	require.NoError(t, s.SaveOutfit(ctx, updated))

	all, err := s.ListOutfits(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, "Laborer", all[1].Settings.Label)
	assert.Empty(t, all[1].StatPriorities)
}

func TestSQLiteDeleteOutfit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOutfit(ctx, sampleOutfit(1, "Anything")))
	require.NoError(t, s.DeleteOutfit(ctx, 1))
	require.NoError(t, s.DeleteOutfit(ctx, 1), "deleting twice is not an error")

	all, err := s.ListOutfits(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteWorktypeTablesKeepOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tables := []priorities.TableSnapshot{
		{WorkType: "Mining", Entries: []priorities.EntrySnapshot{{Stat: "MiningSpeed", Weight: 2}}},
		{WorkType: "Doctor", Entries: []priorities.EntrySnapshot{{Stat: "MedicalTendSpeed", Weight: 1}, {Stat: "MoveSpeed", Weight: 0.5}}},
		{WorkType: "Patient", Entries: []priorities.EntrySnapshot{}},
	}
	require.NoError(t, s.SaveWorktypeTables(ctx, tables))

	got, err := s.ListWorktypeTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, tables, got)

	// saving replaces the whole set
	require.NoError(t, s.SaveWorktypeTables(ctx, tables[1:2]))
	got, err = s.ListWorktypeTables(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Doctor", got[0].WorkType)
}

func TestSQLiteOutfitEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &OutfitEvent{OutfitID: 4, Event: EventOutfitCreated, Actor: "admin"}
	require.NoError(t, s.CreateOutfitEvent(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &OutfitEvent{
		OutfitID: 4,
		Event:    EventPriorityReset,
		Payload:  map[string]interface{}{"stat": "MoveSpeed"},
	}
	require.NoError(t, s.CreateOutfitEvent(ctx, second))
	require.NoError(t, s.CreateOutfitEvent(ctx, &OutfitEvent{OutfitID: 5, Event: EventOutfitDeleted}))

	events, err := s.GetOutfitEvents(ctx, 4, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second.ID, events[0].ID, "newest first")
	assert.Equal(t, "MoveSpeed", events[0].Payload["stat"])
	assert.Equal(t, first.ID, events[1].ID)
	assert.Equal(t, "admin", events[1].Actor)
	assert.Nil(t, events[1].Payload)

	limited, err := s.GetOutfitEvents(ctx, 4, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteFileDatabase(t *testing.T) {
	path := t.TempDir() + "/wardrobe.db"
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveOutfit(ctx, sampleOutfit(7, "Nudist")))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.GetOutfit(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nudist", got.Settings.Label)
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
