package priorities

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type workMap map[string]int

func (w workMap) WorkPriority(workType string) int { return w[workType] }

func newAggregator(t *testing.T) *Aggregator {
	t.Helper()
	db, err := defs.Load("")
	require.NoError(t, err)
	a := NewAggregator(db, discardLogger())
	require.NoError(t, a.Initialize())
	return a
}

func weights(ps []*outfit.StatPriority) map[string]float64 {
	m := make(map[string]float64, len(ps))
	for _, sp := range ps {
		m[sp.Stat().Name] = sp.Weight()
	}
	return m
}

func sumWeights(ps []*outfit.StatPriority) float64 {
	var s float64
	for _, sp := range ps {
		s += sp.Weight()
	}
	return s
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		p, lo, hi int
		want      float64
	}{
		{3, 3, 3, 1},
		{1, 1, 4, 1},
		{4, 1, 4, 0},
		{2, 1, 3, 0.5},
	}
	for _, tt := range tests {
		got := NormalizePriority(tt.p, tt.lo, tt.hi)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizePriority(%d, %d, %d) = %v, want %v", tt.p, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestDeriveNoWork(t *testing.T) {
	a := newAggregator(t)
	assert.Empty(t, a.Derive(workMap{}))
	assert.Empty(t, a.Derive(workMap{defs.Mining: 0}))
}

func TestDeriveEqualPrioritiesAccumulate(t *testing.T) {
	a := newAggregator(t)
	ps := a.Derive(workMap{defs.Cleaning: 3, defs.Hauling: 3})

	// raw: MoveSpeed 2+2, WorkSpeedGlobal 1, CarryingCapacity 2
	w := weights(ps)
	require.Len(t, w, 3)
	assert.InDelta(t, 40.0/7, w[defs.MoveSpeed], 1e-9)
	assert.InDelta(t, 10.0/7, w[defs.WorkSpeedGlobal], 1e-9)
	assert.InDelta(t, 20.0/7, w[defs.CarryingCapacity], 1e-9)
	assert.InDelta(t, TotalWeight, sumWeights(ps), 1e-4)

	for _, sp := range ps {
		assert.Equal(t, outfit.Individual, sp.Assignment())
	}
}

func TestDeriveLeastPreferredWorkDropsOut(t *testing.T) {
	a := newAggregator(t)
	ps := a.Derive(workMap{defs.Mining: 1, defs.Research: 4})

	w := weights(ps)
	assert.InDelta(t, 5, w[defs.MiningSpeed], 1e-9)
	assert.InDelta(t, 5, w[defs.MiningYield], 1e-9)
	assert.InDelta(t, 0, w[defs.ResearchSpeed], 1e-9)
	assert.InDelta(t, TotalWeight, sumWeights(ps), 1e-4)
}

func TestDeriveSumIsTen(t *testing.T) {
	a := newAggregator(t)
	ps := a.Derive(workMap{
		defs.Doctor:       1,
		defs.Cooking:      2,
		defs.Hunting:      3,
		defs.Construction: 2,
		defs.Warden:       4,
	})
	require.NotEmpty(t, ps)
	assert.InDelta(t, TotalWeight, sumWeights(ps), 1e-4)
}

func TestDeriveOrderFollowsFirstSeen(t *testing.T) {
	a := newAggregator(t)
	ps := a.Derive(workMap{defs.Cleaning: 1, defs.Hauling: 1})

	var names []string
	for _, sp := range ps {
		names = append(names, sp.Stat().Name)
	}
	// Hauling is registered before Cleaning.
	assert.Equal(t, []string{defs.CarryingCapacity, defs.MoveSpeed, defs.WorkSpeedGlobal}, names)
}

func TestDeriveEmptyTablesSkipRescale(t *testing.T) {
	a := newAggregator(t)
	ps := a.Derive(workMap{defs.Patient: 1, defs.PatientBedRest: 1})
	assert.Empty(t, ps)
}

func TestWorktypeTableCreatedLazily(t *testing.T) {
	db, err := defs.Load("")
	require.NoError(t, err)
	a := NewAggregator(db, discardLogger())
	a.Load([]TableSnapshot{{WorkType: defs.Research, Entries: []EntrySnapshot{{Stat: defs.ResearchSpeed, Weight: 2}}}})

	entries := a.WorktypeTable(defs.Mining)
	require.Len(t, entries, 2)
	assert.Equal(t, defs.MiningSpeed, entries[0].Stat.Name)

	assert.Len(t, a.Snapshots(), 2)
}

func TestInitializeKeepsLoadedTables(t *testing.T) {
	db, err := defs.Load("")
	require.NoError(t, err)
	a := NewAggregator(db, discardLogger())
	missing := a.Load([]TableSnapshot{{
		WorkType: defs.Mining,
		Entries: []EntrySnapshot{
			{Stat: defs.MiningSpeed, Weight: 0.5},
			{Stat: "Removed", Weight: 1},
		},
	}})
	assert.Equal(t, []string{"Removed"}, missing)

	require.NoError(t, a.Initialize())
	entries := a.WorktypeTable(defs.Mining)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.5, entries[0].Weight)
}

func TestSnapshotsRoundTrip(t *testing.T) {
	a := newAggregator(t)
	snaps := a.Snapshots()
	assert.Len(t, snaps, 20)
	assert.Equal(t, defs.Firefighter, snaps[0].WorkType)

	db, err := defs.Load("")
	require.NoError(t, err)
	b := NewAggregator(db, discardLogger())
	assert.Empty(t, b.Load(snaps))
	assert.Equal(t, snaps, b.Snapshots())
}

func TestDefaultTable(t *testing.T) {
	db, err := defs.Load("")
	require.NoError(t, err)

	tbl, err := DefaultTable(defs.Cooking, db)
	require.NoError(t, err)
	require.Len(t, tbl.Entries, 4)
	assert.Equal(t, defs.FoodPoisonChance, tbl.Entries[1].Stat.Name)
	assert.Equal(t, outfit.Unwanted, tbl.Entries[1].Weight)

	tbl, err = DefaultTable("NoSuchWork", db)
	require.NoError(t, err)
	assert.Empty(t, tbl.Entries)
}
