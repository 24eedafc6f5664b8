package outfit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
)

func TestGenerateStartingOutfitsVanilla(t *testing.T) {
	stats := testStats(t)
	db := NewDatabase()
	require.NoError(t, GenerateStartingOutfits(db, stats, true))

	assert.Equal(t, 20, db.Len())

	anything, ok := db.ByLabel("Anything")
	require.True(t, ok)
	assert.Equal(t, 1, anything.ID())
	assert.True(t, anything.Settings().AutoWorkPriorities)

	ps := anything.StatPriorities()
	require.Len(t, ps, 4)
	assert.Equal(t, defs.MoveSpeed, ps[0].Stat().Name, "generated entries keep table order")
	for _, sp := range ps {
		assert.Equal(t, Automatic, sp.Assignment())
	}

	worker, ok := db.ByLabel("Worker")
	require.True(t, ok)
	assert.False(t, worker.Settings().Filter.AllowWornByCorpse)

	nudist, ok := db.ByLabel("Nudist")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"Legs", "Torso"}, nudist.Settings().Filter.ForbiddenBodyParts)
	assert.True(t, nudist.Settings().AutoWorkPriorities)

	soldier, ok := db.ByLabel("Soldier")
	require.True(t, ok)
	sp, ok := soldier.StatPriority(defs.AimingDelayFactor)
	require.True(t, ok)
	assert.Equal(t, Unwanted, sp.Weight())

	doctor, ok := db.ByLabel("Doctor")
	require.True(t, ok)
	assert.False(t, doctor.Settings().AutoWorkPriorities)
}

func TestGenerateStartingOutfitsSkipsVanilla(t *testing.T) {
	stats := testStats(t)
	db := NewDatabase()
	require.NoError(t, GenerateStartingOutfits(db, stats, false))

	assert.Equal(t, 16, db.Len())
	for _, label := range []string{"Anything", "Worker", "Soldier", "Nudist"} {
		_, ok := db.ByLabel(label)
		assert.False(t, ok, "vanilla outfit %s should be skipped", label)
	}
}

func TestGenerateStartingOutfitsUnknownStat(t *testing.T) {
	stats := defs.NewDatabase()
	_, err := stats.AddStat(defs.Stat{Name: defs.MoveSpeed, Category: defs.CategoryBasicsPawn})
	require.NoError(t, err)

	err = GenerateStartingOutfits(NewDatabase(), stats, true)
	assert.ErrorIs(t, err, ErrUnknownStat)
}

func TestFromLegacy(t *testing.T) {
	stats := testStats(t)

	tests := []struct {
		label    string
		first    string
		count    int
		autoWork bool
	}{
		{"Worker", defs.MoveSpeed, 2, false},
		{"Soldier", defs.ShootingAccuracyPawn, 11, false},
		{"Nudist", defs.MoveSpeed, 2, true},
		{"Something custom", defs.MoveSpeed, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			filter := Filter{Tags: []string{"Armor"}}
			o, err := FromLegacy(Legacy{ID: 5, Label: tt.label, Filter: filter}, stats)
			require.NoError(t, err)

			assert.Equal(t, 5, o.ID())
			assert.Equal(t, tt.label, o.Label())
			assert.Equal(t, filter, o.Settings().Filter)
			assert.Equal(t, tt.autoWork, o.Settings().AutoWorkPriorities)
			ps := o.StatPriorities()
			require.Len(t, ps, tt.count)
			assert.Equal(t, tt.first, ps[0].Stat().Name)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"unwanted", Unwanted},
		{"Desired", Desired},
		{" neutral ", Neutral},
		{"1.5", 1.5},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseLevel("lots")
	assert.Error(t, err)
}

func TestLevelJSON(t *testing.T) {
	var body struct {
		Named   Level `json:"named"`
		Numeric Level `json:"numeric"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"named":"wanted","numeric":-0.5}`), &body))
	assert.Equal(t, Level(Wanted), body.Named)
	assert.Equal(t, Level(-0.5), body.Numeric)

	assert.Error(t, json.Unmarshal([]byte(`{"named":"lots"}`), &body))
}
