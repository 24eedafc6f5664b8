package colony

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/scoring"
)

func sampleAgent() AgentState {
	return AgentState{
		ID:       "pawn-7",
		Name:     "Tynan",
		OutfitID: 3,
		Comfort:  outfit.TemperatureRange{Min: 12, Max: 30},
		Worn: []ItemState{
			{ID: "parka", Stats: map[string]float64{defs.InsulationCold: 30}, BodyPartGroups: []string{"Torso", "Arms"}, Layers: []string{"Shell"}},
			{ID: "tshirt", BodyPartGroups: []string{"Torso"}, Layers: []string{"OnSkin"}},
		},
		WorkPriorities:      map[string]int{defs.Mining: 2},
		SeasonalTemperature: -4,
		Thoughts:            []string{string(scoring.ThoughtDeadMansApparel)},
		LeatherMaterial:     "Leather_Human",
	}
}

func TestAgentAdapter(t *testing.T) {
	state := sampleAgent()
	a := state.Agent()

	assert.Equal(t, "pawn-7", a.ID())
	assert.Equal(t, 3, a.OutfitID())
	assert.Equal(t, outfit.TemperatureRange{Min: 12, Max: 30}, a.ComfortableTemperatureRange())
	assert.Equal(t, 2, a.WorkPriority(defs.Mining))
	assert.Equal(t, 0, a.WorkPriority(defs.Hauling))
	assert.Equal(t, -4.0, a.SeasonalTemperature())
	assert.True(t, a.CanGetThought(scoring.ThoughtDeadMansApparel))
	assert.False(t, a.CanGetThought(scoring.ThoughtLeatherApparelHappy))
	assert.Equal(t, "Leather_Human", a.LeatherMaterial())

	worn := a.WornItems()
	require.Len(t, worn, 2)
	assert.Equal(t, 30.0, worn[0].StatValue(defs.InsulationCold))
	assert.Equal(t, 0.0, worn[0].StatOffset(defs.InsulationCold))
}

func TestCanWearTogether(t *testing.T) {
	s := sampleAgent()
	a := s.Agent()
	duster := (&ItemState{ID: "duster", BodyPartGroups: []string{"Torso", "Legs"}, Layers: []string{"Shell"}}).Item()
	hat := (&ItemState{ID: "hat", BodyPartGroups: []string{"FullHead"}, Layers: []string{"Overhead"}}).Item()
	button := (&ItemState{ID: "button", BodyPartGroups: []string{"Torso"}, Layers: []string{"OnSkin"}}).Item()

	worn := a.WornItems()
	assert.False(t, a.CanWearTogether(duster, worn[0]), "same layer, shared torso")
	assert.True(t, a.CanWearTogether(duster, worn[1]), "different layers")
	assert.True(t, a.CanWearTogether(hat, worn[0]))
	assert.False(t, a.CanWearTogether(button, worn[1]))
}

func TestHTTPClientGetAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/agents/pawn-7":
			json.NewEncoder(w).Encode(sampleAgent())
		case "/api/v1/agents":
			json.NewEncoder(w).Encode([]AgentState{sampleAgent()})
		default:
			http.Error(w, "no such agent", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	ctx := context.Background()

	got, err := c.GetAgent(ctx, "pawn-7")
	require.NoError(t, err)
	assert.Equal(t, sampleAgent(), *got)

	all, err := c.ListAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = c.GetAgent(ctx, "ghost")
	assert.ErrorContains(t, err, "404")
}
