package scoring

import (
	"testing"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

func insulated(id string, cold, heat float64) *testItem {
	return &testItem{id: id, values: map[string]float64{defs.InsulationCold: cold, defs.InsulationHeat: heat}}
}

func overrideSettings(lo, hi float64) outfit.Settings {
	s := outfit.New(1, "t").Settings()
	s.TargetTemperaturesOverride = true
	s.TargetTemperatures = outfit.TemperatureRange{Min: lo, Max: hi}
	return s
}

func TestTemperatureScoreSimpleMode(t *testing.T) {
	s := outfit.New(1, "t").Settings()
	agent := &testAgent{id: "a"}
	item := insulated("parka", 15, 6)

	tests := []struct {
		warmth NeededWarmth
		want   float64
	}{
		{WarmthAny, 0},
		{WarmthWarm, 2.5},
		{WarmthCool, 1.6},
	}
	for _, tt := range tests {
		t.Run(tt.warmth.String(), func(t *testing.T) {
			approx(t, tt.want, TemperatureScore(s, agent, item, tt.warmth))
		})
	}
}

func TestTemperatureScoreTargetAlreadyMet(t *testing.T) {
	s := overrideSettings(0, 30)
	agent := &testAgent{id: "a", comfort: outfit.TemperatureRange{Min: -10, Max: 40}}

	approx(t, 0, TemperatureScore(s, agent, insulated("shirt", 0, 0), WarmthAny))
	approx(t, 0, TemperatureScore(s, agent, insulated("parka", 20, 0), WarmthWarm))
}

func TestTemperatureScoreColdImprovement(t *testing.T) {
	s := overrideSettings(0, 30)
	agent := &testAgent{id: "a", comfort: outfit.TemperatureRange{Min: 10, Max: 30}}

	// cold deficit 10 closed entirely
	approx(t, 2, TemperatureScore(s, agent, insulated("parka", 10, 0), WarmthAny))
	// half closed
	approx(t, 1, TemperatureScore(s, agent, insulated("jacket", 5, 0), WarmthAny))
	// past the target scores no more than closing the gap
	approx(t, 2, TemperatureScore(s, agent, insulated("arctic", 40, 0), WarmthAny))
}

func TestTemperatureScoreHeatImprovement(t *testing.T) {
	s := overrideSettings(0, 40)
	agent := &testAgent{id: "a", comfort: outfit.TemperatureRange{Min: -5, Max: 20}}

	// heat deficit 20 closed entirely
	approx(t, 3, TemperatureScore(s, agent, insulated("duster", 0, 20), WarmthAny))
}

func TestTemperatureScoreWornItem(t *testing.T) {
	s := overrideSettings(0, 30)
	parka := insulated("parka", 10, 0)
	// comfort already includes the parka
	agent := &testAgent{id: "a", comfort: outfit.TemperatureRange{Min: 0, Max: 30}, worn: []Item{parka}}

	approx(t, 2, TemperatureScore(s, agent, parka, WarmthAny))
}

func TestTemperatureScoreRemovesIncompatibleWorn(t *testing.T) {
	s := overrideSettings(0, 30)
	jacket := insulated("jacket", 5, 0)
	agent := &testAgent{
		id:           "a",
		comfort:      outfit.TemperatureRange{Min: 5, Max: 30},
		worn:         []Item{jacket},
		incompatible: map[string]bool{"jacket": true},
	}

	// taking the jacket off costs 5, the parka gains 10: net 5 closer
	approx(t, 1, TemperatureScore(s, agent, insulated("parka", 10, 0), WarmthAny))
	// a like-for-like swap gains nothing
	approx(t, 0, TemperatureScore(s, agent, insulated("coat", 5, 0), WarmthAny))

	// a compatible jacket stays on
	agent.incompatible = nil
	approx(t, 1, TemperatureScore(s, agent, insulated("coat", 5, 0), WarmthAny))
}

func TestTemperatureScoreLosingInsulationIsNegative(t *testing.T) {
	s := overrideSettings(0, 30)
	jacket := insulated("jacket", 10, 0)
	agent := &testAgent{
		id:           "a",
		comfort:      outfit.TemperatureRange{Min: 0, Max: 30},
		worn:         []Item{jacket},
		incompatible: map[string]bool{"jacket": true},
	}

	approx(t, -2, TemperatureScore(s, agent, insulated("shirt", 0, 0), WarmthAny))
}

func TestTemperatureScoreAutoTemp(t *testing.T) {
	s := overrideSettings(-100, 100)
	s.AutoTemp = true
	s.AutoTempOffset = 5
	agent := &testAgent{id: "a", comfort: outfit.TemperatureRange{Min: 20, Max: 26}, seasonal: 20}

	// target [15,25]: cold deficit 5 closed by 5 degrees of insulation
	approx(t, 1, TemperatureScore(s, agent, insulated("jacket", 5, 0), WarmthAny))
}

func TestScorerStoresSeasonalTarget(t *testing.T) {
	f := newFixture(t)
	f.outfit.SetAutoTemp(true)
	f.agent.seasonal = -10

	f.scorer.ApparelScoreRaw(f.agent, moveSpeedItem(1), WarmthAny)

	got := f.outfit.Settings().TargetTemperatures
	want := outfit.TemperatureRange{Min: -30, Max: 10}
	if got != want {
		t.Errorf("target temperatures = %+v, want %+v", got, want)
	}
}

func TestSeasonalTarget(t *testing.T) {
	got := SeasonalTarget(12.5, 20)
	if got.Min != -7.5 || got.Max != 32.5 {
		t.Errorf("SeasonalTarget = %+v", got)
	}
}
