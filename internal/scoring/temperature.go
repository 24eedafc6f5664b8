package scoring

import (
	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

// insulation is an item's effect on the comfortable range: Cold lowers the
// minimum, Heat raises the maximum.
type insulation struct {
	Cold float64
	Heat float64
}

func insulationOf(item Item) insulation {
	return insulation{
		Cold: item.StatValue(defs.InsulationCold),
		Heat: item.StatValue(defs.InsulationHeat),
	}
}

func (r insulation) addTo(t outfit.TemperatureRange) outfit.TemperatureRange {
	return outfit.TemperatureRange{Min: t.Min - r.Cold, Max: t.Max + r.Heat}
}

func (r insulation) removeFrom(t outfit.TemperatureRange) outfit.TemperatureRange {
	return outfit.TemperatureRange{Min: t.Min + r.Cold, Max: t.Max - r.Heat}
}

// SeasonalTarget is the target range centred on the seasonal temperature.
func SeasonalTarget(seasonal float64, offset int) outfit.TemperatureRange {
	return outfit.TemperatureRange{Min: seasonal - float64(offset), Max: seasonal + float64(offset)}
}

// deficits returns how many degrees the range falls short of the target on
// the cold and on the hot side. Both are zero or positive.
func deficits(r, target outfit.TemperatureRange) (cold, heat float64) {
	return max(r.Min-target.Min, 0), max(target.Max-r.Max, 0)
}

func isWorn(agent Agent, item Item) bool {
	for _, w := range agent.WornItems() {
		if w.ID() == item.ID() {
			return true
		}
	}
	return false
}

// candidateRanges returns the agent's comfortable range without and with the
// item. For items not yet worn, worn items that cannot be kept alongside the
// candidate are taken off first.
func candidateRanges(agent Agent, item Item) (current, candidate outfit.TemperatureRange) {
	comfort := agent.ComfortableTemperatureRange()
	own := insulationOf(item)
	if isWorn(agent, item) {
		return own.removeFrom(comfort), comfort
	}
	candidate = comfort
	for _, w := range agent.WornItems() {
		if !agent.CanWearTogether(item, w) {
			candidate = insulationOf(w).removeFrom(candidate)
		}
	}
	return comfort, own.addTo(candidate)
}

// TemperatureScore is the temperature contribution for an item. With target
// temperatures set it scores how much closer the item brings the agent to
// the target; otherwise it follows the climate hint.
func TemperatureScore(settings outfit.Settings, agent Agent, item Item, warmth NeededWarmth) float64 {
	if !settings.TargetTemperaturesOverride {
		switch warmth {
		case WarmthWarm:
			return NeedWarmthCurve.Evaluate(item.StatValue(defs.InsulationCold))
		case WarmthCool:
			return NeedWarmthCurve.Evaluate(item.StatValue(defs.InsulationHeat))
		}
		return 0
	}

	target := settings.TargetTemperatures
	if settings.AutoTemp {
		target = SeasonalTarget(agent.SeasonalTemperature(), settings.AutoTempOffset)
	}

	current, candidate := candidateRanges(agent, item)
	curCold, curHeat := deficits(current, target)
	candCold, candHeat := deficits(candidate, target)

	return InsulationCurve.Evaluate(curCold-candCold) + InsulationCurve.Evaluate(curHeat-candHeat)
}
