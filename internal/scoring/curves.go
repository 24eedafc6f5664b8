package scoring

import "github.com/MikeSquared-Agency/Wardrobe/internal/curve"

var (
	// HitPointsCurve maps the durability ratio to a score factor.
	HitPointsCurve = curve.New(
		curve.Point{X: 0, Y: 0},
		curve.Point{X: 0.2, Y: 0.2},
		curve.Point{X: 0.22, Y: 0.6},
		curve.Point{X: 0.5, Y: 0.6},
		curve.Point{X: 0.52, Y: 1},
	)

	// InsulationCurve maps an improvement in degrees to a score delta.
	InsulationCurve = curve.New(
		curve.Point{X: -20, Y: -3},
		curve.Point{X: -10, Y: -2},
		curve.Point{X: 10, Y: 2},
		curve.Point{X: 20, Y: 3},
	)

	// NeedWarmthCurve maps an insulation stat to a score when the climate
	// hint asks for warmth or cooling.
	NeedWarmthCurve = curve.New(
		curve.Point{X: 0, Y: 1},
		curve.Point{X: 30, Y: 4},
	)
)

// Penalty and bonus terms.
const (
	BaseScore          = 0.1
	ThoughtPenalty     = 0.5
	ThoughtPenaltyRate = 0.1
	LeatherBonus       = 0.12
	absoluteThreshold  = 0.001
)
