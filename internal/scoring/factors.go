package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

// FactorResult captures one stage's contribution to the composed score.
type FactorResult struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Total   float64 `json:"total"`
	Applied bool    `json:"applied"`
	Reason  string  `json:"reason,omitempty"`
}

// statDeviation is how far the item moves a stat from its baseline,
// relative to the baseline unless the baseline is near zero.
func statDeviation(sp outfit.StatPriority, item Item) float64 {
	name := sp.Stat().Name
	raw := item.StatOffset(name) + item.StatValue(name)
	def := sp.Stat().DefaultBaseValue
	if math.Abs(def) < absoluteThreshold {
		return raw
	}
	return (raw - def) / def
}

// StatPriorityScore is the mean of each entry's deviation amplified by the
// cube of its weight. An empty list scores 0.
func StatPriorityScore(ps []outfit.StatPriority, item Item) float64 {
	if len(ps) == 0 {
		return 0
	}
	var sum float64
	for _, sp := range ps {
		w := sp.Weight()
		sum += statDeviation(sp, item) * w * w * w
	}
	return sum / float64(len(ps))
}

// TaskPriorityScore sums each derived entry's absolute deviation from the
// stat baseline times its weight.
func TaskPriorityScore(ps []*outfit.StatPriority, item Item) float64 {
	var sum float64
	for _, sp := range ps {
		name := sp.Stat().Name
		raw := item.StatOffset(name) + item.StatValue(name)
		sum += (raw - sp.Stat().DefaultBaseValue) * sp.Weight()
	}
	return sum
}

// DurabilityFactor returns the hit point multiplier and whether it applies.
func DurabilityFactor(item Item) (float64, bool) {
	if !item.UsesHitPoints() || item.MaxHitPoints() <= 0 {
		return 1, false
	}
	ratio := float64(item.HitPoints()) / float64(item.MaxHitPoints())
	return HitPointsCurve.Evaluate(ratio), true
}

// applyThoughtPenalty subtracts the flat penalty and compresses whatever
// positive score is left.
func applyThoughtPenalty(score float64) float64 {
	score -= ThoughtPenalty
	if score > 0 {
		score *= ThoughtPenaltyRate
	}
	return score
}
