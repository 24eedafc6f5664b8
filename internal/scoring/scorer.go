package scoring

import (
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Wardrobe/internal/metrics"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/priorities"
)

// ScoringResult captures the complete scoring output for one agent-item pair.
type ScoringResult struct {
	ItemID     string         `json:"item_id"`
	OutfitID   int            `json:"outfit_id"`
	TotalScore float64        `json:"total_score"`
	Factors    []FactorResult `json:"factors"`
	Allowed    bool           `json:"allowed"`
}

// Scorer composes apparel scores for agents against their outfits.
type Scorer struct {
	outfits    *outfit.Database
	aggregator *priorities.Aggregator
	cache      *WornCache
	logger     *slog.Logger

	reported sync.Map // agent id -> struct{}
}

// NewScorer creates a Scorer. A nil cache disables worn-score memoization.
func NewScorer(outfits *outfit.Database, aggregator *priorities.Aggregator, cache *WornCache, logger *slog.Logger) *Scorer {
	return &Scorer{
		outfits:    outfits,
		aggregator: aggregator,
		cache:      cache,
		logger:     logger,
	}
}

// Cache returns the worn-score cache, which may be nil.
func (s *Scorer) Cache() *WornCache { return s.cache }

// outfitFor resolves the agent's outfit. An unresolvable outfit is logged
// once per agent.
func (s *Scorer) outfitFor(agent Agent) *outfit.Outfit {
	o, ok := s.outfits.Get(agent.OutfitID())
	if ok {
		return o
	}
	if _, seen := s.reported.LoadOrStore(agent.ID(), struct{}{}); !seen {
		s.logger.Error("agent has no known outfit", "agent_id", agent.ID(), "outfit_id", agent.OutfitID())
	}
	return nil
}

// ApparelScoreRaw returns the composed score of item for agent. Agents
// without a known outfit score 0.
func (s *Scorer) ApparelScoreRaw(agent Agent, item Item, warmth NeededWarmth) float64 {
	return s.Explain(agent, item, warmth).TotalScore
}

// Explain composes the score and records every stage.
func (s *Scorer) Explain(agent Agent, item Item, warmth NeededWarmth) ScoringResult {
	start := time.Now()
	defer func() { metrics.ScoreDuration.Observe(time.Since(start).Seconds()) }()

	result := ScoringResult{ItemID: item.ID()}
	o := s.outfitFor(agent)
	if o == nil {
		metrics.ScoreRequests.WithLabelValues("no_outfit").Inc()
		return result
	}
	metrics.ScoreRequests.WithLabelValues("ok").Inc()
	result.OutfitID = o.ID()

	settings := s.seasonalSettings(o, agent)
	result.Allowed = settings.Filter.Allows(item)

	score := BaseScore
	factors := []FactorResult{{Name: "base", Value: BaseScore, Total: score, Applied: true}}
	add := func(name string, v float64, applied bool, reason string) {
		if applied {
			score += v
		}
		factors = append(factors, FactorResult{Name: name, Value: v, Total: score, Applied: applied, Reason: reason})
	}

	add("stat_priorities", StatPriorityScore(o.StatPriorities(), item), true, "")

	if settings.AutoWorkPriorities && s.aggregator != nil {
		add("work_priorities", TaskPriorityScore(s.aggregator.Derive(agent), item), true, "")
	} else {
		add("work_priorities", 0, false, "automatic work priorities disabled")
	}

	if f, ok := DurabilityFactor(item); ok {
		score *= f
		factors = append(factors, FactorResult{Name: "durability", Value: f, Total: score, Applied: true})
	} else {
		factors = append(factors, FactorResult{Name: "durability", Value: 1, Total: score, Reason: "item has no hit points"})
	}

	add("special_offset", item.SpecialScoreOffset(), true, "")
	add("temperature", TemperatureScore(settings, agent, item, warmth), true, "")

	corpse := settings.PenaltyWornByCorpse && item.WornByCorpse() && agent.CanGetThought(ThoughtDeadMansApparel)
	s.penalty(&score, &factors, "worn_by_corpse", corpse)

	leather := item.Stuff() != "" && item.Stuff() == agent.LeatherMaterial()
	sad := leather && agent.CanGetThought(ThoughtLeatherApparelSad)
	s.penalty(&score, &factors, "leather_sad", sad)
	add("leather_happy", LeatherBonus, leather && !sad && agent.CanGetThought(ThoughtLeatherApparelHappy), "")

	result.TotalScore = score
	result.Factors = factors
	return result
}

func (s *Scorer) penalty(score *float64, factors *[]FactorResult, name string, applied bool) {
	before := *score
	if applied {
		*score = applyThoughtPenalty(*score)
	}
	*factors = append(*factors, FactorResult{Name: name, Value: *score - before, Total: *score, Applied: applied})
}

// seasonalSettings refreshes the target range of auto-temperature outfits
// from the agent's season and returns the settings to score with.
func (s *Scorer) seasonalSettings(o *outfit.Outfit, agent Agent) outfit.Settings {
	settings := o.Settings()
	if !settings.AutoTemp {
		return settings
	}
	target := SeasonalTarget(agent.SeasonalTemperature(), settings.AutoTempOffset)
	if target == settings.TargetTemperatures {
		return settings
	}
	return o.Update(func(st *outfit.Settings) { st.TargetTemperatures = target })
}

// Derive exposes the aggregator's derivation for an agent.
func (s *Scorer) Derive(agent Agent) []*outfit.StatPriority {
	if s.aggregator == nil {
		return nil
	}
	return s.aggregator.Derive(agent)
}
