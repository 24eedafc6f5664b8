package scoring

import (
	"sync"

	"github.com/MikeSquared-Agency/Wardrobe/internal/metrics"
)

// WornCache memoizes the scores of the items an agent is wearing for one
// tick and one agent. Moving to another tick or agent drops the entries.
// Entries are also keyed by warmth hint. Outfit edits within a tick are not
// seen until the tick advances.
type WornCache struct {
	mu     sync.Mutex
	tick   int64
	agent  string
	scores map[wornKey]float64
}

type wornKey struct {
	item   string
	warmth NeededWarmth
}

func NewWornCache() *WornCache {
	return &WornCache{scores: make(map[wornKey]float64)}
}

// Advance moves the cache to tick and the selected agent.
func (c *WornCache) Advance(tick int64, agent string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(tick, agent)
}

func (c *WornCache) reset(tick int64, agent string) {
	if tick == c.tick && agent == c.agent {
		return
	}
	c.tick = tick
	c.agent = agent
	clear(c.scores)
}

// Tick returns the tick and agent the cache currently holds.
func (c *WornCache) Tick() (int64, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick, c.agent
}

// Score returns the cached score for item under warmth, computing and
// storing it on a miss.
func (c *WornCache) Score(tick int64, agent, item string, warmth NeededWarmth, compute func() float64) float64 {
	key := wornKey{item: item, warmth: warmth}
	c.mu.Lock()
	c.reset(tick, agent)
	if v, ok := c.scores[key]; ok {
		c.mu.Unlock()
		metrics.WornCacheResults.WithLabelValues("hit").Inc()
		return v
	}
	c.mu.Unlock()

	metrics.WornCacheResults.WithLabelValues("miss").Inc()
	v := compute()

	c.mu.Lock()
	if c.tick == tick && c.agent == agent {
		c.scores[key] = v
	}
	c.mu.Unlock()
	return v
}

// displacedGainFactor scales the gain of items that replace nothing.
const displacedGainFactor = 10

// ScoreGain is how much wearing item would improve on what the agent wears
// now: its score minus the scores of every worn item it cannot be worn with.
// An item already worn displaces itself. Items that displace nothing have
// their score scaled up.
func (s *Scorer) ScoreGain(agent Agent, item Item, warmth NeededWarmth, tick int64) float64 {
	return s.ScoreGainFrom(s.ApparelScoreRaw(agent, item, warmth), agent, item, warmth, tick)
}

// ScoreGainFrom is ScoreGain for a candidate whose score is already known.
func (s *Scorer) ScoreGainFrom(score float64, agent Agent, item Item, warmth NeededWarmth, tick int64) float64 {
	gain := score
	displaced := false
	for _, w := range agent.WornItems() {
		if w.ID() != item.ID() && agent.CanWearTogether(item, w) {
			continue
		}
		gain -= s.wornScore(agent, w, warmth, tick)
		displaced = true
	}
	if !displaced {
		gain *= displacedGainFactor
	}
	return gain
}

func (s *Scorer) wornScore(agent Agent, item Item, warmth NeededWarmth, tick int64) float64 {
	compute := func() float64 { return s.ApparelScoreRaw(agent, item, warmth) }
	if s.cache == nil {
		return compute()
	}
	return s.cache.Score(tick, agent.ID(), item.ID(), warmth, compute)
}
