// Package colony talks to the host simulation and adapts its JSON snapshots
// to the scoring interfaces.
package colony

import (
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
	"github.com/MikeSquared-Agency/Wardrobe/internal/scoring"
)

// ItemState is a snapshot of one piece of apparel.
type ItemState struct {
	ID                 string             `json:"id"`
	Kind               string             `json:"kind"`
	Stats              map[string]float64 `json:"stats"`
	Offsets            map[string]float64 `json:"offsets,omitempty"`
	UsesHitPoints      bool               `json:"uses_hit_points"`
	HitPoints          int                `json:"hit_points"`
	MaxHitPoints       int                `json:"max_hit_points"`
	SpecialScoreOffset float64            `json:"special_score_offset,omitempty"`
	WornByCorpse       bool               `json:"worn_by_corpse"`
	Stuff              string             `json:"stuff,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
	BodyPartGroups     []string           `json:"body_part_groups"`
	Layers             []string           `json:"layers"`
}

// Item adapts the snapshot to scoring.Item.
func (s *ItemState) Item() scoring.Item { return item{s} }

type item struct{ s *ItemState }

func (i item) ID() string                     { return i.s.ID }
func (i item) Kind() string                   { return i.s.Kind }
func (i item) StatValue(stat string) float64  { return i.s.Stats[stat] }
func (i item) StatOffset(stat string) float64 { return i.s.Offsets[stat] }
func (i item) UsesHitPoints() bool            { return i.s.UsesHitPoints }
func (i item) HitPoints() int                 { return i.s.HitPoints }
func (i item) MaxHitPoints() int              { return i.s.MaxHitPoints }
func (i item) SpecialScoreOffset() float64    { return i.s.SpecialScoreOffset }
func (i item) WornByCorpse() bool             { return i.s.WornByCorpse }
func (i item) Stuff() string                  { return i.s.Stuff }
func (i item) Tags() []string                 { return i.s.Tags }
func (i item) BodyPartGroups() []string       { return i.s.BodyPartGroups }

// AgentState is a snapshot of an agent as reported by the host.
type AgentState struct {
	ID                  string                  `json:"id"`
	Name                string                  `json:"name"`
	OutfitID            int                     `json:"outfit_id"`
	Comfort             outfit.TemperatureRange `json:"comfortable_temperature"`
	Worn                []ItemState             `json:"worn"`
	WorkPriorities      map[string]int          `json:"work_priorities"`
	SeasonalTemperature float64                 `json:"seasonal_temperature"`
	Thoughts            []string                `json:"thoughts,omitempty"`
	LeatherMaterial     string                  `json:"leather_material,omitempty"`
}

// Agent adapts the snapshot to scoring.Agent.
func (s *AgentState) Agent() scoring.Agent {
	a := &agent{s: s, thoughts: make(map[scoring.Thought]bool, len(s.Thoughts))}
	for _, t := range s.Thoughts {
		a.thoughts[scoring.Thought(t)] = true
	}
	a.worn = make([]scoring.Item, len(s.Worn))
	for i := range s.Worn {
		a.worn[i] = s.Worn[i].Item()
	}
	return a
}

type agent struct {
	s        *AgentState
	thoughts map[scoring.Thought]bool
	worn     []scoring.Item
}

func (a *agent) ComfortableTemperatureRange() outfit.TemperatureRange {
	return a.s.Comfort
}

func (a *agent) ID() string                           { return a.s.ID }
func (a *agent) OutfitID() int                        { return a.s.OutfitID }
func (a *agent) WornItems() []scoring.Item            { return a.worn }
func (a *agent) WorkPriority(workType string) int     { return a.s.WorkPriorities[workType] }
func (a *agent) SeasonalTemperature() float64         { return a.s.SeasonalTemperature }
func (a *agent) CanGetThought(t scoring.Thought) bool { return a.thoughts[t] }
func (a *agent) LeatherMaterial() string              { return a.s.LeatherMaterial }

// CanWearTogether reports whether two items can be worn at once. Items
// conflict when they share a layer and cover a common body part group.
func (a *agent) CanWearTogether(x, y scoring.Item) bool {
	xi, ok1 := x.(item)
	yi, ok2 := y.(item)
	if !ok1 || !ok2 {
		return !overlaps(x.BodyPartGroups(), y.BodyPartGroups())
	}
	return !(overlaps(xi.s.Layers, yi.s.Layers) && overlaps(xi.s.BodyPartGroups, yi.s.BodyPartGroups))
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
