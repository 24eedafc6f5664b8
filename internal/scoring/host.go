package scoring

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

// Item is a candidate piece of apparel as seen by the scorer.
type Item interface {
	ID() string
	Kind() string
	// StatValue is the item's resolved value for a stat, quality and
	// material included.
	StatValue(stat string) float64
	// StatOffset is the equipped offset the item's kind grants for a stat.
	StatOffset(stat string) float64
	UsesHitPoints() bool
	HitPoints() int
	MaxHitPoints() int
	SpecialScoreOffset() float64
	WornByCorpse() bool
	Stuff() string
	Tags() []string
	BodyPartGroups() []string
}

// Agent is the entity apparel is being chosen for.
type Agent interface {
	ID() string
	OutfitID() int
	ComfortableTemperatureRange() outfit.TemperatureRange
	WornItems() []Item
	CanWearTogether(a, b Item) bool
	// WorkPriority is 0 when the work type is not assigned.
	WorkPriority(workType string) int
	SeasonalTemperature() float64
	CanGetThought(t Thought) bool
	// LeatherMaterial is the material made from the agent's own species,
	// or "" if there is none.
	LeatherMaterial() string
}

// NeededWarmth is the host's climate hint used when an outfit has no
// target temperatures.
type NeededWarmth int

const (
	WarmthAny NeededWarmth = iota
	WarmthWarm
	WarmthCool
)

func (w NeededWarmth) String() string {
	switch w {
	case WarmthWarm:
		return "warm"
	case WarmthCool:
		return "cool"
	}
	return "any"
}

func ParseNeededWarmth(s string) (NeededWarmth, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return WarmthAny, nil
	case "warm":
		return WarmthWarm, nil
	case "cool":
		return WarmthCool, nil
	}
	return WarmthAny, fmt.Errorf("unknown warmth %q", s)
}

func (w NeededWarmth) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *NeededWarmth) UnmarshalText(b []byte) error {
	v, err := ParseNeededWarmth(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Thought is a mood reaction the host can report an agent as susceptible to.
type Thought string

const (
	ThoughtDeadMansApparel     Thought = "DeadMansApparel"
	ThoughtLeatherApparelSad   Thought = "HumanLeatherApparelSad"
	ThoughtLeatherApparelHappy Thought = "HumanLeatherApparelHappy"
)
