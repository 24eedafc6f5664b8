// Package defs holds the statistic and task-category registry the scoring
// engine resolves names against. A Database is built once at startup and is
// read-only afterwards.
package defs

import (
	"fmt"
	"sort"
)

// Category tags a statistic with the part of the game it belongs to.
type Category string

const (
	CategoryBasics           Category = "Basics"
	CategoryBasicsPawn       Category = "BasicsPawn"
	CategoryBasicsNonPawn    Category = "BasicsNonPawn"
	CategoryBuilding         Category = "Building"
	CategoryStuffStatFactors Category = "StuffStatFactors"
	CategoryApparel          Category = "Apparel"
	CategoryWork             Category = "Work"
	CategorySocial           Category = "Social"
	CategoryCombat           Category = "Combat"
	CategoryWeapon           Category = "Weapon"
)

// Stat is a named numeric capability resolvable on an item or agent.
type Stat struct {
	Name             string   `yaml:"name" json:"name"`
	Label            string   `yaml:"label" json:"label"`
	Category         Category `yaml:"category" json:"category"`
	DefaultBaseValue float64  `yaml:"default" json:"default"`
	Description      string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// WorkType is a task category an agent can be assigned to.
type WorkType struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
}

// Database is the registry of stats and work types.
type Database struct {
	stats     map[string]*Stat
	statOrder []*Stat
	works     map[string]*WorkType
	workOrder []*WorkType
}

func NewDatabase() *Database {
	return &Database{
		stats: make(map[string]*Stat),
		works: make(map[string]*WorkType),
	}
}

// AddStat registers a stat. Names must be unique.
func (d *Database) AddStat(s Stat) (*Stat, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("stat without name")
	}
	if _, ok := d.stats[s.Name]; ok {
		return nil, fmt.Errorf("duplicate stat %q", s.Name)
	}
	if s.Label == "" {
		s.Label = s.Name
	}
	stat := &s
	d.stats[s.Name] = stat
	d.statOrder = append(d.statOrder, stat)
	return stat, nil
}

// AddWorkType registers a work type. Names must be unique.
func (d *Database) AddWorkType(w WorkType) (*WorkType, error) {
	if w.Name == "" {
		return nil, fmt.Errorf("work type without name")
	}
	if _, ok := d.works[w.Name]; ok {
		return nil, fmt.Errorf("duplicate work type %q", w.Name)
	}
	if w.Label == "" {
		w.Label = w.Name
	}
	wt := &w
	d.works[w.Name] = wt
	d.workOrder = append(d.workOrder, wt)
	return wt, nil
}

func (d *Database) Stat(name string) (*Stat, bool) {
	s, ok := d.stats[name]
	return s, ok
}

// Stats returns all stats in registration order.
func (d *Database) Stats() []*Stat {
	out := make([]*Stat, len(d.statOrder))
	copy(out, d.statOrder)
	return out
}

func (d *Database) WorkType(name string) (*WorkType, bool) {
	w, ok := d.works[name]
	return w, ok
}

// WorkTypes returns all work types in registration order.
func (d *Database) WorkTypes() []*WorkType {
	out := make([]*WorkType, len(d.workOrder))
	copy(out, d.workOrder)
	return out
}

var blacklistedCategories = map[Category]bool{
	CategoryBasicsNonPawn:    true,
	CategoryBuilding:         true,
	CategoryStuffStatFactors: true,
}

var blacklistedStats = map[string]bool{
	ComfyTemperatureMin:                 true,
	ComfyTemperatureMax:                 true,
	InsulationCold:                      true,
	InsulationHeat:                      true,
	StuffEffectMultiplierInsulationCold: true,
	StuffEffectMultiplierInsulationHeat: true,
	StuffEffectMultiplierArmor:          true,
}

// Assignable reports whether a stat may appear in a preference profile.
// Temperature stats are handled by the temperature scorer instead.
func Assignable(s *Stat) bool {
	return s != nil && !blacklistedCategories[s.Category] && !blacklistedStats[s.Name]
}

// AvailableStats returns every assignable stat sorted by label.
func (d *Database) AvailableStats() []*Stat {
	var out []*Stat
	for _, s := range d.statOrder {
		if Assignable(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
