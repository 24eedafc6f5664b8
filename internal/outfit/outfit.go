// Package outfit models preference profiles: ordered stat priorities plus
// temperature targets and toggles that steer apparel selection.
package outfit

import (
	"sync"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
)

// Full-range sentinel used when no target temperature is set.
const (
	MinTemperature = -100.0
	MaxTemperature = 100.0

	DefaultAutoTempOffset = 20
)

// TemperatureRange is a closed interval in degrees.
type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FullTemperatureRange is the default target range.
func FullTemperatureRange() TemperatureRange {
	return TemperatureRange{Min: MinTemperature, Max: MaxTemperature}
}

// Clamped returns the range with Min pulled down to Max when they cross.
func (r TemperatureRange) Clamped() TemperatureRange {
	if r.Min > r.Max {
		r.Min = r.Max
	}
	return r
}

// Filterable is the part of an item the outfit filter looks at.
type Filterable interface {
	Tags() []string
	BodyPartGroups() []string
	WornByCorpse() bool
}

// Filter decides which items an outfit allows at all.
type Filter struct {
	AllowAll           bool     `json:"allow_all"`
	Tags               []string `json:"tags,omitempty"`
	ForbiddenBodyParts []string `json:"forbidden_body_parts,omitempty"`
	AllowWornByCorpse  bool     `json:"allow_worn_by_corpse"`
}

// DefaultFilter allows everything.
func DefaultFilter() Filter {
	return Filter{AllowAll: true, AllowWornByCorpse: true}
}

func (f Filter) Allows(item Filterable) bool {
	if item.WornByCorpse() && !f.AllowWornByCorpse {
		return false
	}
	for _, g := range item.BodyPartGroups() {
		for _, forbidden := range f.ForbiddenBodyParts {
			if g == forbidden {
				return false
			}
		}
	}
	if f.AllowAll {
		return true
	}
	for _, t := range item.Tags() {
		for _, allowed := range f.Tags {
			if t == allowed {
				return true
			}
		}
	}
	return false
}

func (f Filter) clone() Filter {
	f.Tags = append([]string(nil), f.Tags...)
	f.ForbiddenBodyParts = append([]string(nil), f.ForbiddenBodyParts...)
	return f
}

// Settings are the scalar fields of an outfit.
type Settings struct {
	Label                      string           `json:"label"`
	Filter                     Filter           `json:"filter"`
	PenaltyWornByCorpse        bool             `json:"penalty_worn_by_corpse"`
	AutoWorkPriorities         bool             `json:"auto_work_priorities"`
	TargetTemperaturesOverride bool             `json:"target_temperatures_override"`
	TargetTemperatures         TemperatureRange `json:"target_temperatures"`
	AutoTemp                   bool             `json:"auto_temp"`
	AutoTempOffset             int              `json:"auto_temp_offset"`
}

// normalize enforces auto-temp implies override and an ordered range.
func (s *Settings) normalize() {
	if s.AutoTemp {
		s.TargetTemperaturesOverride = true
	}
	s.TargetTemperatures = s.TargetTemperatures.Clamped()
}

// Outfit is a preference profile. It is safe for concurrent use.
type Outfit struct {
	id int

	mu         sync.RWMutex
	settings   Settings
	priorities []*StatPriority
}

// New creates an outfit with default settings and no priorities.
func New(id int, label string) *Outfit {
	return &Outfit{
		id: id,
		settings: Settings{
			Label:               label,
			Filter:              DefaultFilter(),
			PenaltyWornByCorpse: true,
			TargetTemperatures:  FullTemperatureRange(),
			AutoTempOffset:      DefaultAutoTempOffset,
		},
	}
}

func (o *Outfit) ID() int { return o.id }

func (o *Outfit) Label() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.settings.Label
}

// Settings returns a copy of the outfit's settings.
func (o *Outfit) Settings() Settings {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s := o.settings
	s.Filter = s.Filter.clone()
	return s
}

// Update applies fn to the settings under the outfit lock.
func (o *Outfit) Update(fn func(s *Settings)) Settings {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(&o.settings)
	o.settings.normalize()
	s := o.settings
	s.Filter = s.Filter.clone()
	return s
}

// SetAutoTemp toggles seasonal targets; enabling it enables the override.
func (o *Outfit) SetAutoTemp(on bool) {
	o.Update(func(s *Settings) { s.AutoTemp = on })
}

// SetTargetTemperatures sets the target range and enables the override.
func (o *Outfit) SetTargetTemperatures(r TemperatureRange) {
	o.Update(func(s *Settings) {
		s.TargetTemperatures = r
		s.TargetTemperaturesOverride = true
	})
}

// ResetTargetTemperatures clears the override and restores the full range.
func (o *Outfit) ResetTargetTemperatures() {
	o.Update(func(s *Settings) {
		s.TargetTemperaturesOverride = false
		s.AutoTemp = false
		s.TargetTemperatures = FullTemperatureRange()
	})
}

// StatPriorities returns copies of the entries, most recently added first.
func (o *Outfit) StatPriorities() []StatPriority {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]StatPriority, len(o.priorities))
	for i, sp := range o.priorities {
		out[i] = *sp
	}
	return out
}

// StatPriority returns a copy of the first entry for the named stat.
func (o *Outfit) StatPriority(stat string) (StatPriority, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if sp := o.find(stat); sp != nil {
		return *sp, true
	}
	return StatPriority{}, false
}

func (o *Outfit) find(stat string) *StatPriority {
	for _, sp := range o.priorities {
		if sp.stat.Name == stat {
			return sp
		}
	}
	return nil
}

// AddStatPriority inserts a new entry at the front. It does not deduplicate.
func (o *Outfit) AddStatPriority(stat *defs.Stat, weight float64, assignment Assignment) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sp := NewStatPriority(stat, weight, assignment)
	o.priorities = append([]*StatPriority{sp}, o.priorities...)
}

// AddStatPriorityIfAbsent inserts a new entry at the front unless the stat
// is already assigned, and reports whether it did.
func (o *Outfit) AddStatPriorityIfAbsent(stat *defs.Stat, weight float64, assignment Assignment) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.find(stat.Name) != nil {
		return false
	}
	sp := NewStatPriority(stat, weight, assignment)
	o.priorities = append([]*StatPriority{sp}, o.priorities...)
	return true
}

// AddRange appends entries in order.
func (o *Outfit) AddRange(ps []*StatPriority) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, sp := range ps {
		o.priorities = append(o.priorities, sp.clone())
	}
}

// RemoveStatPriority removes every entry for stat and returns how many were removed.
func (o *Outfit) RemoveStatPriority(stat string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	kept := o.priorities[:0]
	removed := 0
	for _, sp := range o.priorities {
		if sp.stat.Name == stat {
			removed++
			continue
		}
		kept = append(kept, sp)
	}
	for i := len(kept); i < len(o.priorities); i++ {
		o.priorities[i] = nil
	}
	o.priorities = kept
	return removed
}

// SetWeight edits the weight of the first entry for stat.
func (o *Outfit) SetWeight(stat string, w float64) (StatPriority, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sp := o.find(stat)
	if sp == nil {
		return StatPriority{}, ErrNotAssigned
	}
	if err := sp.SetWeight(w); err != nil {
		return StatPriority{}, err
	}
	return *sp, nil
}

// ResetStatPriority restores the default weight of the first entry for stat.
func (o *Outfit) ResetStatPriority(stat string) (StatPriority, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sp := o.find(stat)
	if sp == nil {
		return StatPriority{}, ErrNotAssigned
	}
	if err := sp.Reset(); err != nil {
		return StatPriority{}, err
	}
	return *sp, nil
}

// UnassignedStats lists assignable stats not yet in the outfit.
func (o *Outfit) UnassignedStats(db *defs.Database) []*defs.Stat {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var out []*defs.Stat
	for _, s := range db.AvailableStats() {
		if o.find(s.Name) == nil {
			out = append(out, s)
		}
	}
	return out
}

// CopyFrom replaces this outfit's settings and priorities with src's.
// The label is kept.
func (o *Outfit) CopyFrom(src *Outfit) {
	if src == o {
		return
	}
	settings := src.Settings()
	src.mu.RLock()
	var ps []*StatPriority
	for _, sp := range src.priorities {
		if sp.assignment == Individual {
			continue
		}
		ps = append(ps, sp.clone())
	}
	src.mu.RUnlock()

	o.mu.Lock()
	defer o.mu.Unlock()
	settings.Label = o.settings.Label
	o.settings = settings
	o.priorities = ps
}
