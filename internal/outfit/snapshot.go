package outfit

import (
	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
)

// Snapshot is the persisted shape of an outfit.
type Snapshot struct {
	ID             int                `json:"id"`
	Settings       Settings           `json:"settings"`
	StatPriorities []PrioritySnapshot `json:"stat_priorities"`
}

// PrioritySnapshot is the persisted shape of a stat priority.
type PrioritySnapshot struct {
	Stat       string     `json:"stat"`
	Weight     float64    `json:"weight"`
	Default    *float64   `json:"default,omitempty"`
	Assignment Assignment `json:"assignment"`
}

// SnapshotOf converts a single entry.
func SnapshotOf(sp StatPriority) PrioritySnapshot {
	ps := PrioritySnapshot{
		Stat:       sp.stat.Name,
		Weight:     sp.weight,
		Assignment: sp.assignment,
	}
	if d, ok := sp.Default(); ok {
		ps.Default = &d
	}
	return ps
}

// Snapshot captures the outfit. Individual entries are never persisted.
func (o *Outfit) Snapshot() Snapshot {
	s := Snapshot{ID: o.id, Settings: o.Settings()}
	for _, sp := range o.StatPriorities() {
		if sp.assignment == Individual {
			continue
		}
		s.StatPriorities = append(s.StatPriorities, SnapshotOf(sp))
	}
	return s
}

// FromSnapshot rebuilds an outfit. Entries naming stats missing from db are
// dropped and their names returned.
func FromSnapshot(s Snapshot, db *defs.Database) (*Outfit, []string) {
	o := New(s.ID, s.Settings.Label)
	o.settings = s.Settings
	o.settings.Filter = s.Settings.Filter.clone()
	o.settings.normalize()

	var missing []string
	for _, ps := range s.StatPriorities {
		if ps.Assignment == Individual {
			continue
		}
		stat, ok := db.Stat(ps.Stat)
		if !ok {
			missing = append(missing, ps.Stat)
			continue
		}
		sp := &StatPriority{stat: stat, weight: ps.Weight, assignment: ps.Assignment}
		if ps.Default != nil {
			sp.def = *ps.Default
		} else if ps.Assignment == Override || ps.Assignment == Automatic {
			// no recorded default; trust the weight
			sp.def = ps.Weight
		}
		o.priorities = append(o.priorities, sp)
	}
	return o, missing
}
