package priorities

import (
	"log/slog"
	"sync"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/metrics"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

// TotalWeight is what derived weights are rescaled to sum to.
const TotalWeight = 10.0

// WorkAssignments reports an agent's priority for a work type. Lower positive
// values are more preferred; zero means not assigned.
type WorkAssignments interface {
	WorkPriority(workType string) int
}

// Aggregator owns the per-work-type default tables and derives Individual
// stat priorities from them. It is safe for concurrent use.
type Aggregator struct {
	db     *defs.Database
	logger *slog.Logger

	mu     sync.RWMutex
	tables map[string]*Table
}

func NewAggregator(db *defs.Database, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		db:     db,
		logger: logger,
		tables: make(map[string]*Table),
	}
}

// Initialize builds the default table for every work type when no tables
// have been loaded.
func (a *Aggregator) Initialize() error {
	all, err := parseDefaultTables()
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.tables) > 0 {
		return nil
	}
	for _, wt := range a.db.WorkTypes() {
		a.tables[wt.Name] = buildTable(wt.Name, all[wt.Name], a.db)
	}
	a.logger.Info("worktype tables initialized", "count", len(a.tables))
	return nil
}

// Load replaces the tables with persisted ones. Entries naming unknown stats
// are dropped and reported.
func (a *Aggregator) Load(snaps []TableSnapshot) []string {
	tables := make(map[string]*Table, len(snaps))
	var missing []string
	for _, s := range snaps {
		t := &Table{WorkType: s.WorkType}
		for _, e := range s.Entries {
			stat, ok := a.db.Stat(e.Stat)
			if !ok {
				missing = append(missing, e.Stat)
				continue
			}
			t.Entries = append(t.Entries, Entry{Stat: stat, Weight: e.Weight})
		}
		tables[s.WorkType] = t
	}
	a.mu.Lock()
	a.tables = tables
	a.mu.Unlock()
	return missing
}

// Snapshots returns the tables in work type registration order, followed by
// any tables for work types the registry does not know.
func (a *Aggregator) Snapshots() []TableSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]TableSnapshot, 0, len(a.tables))
	seen := make(map[string]bool, len(a.tables))
	for _, wt := range a.db.WorkTypes() {
		if t, ok := a.tables[wt.Name]; ok {
			out = append(out, t.Snapshot())
			seen[wt.Name] = true
		}
	}
	for name, t := range a.tables {
		if !seen[name] {
			out = append(out, t.Snapshot())
		}
	}
	return out
}

// WorktypeTable returns the entries for a work type. A table missing after
// initialization is created on the spot and logged.
func (a *Aggregator) WorktypeTable(workType string) []Entry {
	a.mu.RLock()
	t, ok := a.tables[workType]
	a.mu.RUnlock()
	if ok {
		return t.Entries
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.tables[workType]; ok {
		return t.Entries
	}
	all, err := parseDefaultTables()
	if err != nil {
		a.logger.Error("worktype defaults unavailable", "work_type", workType, "error", err)
	}
	t = buildTable(workType, all[workType], a.db)
	a.tables[workType] = t
	metrics.LazyWorktypeTables.WithLabelValues(workType).Inc()
	a.logger.Warn("created worktype table after initialization", "work_type", workType)
	return t.Entries
}

// Derive turns an agent's work priorities into Individual stat priorities
// whose weights sum to TotalWeight. It returns nil when the agent has no
// positive work priority.
func (a *Aggregator) Derive(agent WorkAssignments) []*outfit.StatPriority {
	metrics.Derivations.Inc()

	type assigned struct {
		workType string
		priority int
	}
	var works []assigned
	for _, wt := range a.db.WorkTypes() {
		if p := agent.WorkPriority(wt.Name); p > 0 {
			works = append(works, assigned{wt.Name, p})
		}
	}
	if len(works) == 0 {
		return nil
	}

	lo, hi := works[0].priority, works[0].priority
	for _, w := range works[1:] {
		lo = min(lo, w.priority)
		hi = max(hi, w.priority)
	}

	var order []*defs.Stat
	totals := make(map[*defs.Stat]float64)
	for _, w := range works {
		norm := NormalizePriority(w.priority, lo, hi)
		for _, e := range a.WorktypeTable(w.workType) {
			if _, ok := totals[e.Stat]; !ok {
				order = append(order, e.Stat)
			}
			totals[e.Stat] += norm * e.Weight
		}
	}

	var sum float64
	for _, v := range totals {
		sum += v
	}
	scale := 1.0
	if sum != 0 {
		scale = TotalWeight / sum
	}

	out := make([]*outfit.StatPriority, 0, len(order))
	for _, s := range order {
		out = append(out, outfit.NewStatPriority(s, totals[s]*scale, outfit.Individual))
	}
	return out
}

// NormalizePriority maps a work priority into [0,1], inverted so the most
// preferred (lowest) priority is 1. Equal bounds map to 1.
func NormalizePriority(p, lo, hi int) float64 {
	if lo == hi {
		return 1
	}
	return 1 - float64(p-lo)/float64(hi-lo)
}
