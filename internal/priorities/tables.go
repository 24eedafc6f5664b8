// Package priorities derives preference weights from an agent's work
// assignments.
package priorities

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

//go:embed worktypes.yaml
var defaultTables []byte

// Entry is one default weight in a work type table.
type Entry struct {
	Stat   *defs.Stat
	Weight float64
}

// Table is the default stat weights for one work type.
type Table struct {
	WorkType string
	Entries  []Entry
}

// TableSnapshot is the persisted shape of a Table.
type TableSnapshot struct {
	WorkType string          `json:"work_type"`
	Entries  []EntrySnapshot `json:"entries"`
}

type EntrySnapshot struct {
	Stat   string  `json:"stat"`
	Weight float64 `json:"weight"`
}

func (t *Table) Snapshot() TableSnapshot {
	s := TableSnapshot{WorkType: t.WorkType, Entries: make([]EntrySnapshot, 0, len(t.Entries))}
	for _, e := range t.Entries {
		s.Entries = append(s.Entries, EntrySnapshot{Stat: e.Stat.Name, Weight: e.Weight})
	}
	return s
}

type tableEntry struct {
	Stat   string       `yaml:"stat"`
	Weight outfit.Level `yaml:"weight"`
}

func parseDefaultTables() (map[string][]tableEntry, error) {
	var m map[string][]tableEntry
	if err := yaml.Unmarshal(defaultTables, &m); err != nil {
		return nil, fmt.Errorf("parse worktype tables: %w", err)
	}
	return m, nil
}

// DefaultTable builds the built-in table for a work type. Unknown work types
// and stats missing from db yield no entries.
func DefaultTable(workType string, db *defs.Database) (*Table, error) {
	all, err := parseDefaultTables()
	if err != nil {
		return nil, err
	}
	return buildTable(workType, all[workType], db), nil
}

func buildTable(workType string, entries []tableEntry, db *defs.Database) *Table {
	t := &Table{WorkType: workType}
	for _, e := range entries {
		stat, ok := db.Stat(e.Stat)
		if !ok {
			continue
		}
		t.Entries = append(t.Entries, Entry{Stat: stat, Weight: float64(e.Weight)})
	}
	return t
}
