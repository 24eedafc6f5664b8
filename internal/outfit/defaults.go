package outfit

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
)

//go:embed starting.yaml
var startingCatalog []byte

type priorityEntry struct {
	Stat   string `yaml:"stat"`
	Weight Level  `yaml:"weight"`
}

type startingOutfit struct {
	Name               string          `yaml:"name"`
	Vanilla            bool            `yaml:"vanilla"`
	AutoWorkPriorities bool            `yaml:"auto_work_priorities"`
	Tag                string          `yaml:"tag"`
	ForbiddenBodyParts []string        `yaml:"forbidden_body_parts"`
	Priorities         []priorityEntry `yaml:"priorities"`
}

type startingFile struct {
	Outfits []startingOutfit           `yaml:"outfits"`
	Legacy  map[string][]priorityEntry `yaml:"legacy"`
}

func parseStarting() (*startingFile, error) {
	var f startingFile
	if err := yaml.Unmarshal(startingCatalog, &f); err != nil {
		return nil, fmt.Errorf("parse starting outfits: %w", err)
	}
	return &f, nil
}

// Tags applied to generated outfits. Worker and Soldier outfits refuse
// apparel taken from corpses.
const (
	TagWorker  = "Worker"
	TagSoldier = "Soldier"
)

func applyEntries(o *Outfit, entries []priorityEntry, stats *defs.Database) error {
	ps := make([]*StatPriority, 0, len(entries))
	for _, e := range entries {
		stat, ok := stats.Stat(e.Stat)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownStat, e.Stat)
		}
		ps = append(ps, NewStatPriority(stat, float64(e.Weight), Automatic))
	}
	o.AddRange(ps)
	return nil
}

// GenerateStartingOutfits adds the built-in outfit set to db. When vanilla is
// false the outfits the host already provides are skipped, which is the case
// when an existing world is being converted.
func GenerateStartingOutfits(db *Database, stats *defs.Database, vanilla bool) error {
	f, err := parseStarting()
	if err != nil {
		return err
	}
	for _, so := range f.Outfits {
		if so.Vanilla && !vanilla {
			continue
		}
		o := db.MakeNewOutfit(so.Name)
		o.Update(func(s *Settings) {
			s.AutoWorkPriorities = so.AutoWorkPriorities
			if so.Tag == TagWorker || so.Tag == TagSoldier {
				s.Filter.AllowWornByCorpse = false
			}
			s.Filter.ForbiddenBodyParts = append([]string(nil), so.ForbiddenBodyParts...)
		})
		if err := applyEntries(o, so.Priorities, stats); err != nil {
			return fmt.Errorf("outfit %s: %w", so.Name, err)
		}
	}
	return nil
}

// Legacy is a plain outfit from a world saved before preference profiles
// existed.
type Legacy struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Filter Filter `json:"filter"`
}

// FromLegacy converts a plain outfit, choosing priorities by its label.
func FromLegacy(l Legacy, stats *defs.Database) (*Outfit, error) {
	f, err := parseStarting()
	if err != nil {
		return nil, err
	}
	entries, ok := f.Legacy[l.Label]
	if !ok {
		entries = f.Legacy["default"]
	}
	o := New(l.ID, l.Label)
	o.Update(func(s *Settings) { s.Filter = l.Filter.clone() })
	if l.Label == "Nudist" {
		o.Update(func(s *Settings) { s.AutoWorkPriorities = true })
	}
	if err := applyEntries(o, entries, stats); err != nil {
		return nil, fmt.Errorf("legacy outfit %s: %w", l.Label, err)
	}
	return o, nil
}
