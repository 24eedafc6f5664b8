package defs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCatalogLoads(t *testing.T) {
	db, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, name := range []string{MoveSpeed, WorkSpeedGlobal, InsulationCold, InsulationHeat, ArmorRatingSharp} {
		if _, ok := db.Stat(name); !ok {
			t.Errorf("expected stat %s in builtin catalog", name)
		}
	}
	if len(db.WorkTypes()) != 20 {
		t.Errorf("expected 20 work types, got %d", len(db.WorkTypes()))
	}
	if _, ok := db.WorkType(Hauling); !ok {
		t.Error("expected Hauling work type")
	}
}

func TestAvailableStatsExcludesBlacklist(t *testing.T) {
	db, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	available := make(map[string]bool)
	for _, s := range db.AvailableStats() {
		available[s.Name] = true
	}

	excluded := []string{
		ComfyTemperatureMin, ComfyTemperatureMax, InsulationCold, InsulationHeat,
		StuffEffectMultiplierArmor, "MaxHitPoints", "MarketValue",
	}
	for _, name := range excluded {
		if available[name] {
			t.Errorf("%s should not be assignable", name)
		}
	}
	if !available[MoveSpeed] {
		t.Error("MoveSpeed should be assignable")
	}

	stats := db.AvailableStats()
	for i := 1; i < len(stats); i++ {
		if stats[i-1].Label > stats[i].Label {
			t.Fatalf("available stats not sorted by label at %d: %q > %q", i, stats[i-1].Label, stats[i].Label)
		}
	}
}

func TestAddStatRejectsDuplicates(t *testing.T) {
	db := NewDatabase()
	if _, err := db.AddStat(Stat{Name: "X", DefaultBaseValue: 1}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := db.AddStat(Stat{Name: "X"}); err == nil {
		t.Error("expected duplicate error")
	}
	if _, err := db.AddStat(Stat{}); err == nil {
		t.Error("expected error for unnamed stat")
	}
	s, _ := db.Stat("X")
	if s.Label != "X" {
		t.Errorf("expected label to default to name, got %q", s.Label)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
stats:
  - {name: Speed, label: Speed, category: Basics, default: 2}
work_types:
  - {name: Digging}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s, ok := db.Stat("Speed")
	if !ok || s.DefaultBaseValue != 2 {
		t.Fatalf("unexpected stat: %+v", s)
	}
	if w, ok := db.WorkType("Digging"); !ok || w.Label != "Digging" {
		t.Fatalf("unexpected work type: %+v", w)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
