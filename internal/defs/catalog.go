package defs

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Catalog is the yaml shape of a def database.
type Catalog struct {
	Stats     []Stat     `yaml:"stats"`
	WorkTypes []WorkType `yaml:"work_types"`
}

// ParseCatalog builds a Database from yaml.
func ParseCatalog(data []byte) (*Database, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	db := NewDatabase()
	for _, s := range c.Stats {
		if _, err := db.AddStat(s); err != nil {
			return nil, err
		}
	}
	for _, w := range c.WorkTypes {
		if _, err := db.AddWorkType(w); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Load reads a catalog file. An empty path loads the built-in catalog.
func Load(path string) (*Database, error) {
	if path == "" {
		return ParseCatalog(builtinCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}
