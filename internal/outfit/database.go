package outfit

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("outfit not found")

// Database is the collection of outfits known to the process.
type Database struct {
	mu      sync.RWMutex
	outfits map[int]*Outfit
	nextID  int
}

func NewDatabase() *Database {
	return &Database{outfits: make(map[int]*Outfit), nextID: 1}
}

// MakeNewOutfit creates and registers an outfit with the next free id.
func (d *Database) MakeNewOutfit(label string) *Outfit {
	d.mu.Lock()
	defer d.mu.Unlock()
	o := New(d.nextID, label)
	d.outfits[o.id] = o
	d.nextID++
	return o
}

// Add registers an existing outfit, e.g. one restored from storage.
func (d *Database) Add(o *Outfit) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.outfits[o.id]; ok {
		return fmt.Errorf("outfit %d already exists", o.id)
	}
	d.outfits[o.id] = o
	if o.id >= d.nextID {
		d.nextID = o.id + 1
	}
	return nil
}

func (d *Database) Get(id int) (*Outfit, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	o, ok := d.outfits[id]
	return o, ok
}

// ByLabel returns the outfit with the lowest id carrying label.
func (d *Database) ByLabel(label string) (*Outfit, bool) {
	for _, o := range d.All() {
		if o.Label() == label {
			return o, true
		}
	}
	return nil, false
}

// All returns every outfit ordered by id.
func (d *Database) All() []*Outfit {
	d.mu.RLock()
	out := make([]*Outfit, 0, len(d.outfits))
	for _, o := range d.outfits {
		out = append(out, o)
	}
	d.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (d *Database) Remove(id int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.outfits[id]; !ok {
		return false
	}
	delete(d.outfits, id)
	return true
}

func (d *Database) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.outfits)
}
