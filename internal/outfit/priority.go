package outfit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
)

// Named weight levels used by the generated tables.
const (
	Unwanted  = -2.0
	Undesired = -1.0
	Neutral   = 0.0
	Desired   = 1.0
	Wanted    = 2.0
)

// MaxWeight is the conventional slider bound; weights outside it are accepted.
const MaxWeight = 2.5

var (
	ErrIndividual  = errors.New("individual priorities are derived and cannot be edited")
	ErrNotOverride = errors.New("only overridden stat priorities can be reset")
	ErrNotManual   = errors.New("only manual stat priorities can be removed")
	ErrNotAssigned = errors.New("stat is not assigned in this outfit")
	ErrUnknownStat = errors.New("unknown stat")
)

// StatPriority is one weighted stat in a preference profile.
type StatPriority struct {
	stat       *defs.Stat
	weight     float64
	def        float64
	assignment Assignment
}

// NewStatPriority creates an entry. For Automatic entries the weight is also
// recorded as the canonical default.
func NewStatPriority(stat *defs.Stat, weight float64, assignment Assignment) *StatPriority {
	sp := &StatPriority{stat: stat, weight: weight, assignment: assignment}
	if assignment == Automatic {
		sp.def = weight
	}
	return sp
}

func (sp *StatPriority) Stat() *defs.Stat       { return sp.stat }
func (sp *StatPriority) Weight() float64        { return sp.weight }
func (sp *StatPriority) Assignment() Assignment { return sp.assignment }

// Default returns the canonical weight for Automatic and Override entries.
func (sp *StatPriority) Default() (float64, bool) {
	if sp.assignment == Automatic || sp.assignment == Override {
		return sp.def, true
	}
	return 0, false
}

// SetWeight changes the weight. Editing an Automatic entry promotes it to Override.
func (sp *StatPriority) SetWeight(w float64) error {
	switch sp.assignment {
	case Individual:
		return ErrIndividual
	case Automatic:
		if w == sp.weight {
			return nil
		}
		sp.assignment = Override
	}
	sp.weight = w
	return nil
}

// Reset restores the default weight of an Override entry.
func (sp *StatPriority) Reset() error {
	switch sp.assignment {
	case Automatic:
		return nil
	case Override:
		sp.weight = sp.def
		sp.assignment = Automatic
		return nil
	}
	return ErrNotOverride
}

func (sp *StatPriority) clone() *StatPriority {
	c := *sp
	return &c
}

// Level is a weight that can be written in yaml either as a number or as one
// of the named levels (unwanted, undesired, neutral, desired, wanted).
type Level float64

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unwanted":
		return Unwanted, nil
	case "undesired":
		return Undesired, nil
	case "neutral":
		return Neutral, nil
	case "desired":
		return Desired, nil
	case "wanted":
		return Wanted, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid priority level %q", s)
	}
	return Level(f), nil
}

func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseLevel(value.Value)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// UnmarshalJSON accepts a number or a level name.
func (l *Level) UnmarshalJSON(b []byte) error {
	v, err := ParseLevel(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
