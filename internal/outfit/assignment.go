package outfit

import (
	"fmt"
	"strings"
)

// Assignment records where a stat priority came from.
//
//	Automatic -> Override   user edits a generated weight
//	Override  -> Automatic  reset restores the generated weight
//	Manual                  user-created, removable
//	Individual              derived per query from work priorities, never stored
type Assignment int

const (
	Manual Assignment = iota
	Override
	Individual
	Automatic
)

var assignmentNames = [...]string{
	Manual:     "manual",
	Override:   "override",
	Individual: "individual",
	Automatic:  "automatic",
}

func (a Assignment) String() string {
	if a < 0 || int(a) >= len(assignmentNames) {
		return fmt.Sprintf("assignment(%d)", int(a))
	}
	return assignmentNames[a]
}

// ParseAssignment accepts the lower-case names produced by String.
func ParseAssignment(s string) (Assignment, error) {
	for i, name := range assignmentNames {
		if strings.EqualFold(s, name) {
			return Assignment(i), nil
		}
	}
	return 0, fmt.Errorf("unknown assignment %q", s)
}

func (a Assignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Assignment) UnmarshalText(b []byte) error {
	v, err := ParseAssignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
