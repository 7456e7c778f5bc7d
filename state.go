package malariasim

import (
	"fmt"
	"strconv"
)

// State is the epidemiological state of one individual.
type State int8

const (
	Protected   State = -1
	Susceptible State = 0
	Infected    State = 1
	Recovered   State = 2
)

var stateNames = map[State]string{
	Protected:   "protected",
	Susceptible: "susceptible",
	Infected:    "infected",
	Recovered:   "recovered",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the four known states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Absorbing reports whether no rule ever moves an individual out of s.
func (s State) Absorbing() bool {
	return s == Protected || s == Recovered
}

func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid state %d", int8(s))
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st, name := range stateNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Census tallies how many individuals hold each state.
type Census struct {
	Protected   int `json:"protected" yaml:"protected"`
	Susceptible int `json:"susceptible" yaml:"susceptible"`
	Infected    int `json:"infected" yaml:"infected"`
	Recovered   int `json:"recovered" yaml:"recovered"`
}

// Total is the number of individuals counted. It always equals the population size.
func (c Census) Total() int {
	return c.Protected + c.Susceptible + c.Infected + c.Recovered
}

// Count returns the tally for s, or 0 for an unknown state.
func (c Census) Count(s State) int {
	switch s {
	case Protected:
		return c.Protected
	case Susceptible:
		return c.Susceptible
	case Infected:
		return c.Infected
	case Recovered:
		return c.Recovered
	}
	return 0
}

func (c *Census) add(s State) {
	switch s {
	case Protected:
		c.Protected++
	case Susceptible:
		c.Susceptible++
	case Infected:
		c.Infected++
	case Recovered:
		c.Recovered++
	}
}
