package strategy

import (
	"fmt"
)

// Matchup is one positional pairing produced by a Strategy. Home, Away and
// Referees are seeds (1-based) for FixedPattern and list positions (0-based)
// for RoundRobin.
type Matchup struct {
	Day      int // 1 or 2
	Position int // 0-based order within the day
	Home     int
	Away     int
	Referees []int
}

// Strategy generates the two-day list of matchups for n competitors.
type Strategy interface {
	Name() string
	Matchups(n int) []Matchup
}

// Strategy names accepted by Get.
const (
	NameFixedPattern = "fixed_pattern"
	NameRoundRobin   = "round_robin"
)

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case NameFixedPattern, "":
		return &FixedPattern{}, nil
	case NameRoundRobin:
		return &RoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// RoundRobin pairs every competitor with every other exactly once and splits
// the list by position: the first ceil(total/2) pairs on day 1, the rest on
// day 2. It assigns no referees.
type RoundRobin struct{}

func (s *RoundRobin) Name() string { return NameRoundRobin }

func (s *RoundRobin) Matchups(n int) []Matchup {
	if n < 2 {
		return nil
	}
	total := n * (n - 1) / 2
	firstDay := (total + 1) / 2

	matchups := make([]Matchup, 0, total)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			idx := len(matchups)
			m := Matchup{Day: 1, Position: idx, Home: i, Away: j}
			if idx >= firstDay {
				m.Day = 2
				m.Position = idx - firstDay
			}
			matchups = append(matchups, m)
		}
	}
	return matchups
}
