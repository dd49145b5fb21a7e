package schedule

import (
	"fmt"
	"sort"

	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/strategy"
)

// CheckGroupBalance re-derives each grouped competitor's match count and
// opponents from a fixed-pattern schedule and reports any competitor that
// does not play exactly four matches or that meets its diagonal opponent.
func CheckGroupBalance(fixtures []fixture.Fixture, competitors []fixture.Competitor) []string {
	byID := fixture.Index(competitors)
	counts := make(map[string]int)
	opponents := make(map[string][]string)
	for _, f := range fixtures {
		counts[f.Home]++
		counts[f.Away]++
		opponents[f.Home] = append(opponents[f.Home], f.Away)
		opponents[f.Away] = append(opponents[f.Away], f.Home)
	}

	var problems []string
	for _, c := range competitors {
		if c.Group == "" {
			continue
		}
		if counts[c.ID] != 4 {
			problems = append(problems, fmt.Sprintf("%s plays %d matches (want 4)", c.Label(), counts[c.ID]))
		}
		for _, opp := range opponents[c.ID] {
			o, ok := byID[opp]
			if ok && o.Group == c.Group && strategy.IsDiagonal(c.Seed, o.Seed) && c.ID < o.ID {
				problems = append(problems, fmt.Sprintf("%s meets diagonal opponent %s", c.Label(), o.Label()))
			}
		}
	}
	return problems
}

// CheckRoundRobin reports any competitor that does not play exactly N-1
// matches against N-1 distinct opponents.
func CheckRoundRobin(fixtures []fixture.Fixture, competitors []fixture.Competitor) []string {
	want := len(competitors) - 1
	counts := make(map[string]int)
	opponents := make(map[string]map[string]bool)
	for _, f := range fixtures {
		for _, id := range []string{f.Home, f.Away} {
			counts[id]++
			if opponents[id] == nil {
				opponents[id] = make(map[string]bool)
			}
			opponents[id][f.Opponent(id)] = true
		}
	}

	var problems []string
	for _, c := range competitors {
		if counts[c.ID] != want {
			problems = append(problems, fmt.Sprintf("%s plays %d matches (want %d)", c.Label(), counts[c.ID], want))
		}
		if len(opponents[c.ID]) != want {
			problems = append(problems, fmt.Sprintf("%s meets %d distinct opponents (want %d)", c.Label(), len(opponents[c.ID]), want))
		}
	}
	return problems
}

// CheckRest reports competitors scheduled in two numerically adjacent slots
// on the same day, which leaves no rest between matches.
func CheckRest(fixtures []fixture.Fixture, competitors []fixture.Competitor) []string {
	type teamDay struct {
		team string
		date string
	}
	slots := make(map[teamDay][]int)
	for _, f := range fixtures {
		date := f.Date.Format(fixture.DateLayout)
		slots[teamDay{f.Home, date}] = append(slots[teamDay{f.Home, date}], f.Slot)
		slots[teamDay{f.Away, date}] = append(slots[teamDay{f.Away, date}], f.Slot)
	}

	keys := make([]teamDay, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].team < keys[j].team
	})

	byID := fixture.Index(competitors)
	var warnings []string
	for _, k := range keys {
		s := slots[k]
		sort.Ints(s)
		for i := 1; i < len(s); i++ {
			if s[i]-s[i-1] == 1 {
				name := k.team
				if c, ok := byID[k.team]; ok {
					name = c.Label()
				}
				warnings = append(warnings, fmt.Sprintf("%s plays slots %d and %d on %s with no rest", name, s[i-1], s[i], k.date))
			}
		}
	}
	return warnings
}
