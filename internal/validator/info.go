package validator

import (
	"fmt"
	"sort"

	"github.com/derekprior/youthcup/internal/fixture"
)

const refereeImbalanceThreshold = 2

// CheckExcludedPairs notes declared no-rematch pairs that are scheduled
// anyway.
func CheckExcludedPairs(in Input) []Violation {
	if len(in.Excluded) == 0 {
		return nil
	}
	names := newRoster(in.Competitors)
	byPair := newBuckets[fixture.Pair, fixture.Fixture]()
	for _, f := range in.Fixtures {
		byPair.add(f.Pair(), f)
	}

	seen := make(map[fixture.Pair]bool)
	var violations []Violation
	for _, p := range in.Excluded {
		p = fixture.NewPair(p.A, p.B)
		if seen[p] {
			continue
		}
		seen[p] = true
		fixtures := byPair.items[p]
		if len(fixtures) == 0 {
			continue
		}
		violations = append(violations, Violation{
			Severity:      SeverityInfo,
			Type:          RuleExcludedPair,
			Label:         "Rematch of excluded pair",
			Description:   fmt.Sprintf("%s and %s were not meant to meet again", names.name(p.A), names.name(p.B)),
			FixtureIDs:    refs(fixtures),
			CompetitorIDs: []string{p.A, p.B},
		})
	}
	return violations
}

// CheckRefereeBalance notes groups where referee duty differs by two or more
// between the busiest and least busy competitor.
func CheckRefereeBalance(in Input) []Violation {
	duties := make(map[string]int)
	groupSet := make(map[string]bool)
	for _, f := range in.Fixtures {
		if f.Group != "" {
			groupSet[f.Group] = true
		}
		for _, r := range f.Referees {
			duties[r]++
		}
	}
	groups := make([]string, 0, len(groupSet))
	for g := range groupSet {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var violations []Violation
	for _, g := range groups {
		var members []fixture.Competitor
		for _, c := range in.Competitors {
			if c.Group == g {
				members = append(members, c)
			}
		}
		if len(members) < 2 {
			continue
		}

		most, least := members[0], members[0]
		for _, c := range members[1:] {
			if duties[c.ID] > duties[most.ID] {
				most = c
			}
			if duties[c.ID] < duties[least.ID] {
				least = c
			}
		}
		if duties[most.ID]-duties[least.ID] < refereeImbalanceThreshold {
			continue
		}
		desc := fmt.Sprintf("group %s: %s referees %d times, %s only %d",
			g, most.Label(), duties[most.ID], least.Label(), duties[least.ID])
		violations = append(violations, Violation{
			Severity:      SeverityInfo,
			Type:          RuleRefereeImbalance,
			Label:         "Uneven referee duty",
			Description:   desc,
			CompetitorIDs: []string{most.ID, least.ID},
		})
	}
	return violations
}
