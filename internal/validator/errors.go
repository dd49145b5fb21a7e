package validator

import (
	"fmt"

	"github.com/derekprior/youthcup/internal/fixture"
)

// CheckSameTimeConflicts reports every competitor that appears in more than
// one fixture sharing a date and slot.
func CheckSameTimeConflicts(in Input) []Violation {
	names := newRoster(in.Competitors)
	bySlot := newBuckets[slotKey, fixture.Fixture]()
	for _, f := range in.Fixtures {
		bySlot.add(slotOf(f), f)
	}

	var violations []Violation
	for _, key := range bySlot.keys {
		byTeam := newBuckets[string, fixture.Fixture]()
		for _, f := range bySlot.items[key] {
			for _, id := range participants(f) {
				byTeam.add(id, f)
			}
		}
		for _, id := range byTeam.keys {
			fixtures := byTeam.items[id]
			if len(fixtures) < 2 {
				continue
			}
			violations = append(violations, Violation{
				Severity:      SeverityError,
				Type:          RuleSameTimeConflict,
				Label:         "Same-time conflict",
				Description:   fmt.Sprintf("%s is in %d matches on %s slot %d", names.name(id), len(fixtures), key.date, key.slot),
				FixtureIDs:    refs(fixtures),
				CompetitorIDs: []string{id},
				Date:          key.date,
				Slot:          key.slot,
			})
		}
	}
	return violations
}

// CheckDuplicateMatches reports every unordered pair scheduled more than once
// anywhere in the input.
func CheckDuplicateMatches(in Input) []Violation {
	names := newRoster(in.Competitors)
	byPair := newBuckets[fixture.Pair, fixture.Fixture]()
	for _, f := range in.Fixtures {
		byPair.add(f.Pair(), f)
	}

	var violations []Violation
	for _, p := range byPair.keys {
		fixtures := byPair.items[p]
		if len(fixtures) < 2 {
			continue
		}
		violations = append(violations, Violation{
			Severity:      SeverityError,
			Type:          RuleDuplicateMatch,
			Label:         "Duplicate match",
			Description:   fmt.Sprintf("%s vs %s is scheduled %d times", names.name(p.A), names.name(p.B), len(fixtures)),
			FixtureIDs:    refs(fixtures),
			CompetitorIDs: []string{p.A, p.B},
		})
	}
	return violations
}

// CheckSelfMatches reports fixtures whose home and away sides are the same.
func CheckSelfMatches(in Input) []Violation {
	names := newRoster(in.Competitors)
	var violations []Violation
	for _, f := range in.Fixtures {
		if f.Home != f.Away {
			continue
		}
		violations = append(violations, Violation{
			Severity:      SeverityError,
			Type:          RuleSelfMatch,
			Label:         "Team plays itself",
			Description:   fmt.Sprintf("%s is scheduled against itself", names.name(f.Home)),
			FixtureIDs:    []string{f.Ref()},
			CompetitorIDs: []string{f.Home},
			Date:          dateOf(f),
			Slot:          f.Slot,
		})
	}
	return violations
}
