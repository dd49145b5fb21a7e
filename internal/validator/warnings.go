package validator

import (
	"fmt"
	"sort"

	"github.com/derekprior/youthcup/internal/fixture"
)

const (
	maxMatchesPerDay   = 2 // three or more in a day is a warning
	maxMatchesTotal    = 4 // five or more overall is a warning
	minMatchesPerDay   = 2
	openingDaysChecked = 2
)

type teamDay struct {
	team string
	date string
}

func byTeamDay(fixtures []fixture.Fixture) *buckets[teamDay, fixture.Fixture] {
	b := newBuckets[teamDay, fixture.Fixture]()
	for _, f := range fixtures {
		for _, id := range participants(f) {
			b.add(teamDay{id, dateOf(f)}, f)
		}
	}
	return b
}

// CheckMatchesPerDay warns when a competitor plays three or more matches in
// one day.
func CheckMatchesPerDay(in Input) []Violation {
	names := newRoster(in.Competitors)
	b := byTeamDay(in.Fixtures)

	var violations []Violation
	for _, k := range b.keys {
		fixtures := b.items[k]
		if len(fixtures) <= maxMatchesPerDay {
			continue
		}
		violations = append(violations, Violation{
			Severity:      SeverityWarning,
			Type:          RuleTooManyPerDay,
			Label:         "Too many matches in a day",
			Description:   fmt.Sprintf("%s plays %d matches on %s", names.name(k.team), len(fixtures), k.date),
			FixtureIDs:    refs(fixtures),
			CompetitorIDs: []string{k.team},
			Date:          k.date,
		})
	}
	return violations
}

// CheckConsecutiveSlots warns when a competitor plays in two numerically
// adjacent slots on the same day. Fixtures without a slot are ignored.
func CheckConsecutiveSlots(in Input) []Violation {
	names := newRoster(in.Competitors)
	b := byTeamDay(in.Fixtures)

	var violations []Violation
	for _, k := range b.keys {
		var fixtures []fixture.Fixture
		for _, f := range b.items[k] {
			// slot 0 means the slot was never set
			if f.Slot > 0 {
				fixtures = append(fixtures, f)
			}
		}
		sort.SliceStable(fixtures, func(i, j int) bool { return fixtures[i].Slot < fixtures[j].Slot })
		for i := 1; i < len(fixtures); i++ {
			prev, cur := fixtures[i-1], fixtures[i]
			if cur.Slot-prev.Slot != 1 {
				continue
			}
			violations = append(violations, Violation{
				Severity:      SeverityWarning,
				Type:          RuleConsecutiveSlots,
				Label:         "No rest between matches",
				Description:   fmt.Sprintf("%s plays slots %d and %d back to back on %s", names.name(k.team), prev.Slot, cur.Slot, k.date),
				FixtureIDs:    []string{prev.Ref(), cur.Ref()},
				CompetitorIDs: []string{k.team},
				Date:          k.date,
				Slot:          cur.Slot,
			})
		}
	}
	return violations
}

// CheckRefereeConflicts warns when a competitor on referee duty is also
// playing in the same date and slot.
func CheckRefereeConflicts(in Input) []Violation {
	names := newRoster(in.Competitors)
	bySlot := newBuckets[slotKey, fixture.Fixture]()
	for _, f := range in.Fixtures {
		bySlot.add(slotOf(f), f)
	}

	var violations []Violation
	for _, key := range bySlot.keys {
		slot := bySlot.items[key]
		for i, f := range slot {
			for _, ref := range f.Referees {
				conflict := false
				playing := []fixture.Fixture{f}
				for j, g := range slot {
					if !g.Involves(ref) {
						continue
					}
					conflict = true
					if j != i {
						playing = append(playing, g)
					}
				}
				if !conflict {
					continue
				}
				violations = append(violations, Violation{
					Severity:      SeverityWarning,
					Type:          RuleRefereeConflict,
					Label:         "Referee is playing",
					Description:   fmt.Sprintf("%s referees and plays on %s slot %d", names.name(ref), key.date, key.slot),
					FixtureIDs:    refs(playing),
					CompetitorIDs: []string{ref},
					Date:          key.date,
					Slot:          key.slot,
				})
			}
		}
	}
	return violations
}

// CheckMatchesPerOpeningDay warns when a grouped competitor plays fewer than
// two matches on either of the first two tournament days. Only competitors
// whose group appears in the fixtures are considered.
func CheckMatchesPerOpeningDay(in Input) []Violation {
	groups := make(map[string]bool)
	dateSet := make(map[string]bool)
	for _, f := range in.Fixtures {
		if f.Group != "" {
			groups[f.Group] = true
		}
		if d := dateOf(f); d != "" {
			dateSet[d] = true
		}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > openingDaysChecked {
		dates = dates[:openingDaysChecked]
	}

	b := byTeamDay(in.Fixtures)
	var violations []Violation
	for _, c := range in.Competitors {
		if c.Group == "" || !groups[c.Group] {
			continue
		}
		for _, d := range dates {
			fixtures := b.items[teamDay{c.ID, d}]
			if len(fixtures) >= minMatchesPerDay {
				continue
			}
			violations = append(violations, Violation{
				Severity:      SeverityWarning,
				Type:          RuleInsufficientDay,
				Label:         "Too few matches in a day",
				Description:   fmt.Sprintf("%s plays %d match(es) on %s (want at least %d)", c.Label(), len(fixtures), d, minMatchesPerDay),
				FixtureIDs:    refs(fixtures),
				CompetitorIDs: []string{c.ID},
				Date:          d,
			})
		}
	}
	return violations
}

// CheckTotalMatches warns when a competitor plays five or more matches
// across the whole input.
func CheckTotalMatches(in Input) []Violation {
	names := newRoster(in.Competitors)
	b := newBuckets[string, fixture.Fixture]()
	for _, f := range in.Fixtures {
		for _, id := range participants(f) {
			b.add(id, f)
		}
	}

	var violations []Violation
	for _, id := range b.keys {
		fixtures := b.items[id]
		if len(fixtures) <= maxMatchesTotal {
			continue
		}
		violations = append(violations, Violation{
			Severity:      SeverityWarning,
			Type:          RuleTooManyTotal,
			Label:         "Too many matches",
			Description:   fmt.Sprintf("%s plays %d matches in total", names.name(id), len(fixtures)),
			FixtureIDs:    refs(fixtures),
			CompetitorIDs: []string{id},
		})
	}
	return violations
}

// CheckLocalTeams warns when two local competitors are drawn together.
func CheckLocalTeams(in Input) []Violation {
	return checkShared(in, RuleLocalTeams, "Local teams paired", func(c fixture.Competitor) string {
		if c.Type == fixture.TypeLocal {
			return c.Type
		}
		return ""
	}, func(home, away, _ string) string {
		return fmt.Sprintf("%s and %s are both local teams", home, away)
	})
}

// CheckSameRegion warns when both competitors come from the same region.
func CheckSameRegion(in Input) []Violation {
	return checkShared(in, RuleSameRegion, "Same region", func(c fixture.Competitor) string {
		return c.Region
	}, func(home, away, region string) string {
		return fmt.Sprintf("%s and %s are both from %s", home, away, region)
	})
}

// CheckSameLeague warns when both competitors play in the same league.
func CheckSameLeague(in Input) []Violation {
	return checkShared(in, RuleSameLeague, "Same league", func(c fixture.Competitor) string {
		return c.League
	}, func(home, away, league string) string {
		return fmt.Sprintf("%s and %s both play in %s", home, away, league)
	})
}

// checkShared warns for each fixture whose two competitors share a non-empty
// attribute.
func checkShared(in Input, rule RuleType, label string, attr func(fixture.Competitor) string, describe func(home, away, value string) string) []Violation {
	names := newRoster(in.Competitors)
	var violations []Violation
	for _, f := range in.Fixtures {
		if f.Home == f.Away {
			continue
		}
		home, okHome := names[f.Home]
		away, okAway := names[f.Away]
		if !okHome || !okAway {
			continue
		}
		value := attr(home)
		if value == "" || value != attr(away) {
			continue
		}
		violations = append(violations, Violation{
			Severity:      SeverityWarning,
			Type:          rule,
			Label:         label,
			Description:   describe(home.Label(), away.Label(), value),
			FixtureIDs:    []string{f.Ref()},
			CompetitorIDs: []string{f.Home, f.Away},
			Date:          dateOf(f),
			Slot:          f.Slot,
		})
	}
	return violations
}
