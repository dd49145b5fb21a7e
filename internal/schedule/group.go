package schedule

import (
	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/kickoff"
	"github.com/derekprior/youthcup/internal/strategy"
)

// FixedPattern schedules every group of six seeded competitors over two days
// from the static pairing tables. Each competitor plays four matches, never
// meets its diagonal opponent, and referees when idle.
//
// Under-provisioned groups are scheduled as far as their seeds allow; groups
// with fewer than two members or no resolvable venue are skipped with a
// warning.
func FixedPattern(in Input) *Result {
	timing := kickoff.Resolve(in.Timing)
	r := &Result{Stats: Stats{MatchesPerGroup: 2 * len(strategy.Day1), MatchesPerTeam: 4}}

	if len(in.Competitors) < 2 {
		r.warn("at least 2 competitors are required, got %d", len(in.Competitors))
		return r
	}
	if len(in.Venues) == 0 {
		r.warn("at least 1 venue is required")
		return r
	}

	ungrouped := 0
	for _, c := range in.Competitors {
		if c.Group == "" {
			ungrouped++
		}
	}
	if ungrouped > 0 {
		r.warn("%d competitor(s) have no group and were not scheduled", ungrouped)
	}

	labels, members := groupLabels(in.Competitors)
	matchups := (&strategy.FixedPattern{}).Matchups(strategy.GroupSize)
	times := timing.Times(len(strategy.Day1))
	order := 0

	for gi, label := range labels {
		group := members[label]
		if len(group) != strategy.GroupSize {
			r.warn("group %s has %d competitors (want %d)", label, len(group), strategy.GroupSize)
		}
		if len(group) < 2 {
			r.warn("group %s skipped: not enough competitors", label)
			continue
		}

		bySeed := seedIndex(r, label, group)

		venue, ok := resolveVenue(label, gi, in.Venues)
		if !ok {
			r.warn("group %s skipped: no venue available", label)
			continue
		}

		skipped := 0
		for _, m := range matchups {
			home, okHome := bySeed[m.Home]
			away, okAway := bySeed[m.Away]
			if !okHome || !okAway {
				skipped++
				continue
			}

			var refs []string
			for _, seed := range m.Referees {
				if ref, ok := bySeed[seed]; ok {
					refs = append(refs, ref.ID)
				}
			}

			order++
			f := fixture.Fixture{
				Order:    order,
				Date:     dayDate(in, m.Day),
				Time:     times[m.Position],
				Slot:     m.Position + 1,
				Venue:    venue.Name,
				Group:    label,
				Home:     home.ID,
				Away:     away.ID,
				Referees: refs,
			}
			f.ID = fixture.StableID(f)
			r.add(f, m.Day)
		}
		if skipped > 0 {
			r.warn("group %s: %d match(es) dropped for missing seeds", label, skipped)
		}
	}

	r.OK = len(r.Fixtures) > 0
	r.Stats.TotalMatches = len(r.Fixtures)
	return r
}

// seedIndex maps seeds to competitors, warning about seeds outside 1..6 and
// about duplicates (the first competitor with a seed wins).
func seedIndex(r *Result, label string, group []fixture.Competitor) map[int]fixture.Competitor {
	bySeed := make(map[int]fixture.Competitor, len(group))
	for _, c := range group {
		if c.Seed < 1 || c.Seed > strategy.GroupSize {
			r.warn("group %s: %s has invalid seed %d", label, c.Label(), c.Seed)
			continue
		}
		if prev, dup := bySeed[c.Seed]; dup {
			r.warn("group %s: seed %d held by both %s and %s", label, c.Seed, prev.Label(), c.Label())
			continue
		}
		bySeed[c.Seed] = c
	}
	return bySeed
}
