package schedule

import (
	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/kickoff"
	"github.com/derekprior/youthcup/internal/strategy"
)

// RoundRobin schedules a single round robin over all competitors, ignoring
// groups. The first half of the pairs play on day 1 and the rest on day 2;
// within a day, matches rotate across venues and each venue runs its own
// kickoff sequence. No referees are assigned and no pairings are excluded.
func RoundRobin(in Input) *Result {
	timing := kickoff.Resolve(in.Timing)
	n := len(in.Competitors)
	r := &Result{}

	if n < 2 {
		r.warn("at least 2 competitors are required, got %d", n)
		return r
	}
	if len(in.Venues) == 0 {
		r.warn("at least 1 venue is required")
		return r
	}

	matchups := (&strategy.RoundRobin{}).Matchups(n)
	venueCount := len(in.Venues)

	var perDay [2]int
	for _, m := range matchups {
		perDay[m.Day-1]++
	}
	var times [2][]kickoff.Clock
	for d, count := range perDay {
		// worst-case load on a single venue
		times[d] = timing.Times((count + venueCount - 1) / venueCount)
	}

	for i, m := range matchups {
		slot := m.Position / venueCount
		f := fixture.Fixture{
			Order: i + 1,
			Date:  dayDate(in, m.Day),
			Time:  times[m.Day-1][slot],
			Slot:  slot + 1,
			Venue: in.Venues[m.Position%venueCount].Name,
			Home:  in.Competitors[m.Home].ID,
			Away:  in.Competitors[m.Away].ID,
		}
		f.ID = fixture.StableID(f)
		r.add(f, m.Day)
	}

	r.OK = true
	r.Stats = Stats{
		TotalMatches:    len(r.Fixtures),
		MatchesPerGroup: len(r.Fixtures),
		MatchesPerTeam:  n - 1,
	}
	return r
}
