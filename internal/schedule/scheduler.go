package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/kickoff"
	"github.com/derekprior/youthcup/internal/strategy"
)

// Input is everything a scheduler needs. Timing is optional; nil means the
// default 09:00 / 15 / 10 rhythm.
type Input struct {
	Competitors []fixture.Competitor
	Venues      []fixture.Venue
	Day1        time.Time
	Day2        time.Time
	Timing      *kickoff.Settings
}

// Stats summarizes a generated schedule.
type Stats struct {
	TotalMatches    int
	MatchesPerGroup int
	MatchesPerTeam  int
}

// TeamMetrics holds per-competitor schedule statistics.
type TeamMetrics struct {
	Matches int
	Referee int
	PerDay  [2]int
}

// Result is the output of a scheduler run. OK is false only when no fixture
// at all could be produced.
type Result struct {
	OK          bool
	Fixtures    []fixture.Fixture
	Day1        []fixture.Fixture
	Day2        []fixture.Fixture
	Warnings    []string
	Stats       Stats
	TeamMetrics map[string]*TeamMetrics
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) add(f fixture.Fixture, day int) {
	r.Fixtures = append(r.Fixtures, f)
	if day == 1 {
		r.Day1 = append(r.Day1, f)
	} else {
		r.Day2 = append(r.Day2, f)
	}
}

// Generate runs the scheduler for the named strategy, then its companion
// self-consistency checks, whose findings are appended to the warnings.
func Generate(name string, in Input) (*Result, error) {
	strat, err := strategy.Get(name)
	if err != nil {
		return nil, err
	}
	if err := kickoff.Resolve(in.Timing).Validate(); err != nil {
		return nil, fmt.Errorf("timing: %w", err)
	}

	var result *Result
	switch strat.Name() {
	case strategy.NameRoundRobin:
		result = RoundRobin(in)
		if result.OK {
			result.Warnings = append(result.Warnings, CheckRoundRobin(result.Fixtures, in.Competitors)...)
		}
	default:
		result = FixedPattern(in)
		if result.OK {
			result.Warnings = append(result.Warnings, CheckGroupBalance(result.Fixtures, in.Competitors)...)
		}
	}
	if result.OK {
		result.Warnings = append(result.Warnings, CheckRest(result.Fixtures, in.Competitors)...)
	}
	result.TeamMetrics = buildMetrics(result.Fixtures, in)
	return result, nil
}

func buildMetrics(fixtures []fixture.Fixture, in Input) map[string]*TeamMetrics {
	metrics := make(map[string]*TeamMetrics, len(in.Competitors))
	for _, c := range in.Competitors {
		metrics[c.ID] = &TeamMetrics{}
	}
	get := func(id string) *TeamMetrics {
		m, ok := metrics[id]
		if !ok {
			m = &TeamMetrics{}
			metrics[id] = m
		}
		return m
	}
	for _, f := range fixtures {
		day := 0
		if f.Date.Equal(in.Day2) {
			day = 1
		}
		for _, id := range []string{f.Home, f.Away} {
			m := get(id)
			m.Matches++
			m.PerDay[day]++
		}
		for _, id := range f.Referees {
			get(id).Referee++
		}
	}
	return metrics
}

// groupLabels returns the distinct non-empty group labels in sorted order
// along with each group's members in input order.
func groupLabels(competitors []fixture.Competitor) ([]string, map[string][]fixture.Competitor) {
	members := make(map[string][]fixture.Competitor)
	var labels []string
	for _, c := range competitors {
		if c.Group == "" {
			continue
		}
		if _, ok := members[c.Group]; !ok {
			labels = append(labels, c.Group)
		}
		members[c.Group] = append(members[c.Group], c)
	}
	sort.Strings(labels)
	return labels, members
}

func dayDate(in Input, day int) time.Time {
	if day == 2 {
		return in.Day2
	}
	return in.Day1
}
