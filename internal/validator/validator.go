// Package validator checks a candidate fixture list against the scheduling
// rules and classifies each finding as an error, warning or info.
//
// Every rule is a pure Check function over an Input. Validate runs them in a
// fixed order, so the same input always yields the same violation list.
package validator

import (
	"fmt"

	"github.com/derekprior/youthcup/internal/fixture"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type RuleType string

const (
	RuleSameTimeConflict RuleType = "sameTimeConflict"
	RuleDuplicateMatch   RuleType = "duplicateMatch"
	RuleSelfMatch        RuleType = "selfMatch"
	RuleTooManyPerDay    RuleType = "tooManyMatchesPerDay"
	RuleConsecutiveSlots RuleType = "consecutiveMatches"
	RuleRefereeConflict  RuleType = "refereeConflict"
	RuleInsufficientDay  RuleType = "insufficientMatches"
	RuleTooManyTotal     RuleType = "tooManyMatchesTotal"
	RuleLocalTeams       RuleType = "localTeamMatch"
	RuleSameRegion       RuleType = "sameRegionMatch"
	RuleSameLeague       RuleType = "sameLeagueMatch"
	RuleExcludedPair     RuleType = "excludedPairScheduled"
	RuleRefereeImbalance RuleType = "refereeImbalance"
)

// Violation is one finding. Date and Slot are set for day- or slot-specific
// findings only.
type Violation struct {
	Severity      Severity
	Type          RuleType
	Label         string
	Description   string
	FixtureIDs    []string
	CompetitorIDs []string
	Date          string
	Slot          int
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.Label, v.Description)
}

// Rules toggles the optional warning checks. A nil toggle means enabled, so
// the zero value runs everything.
type Rules struct {
	MatchesPerDay    *bool `yaml:"matches_per_day"`
	ConsecutiveSlots *bool `yaml:"consecutive_slots"`
	TotalMatches     *bool `yaml:"total_matches"`
	LocalTeams       *bool `yaml:"local_teams"`
	SameRegion       *bool `yaml:"same_region"`
	SameLeague       *bool `yaml:"same_league"`
}

// Toggle returns a pointer for use in Rules literals.
func Toggle(on bool) *bool {
	return &on
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// Input is the snapshot under validation: the fixtures (edited and untouched
// alike), the competitor roster and any pairs declared as no-rematch.
type Input struct {
	Fixtures    []fixture.Fixture
	Competitors []fixture.Competitor
	Excluded    []fixture.Pair
}

// Check is a single rule.
type Check func(in Input) []Violation

type step struct {
	check   Check
	enabled func(Rules) bool
}

func always(Rules) bool { return true }

// steps is the fixed execution order: errors, then warnings, then info.
var steps = []step{
	{CheckSameTimeConflicts, always},
	{CheckDuplicateMatches, always},
	{CheckSelfMatches, always},
	{CheckMatchesPerDay, func(r Rules) bool { return enabled(r.MatchesPerDay) }},
	{CheckConsecutiveSlots, func(r Rules) bool { return enabled(r.ConsecutiveSlots) }},
	{CheckRefereeConflicts, always},
	{CheckMatchesPerOpeningDay, always},
	{CheckTotalMatches, func(r Rules) bool { return enabled(r.TotalMatches) }},
	{CheckLocalTeams, func(r Rules) bool { return enabled(r.LocalTeams) }},
	{CheckSameRegion, func(r Rules) bool { return enabled(r.SameRegion) }},
	{CheckSameLeague, func(r Rules) bool { return enabled(r.SameLeague) }},
	{CheckExcludedPairs, always},
	{CheckRefereeBalance, always},
}

// Validate runs every enabled check against the fixtures. It never modifies
// its inputs. A fixture with neither ID nor Order is reported by its 1-based
// input position as "@N".
func Validate(fixtures []fixture.Fixture, competitors []fixture.Competitor, excluded []fixture.Pair, rules Rules) []Violation {
	in := Input{Fixtures: withPositionRefs(fixtures), Competitors: competitors, Excluded: excluded}
	var violations []Violation
	for _, s := range steps {
		if !s.enabled(rules) {
			continue
		}
		violations = append(violations, s.check(in)...)
	}
	return violations
}

// Summary partitions violations by severity. Only errors block saving.
type Summary struct {
	Errors   []Violation
	Warnings []Violation
	Info     []Violation
	CanSave  bool
}

func Summarize(violations []Violation) Summary {
	var s Summary
	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			s.Errors = append(s.Errors, v)
		case SeverityWarning:
			s.Warnings = append(s.Warnings, v)
		case SeverityInfo:
			s.Info = append(s.Info, v)
		}
	}
	s.CanSave = len(s.Errors) == 0
	return s
}
