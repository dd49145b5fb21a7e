// Package fixture holds the values shared by the schedulers, the validator
// and the workbook adapter: competitors, venues and candidate fixtures.
package fixture

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/derekprior/youthcup/internal/kickoff"
)

// DateLayout is the calendar date format used throughout.
const DateLayout = "2006-01-02"

// Competitor types.
const (
	TypeLocal   = "local"
	TypeInvited = "invited"
)

// Competitor is a team entered in the tournament.
type Competitor struct {
	ID        string
	Name      string
	ShortName string
	Group     string
	Seed      int    // 1..6 in fixed-pattern groups, 0 when unseeded
	Type      string // TypeLocal or TypeInvited
	Region    string
	League    string
}

// Label returns the short name if set, else the name, else the ID.
func (c Competitor) Label() string {
	switch {
	case c.ShortName != "":
		return c.ShortName
	case c.Name != "":
		return c.Name
	}
	return c.ID
}

// Venue is a pitch, optionally bound to one group.
type Venue struct {
	ID    string
	Name  string
	Group string
}

// Fixture is a candidate match. ID may be empty before persistence.
type Fixture struct {
	ID       string
	Order    int // global match order assigned by a scheduler
	Date     time.Time
	Time     kickoff.Clock
	Slot     int
	Venue    string
	Group    string
	Home     string
	Away     string
	Referees []string
}

// Involves reports whether the competitor plays in the fixture.
func (f Fixture) Involves(id string) bool {
	return f.Home == id || f.Away == id
}

// Opponent returns the other side of the fixture for a participant.
func (f Fixture) Opponent(id string) string {
	if f.Home == id {
		return f.Away
	}
	return f.Home
}

// Pair returns the fixture's unordered competitor pair.
func (f Fixture) Pair() Pair {
	return NewPair(f.Home, f.Away)
}

// Ref identifies the fixture in reports: its ID, else its match order.
func (f Fixture) Ref() string {
	if f.ID != "" {
		return f.ID
	}
	return fmt.Sprintf("#%d", f.Order)
}

// Pair is an unordered pair of competitor IDs, normalized so A <= B.
type Pair struct {
	A, B string
}

// NewPair builds a normalized Pair.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{a, b}
}

func (p Pair) String() string {
	return p.A + "-" + p.B
}

// namespace scopes name-based fixture IDs to this application.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/derekprior/youthcup/fixture"))

// StableID derives a deterministic identity for a generated fixture from its
// group, date, slot, venue and competitors. Regenerating the same schedule
// yields the same IDs.
func StableID(f Fixture) string {
	key := fmt.Sprintf("%s|%s|%d|%s|%s|%s", f.Group, f.Date.Format(DateLayout), f.Slot, f.Venue, f.Home, f.Away)
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// Index maps competitor IDs to competitors.
func Index(competitors []Competitor) map[string]Competitor {
	m := make(map[string]Competitor, len(competitors))
	for _, c := range competitors {
		m[c.ID] = c
	}
	return m
}
