package strategy

// GroupSize is the number of competitors a fixed-pattern group requires.
const GroupSize = 6

// SeedPair is a pairing of two seeds within a six-team group.
type SeedPair struct {
	Home, Away int
}

// Entry is one slot of a pairing table: the match and the two idle seeds
// on referee duty.
type Entry struct {
	SeedPair
	Referees [2]int
}

// Table is an ordered list of entries; position i kicks off in slot i+1.
type Table []Entry

// Diagonals are the seed pairs that never meet inside a group.
var Diagonals = []SeedPair{{1, 6}, {2, 5}, {3, 4}}

// Day1 splits into two rounds ({1-2, 3-5, 4-6} and {1-3, 2-4, 5-6}); each
// match is refereed by another pair of the same round.
var Day1 = Table{
	{SeedPair{1, 2}, [2]int{4, 6}},
	{SeedPair{3, 5}, [2]int{1, 2}},
	{SeedPair{4, 6}, [2]int{3, 5}},
	{SeedPair{1, 3}, [2]int{5, 6}},
	{SeedPair{2, 4}, [2]int{1, 3}},
	{SeedPair{5, 6}, [2]int{2, 4}},
}

// Day2 covers the remaining six non-diagonal pairs, which form the triangles
// {1,4,5} and {2,3,6}. The triangles alternate slots and referee each other.
var Day2 = Table{
	{SeedPair{1, 4}, [2]int{2, 6}},
	{SeedPair{2, 3}, [2]int{1, 5}},
	{SeedPair{4, 5}, [2]int{2, 3}},
	{SeedPair{3, 6}, [2]int{1, 4}},
	{SeedPair{1, 5}, [2]int{3, 6}},
	{SeedPair{2, 6}, [2]int{4, 5}},
}

// IsDiagonal reports whether two seeds form a forbidden pairing.
func IsDiagonal(a, b int) bool {
	for _, d := range Diagonals {
		if (d.Home == a && d.Away == b) || (d.Home == b && d.Away == a) {
			return true
		}
	}
	return false
}

// DiagonalOf returns the seed a given seed never meets, or 0 for seeds
// outside 1..6.
func DiagonalOf(seed int) int {
	if seed < 1 || seed > GroupSize {
		return 0
	}
	return GroupSize + 1 - seed
}

// Tables returns the day tables in day order.
func Tables() []Table {
	return []Table{Day1, Day2}
}

// FixedPattern emits the twelve matches of a six-team group from the static
// day tables. Any n other than GroupSize is still answered from the tables;
// the scheduler drops entries whose seeds it cannot resolve.
type FixedPattern struct{}

func (s *FixedPattern) Name() string { return NameFixedPattern }

func (s *FixedPattern) Matchups(n int) []Matchup {
	var matchups []Matchup
	for d, table := range Tables() {
		for pos, e := range table {
			matchups = append(matchups, Matchup{
				Day:      d + 1,
				Position: pos,
				Home:     e.Home,
				Away:     e.Away,
				Referees: []int{e.Referees[0], e.Referees[1]},
			})
		}
	}
	return matchups
}
