package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairingTables(t *testing.T) {
	t.Run("each day has six entries", func(t *testing.T) {
		assert.Len(t, Day1, 6)
		assert.Len(t, Day2, 6)
	})

	t.Run("day one follows the published order", func(t *testing.T) {
		want := []SeedPair{{1, 2}, {3, 5}, {4, 6}, {1, 3}, {2, 4}, {5, 6}}
		for i, e := range Day1 {
			assert.Equal(t, want[i], e.SeedPair, "position %d", i)
		}
	})

	t.Run("no diagonal pair ever meets", func(t *testing.T) {
		for _, table := range Tables() {
			for _, e := range table {
				assert.False(t, IsDiagonal(e.Home, e.Away), "%d vs %d", e.Home, e.Away)
			}
		}
	})

	t.Run("every seed plays four distinct non-diagonal opponents", func(t *testing.T) {
		opponents := make(map[int]map[int]int)
		for seed := 1; seed <= GroupSize; seed++ {
			opponents[seed] = make(map[int]int)
		}
		for _, table := range Tables() {
			for _, e := range table {
				opponents[e.Home][e.Away]++
				opponents[e.Away][e.Home]++
			}
		}
		for seed, opp := range opponents {
			assert.Len(t, opp, 4, "seed %d", seed)
			for o, n := range opp {
				assert.Equal(t, 1, n, "seed %d meets %d more than once", seed, o)
			}
			assert.NotContains(t, opp, DiagonalOf(seed))
		}
	})

	t.Run("every seed plays twice per day", func(t *testing.T) {
		for d, table := range Tables() {
			counts := make(map[int]int)
			for _, e := range table {
				counts[e.Home]++
				counts[e.Away]++
			}
			for seed := 1; seed <= GroupSize; seed++ {
				assert.Equal(t, 2, counts[seed], "day %d seed %d", d+1, seed)
			}
		}
	})

	t.Run("no seed plays in adjacent slots", func(t *testing.T) {
		for d, table := range Tables() {
			for i := 1; i < len(table); i++ {
				prev, cur := table[i-1], table[i]
				for _, s := range []int{cur.Home, cur.Away} {
					assert.False(t, s == prev.Home || s == prev.Away,
						"day %d seed %d plays slots %d and %d", d+1, s, i, i+1)
				}
			}
		}
	})

	t.Run("referees are idle and duty is balanced", func(t *testing.T) {
		duties := make(map[int]int)
		for _, table := range Tables() {
			for _, e := range table {
				require.NotEqual(t, e.Referees[0], e.Referees[1])
				for _, r := range e.Referees {
					assert.NotEqual(t, e.Home, r)
					assert.NotEqual(t, e.Away, r)
					duties[r]++
				}
			}
		}
		for seed := 1; seed <= GroupSize; seed++ {
			assert.Equal(t, 4, duties[seed], "seed %d", seed)
		}
	})
}

func TestDiagonals(t *testing.T) {
	assert.True(t, IsDiagonal(1, 6))
	assert.True(t, IsDiagonal(5, 2))
	assert.True(t, IsDiagonal(3, 4))
	assert.False(t, IsDiagonal(1, 2))
	assert.Equal(t, 6, DiagonalOf(1))
	assert.Equal(t, 3, DiagonalOf(4))
	assert.Equal(t, 0, DiagonalOf(7))
}

func TestFixedPatternMatchups(t *testing.T) {
	m := (&FixedPattern{}).Matchups(GroupSize)
	require.Len(t, m, 12)
	assert.Equal(t, 1, m[0].Day)
	assert.Equal(t, 2, m[6].Day)
	assert.Equal(t, 0, m[6].Position)
	assert.Equal(t, []int{4, 6}, m[0].Referees)
}

func TestRoundRobinMatchups(t *testing.T) {
	s := &RoundRobin{}

	t.Run("covers every pair once", func(t *testing.T) {
		for n := 2; n <= 9; n++ {
			m := s.Matchups(n)
			assert.Len(t, m, n*(n-1)/2, "n=%d", n)
			seen := make(map[[2]int]bool)
			for _, x := range m {
				key := [2]int{min(x.Home, x.Away), max(x.Home, x.Away)}
				assert.False(t, seen[key], "n=%d pair %v repeated", n, key)
				seen[key] = true
			}
		}
	})

	t.Run("first day takes the larger half", func(t *testing.T) {
		m := s.Matchups(5) // 10 pairs
		day1 := 0
		for _, x := range m {
			if x.Day == 1 {
				day1++
			}
		}
		assert.Equal(t, 5, day1)

		m = s.Matchups(6) // 15 pairs
		day1 = 0
		for _, x := range m {
			if x.Day == 1 {
				day1++
			}
		}
		assert.Equal(t, 8, day1)
	})

	t.Run("positions restart on day two", func(t *testing.T) {
		m := s.Matchups(4) // 6 pairs, 3 per day
		assert.Equal(t, 2, m[3].Day)
		assert.Equal(t, 0, m[3].Position)
		assert.Equal(t, 2, m[5].Position)
	})

	t.Run("too few competitors", func(t *testing.T) {
		assert.Empty(t, s.Matchups(1))
	})
}

func TestGet(t *testing.T) {
	s, err := Get("round_robin")
	require.NoError(t, err)
	assert.Equal(t, NameRoundRobin, s.Name())

	s, err = Get("")
	require.NoError(t, err)
	assert.Equal(t, NameFixedPattern, s.Name())

	_, err = Get("swiss")
	assert.Error(t, err)
}
