package fixture

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/youthcup/internal/kickoff"
)

func TestPair(t *testing.T) {
	t.Run("normalizes order", func(t *testing.T) {
		assert.Equal(t, NewPair("b", "a"), NewPair("a", "b"))
		assert.Equal(t, "a-b", NewPair("b", "a").String())
	})

	t.Run("fixture pair ignores home and away", func(t *testing.T) {
		f1 := Fixture{Home: "x", Away: "y"}
		f2 := Fixture{Home: "y", Away: "x"}
		assert.Equal(t, f1.Pair(), f2.Pair())
	})
}

func TestStableID(t *testing.T) {
	f := Fixture{
		Date:  time.Date(2027, 3, 20, 0, 0, 0, 0, time.UTC),
		Time:  kickoff.At(9, 0),
		Slot:  1,
		Group: "A",
		Home:  "a1",
		Away:  "a2",
	}

	t.Run("is a valid uuid", func(t *testing.T) {
		id, err := uuid.Parse(StableID(f))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), id.Version())
	})

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, StableID(f), StableID(f))
	})

	t.Run("differs by slot", func(t *testing.T) {
		g := f
		g.Slot = 2
		assert.NotEqual(t, StableID(f), StableID(g))
	})
}

func TestFixtureHelpers(t *testing.T) {
	f := Fixture{Order: 7, Home: "a", Away: "b"}
	assert.True(t, f.Involves("a"))
	assert.False(t, f.Involves("c"))
	assert.Equal(t, "b", f.Opponent("a"))
	assert.Equal(t, "a", f.Opponent("b"))
	assert.Equal(t, "#7", f.Ref())
	f.ID = "abc"
	assert.Equal(t, "abc", f.Ref())
}

func TestCompetitorLabel(t *testing.T) {
	assert.Equal(t, "FCR", Competitor{ID: "1", Name: "FC Reading", ShortName: "FCR"}.Label())
	assert.Equal(t, "FC Reading", Competitor{ID: "1", Name: "FC Reading"}.Label())
	assert.Equal(t, "1", Competitor{ID: "1"}.Label())
}
