package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/kickoff"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

const testConfigYAML = `
tournament:
  name: Spring Cup U10
  days: ["2027-03-20", "2027-03-21"]

format: fixed_pattern

timing:
  start_time: "08:30"
  interval: 5

teams:
  - {id: a1, name: Ajax Reading, short_name: AJR, group: A, seed: 1, type: local, region: Berkshire, league: TVJL}
  - {id: a2, name: Burghfield, group: A, seed: 2, type: invited}
  - {id: a3, name: Caversham, group: A, seed: 3}
  - {id: a4, name: Damson Park, group: A, seed: 4}
  - {id: a5, name: Earley Town, group: A, seed: 5}
  - {name: Finchampstead, group: A, seed: 6}

venues:
  - {id: p1, name: Pitch 1, group: A}
  - {name: Pitch 2}

excluded_pairs:
  - [a1, a3]

rules:
  local_teams: false
  same_region: true
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	require.NoError(t, err)

	t.Run("tournament days", func(t *testing.T) {
		require.Len(t, cfg.Tournament.Days, 2)
		assert.Equal(t, mustDate("2027-03-20"), cfg.Tournament.Days[0].Time)
		assert.Equal(t, mustDate("2027-03-21"), cfg.Tournament.Days[1].Time)
		assert.Equal(t, "Spring Cup U10", cfg.Tournament.Name)
	})

	t.Run("timing overrides only what is set", func(t *testing.T) {
		s := cfg.Settings()
		assert.Equal(t, kickoff.At(8, 30), s.Start)
		assert.Equal(t, kickoff.DefaultDuration, s.Duration)
		assert.Equal(t, 5, s.Interval)
	})

	t.Run("competitors", func(t *testing.T) {
		cs := cfg.Competitors()
		require.Len(t, cs, 6)
		assert.Equal(t, fixture.Competitor{
			ID: "a1", Name: "Ajax Reading", ShortName: "AJR", Group: "A", Seed: 1,
			Type: fixture.TypeLocal, Region: "Berkshire", League: "TVJL",
		}, cs[0])
		assert.Equal(t, "Finchampstead", cs[5].ID)
	})

	t.Run("venues", func(t *testing.T) {
		vs := cfg.FixtureVenues()
		require.Len(t, vs, 2)
		assert.Equal(t, "A", vs[0].Group)
		assert.Equal(t, "Pitch 2", vs[1].ID)
	})

	t.Run("excluded pairs are normalized", func(t *testing.T) {
		assert.Equal(t, []fixture.Pair{fixture.NewPair("a3", "a1")}, cfg.Excluded())
	})

	t.Run("rule toggles", func(t *testing.T) {
		require.NotNil(t, cfg.Rules.LocalTeams)
		assert.False(t, *cfg.Rules.LocalTeams)
		require.NotNil(t, cfg.Rules.SameRegion)
		assert.True(t, *cfg.Rules.SameRegion)
		assert.Nil(t, cfg.Rules.SameLeague)
	})

	t.Run("schedule input", func(t *testing.T) {
		in := cfg.ScheduleInput()
		assert.Equal(t, mustDate("2027-03-20"), in.Day1)
		assert.Equal(t, mustDate("2027-03-21"), in.Day2)
		require.NotNil(t, in.Timing)
		assert.Equal(t, "08:30", in.Timing.Start.String())
		assert.Len(t, in.Competitors, 6)
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	yaml := `
tournament:
  days: ["2027-03-20", "2027-03-21"]
teams:
  - {name: One}
  - {name: Two}
venues:
  - {name: Field}
`
	cfg, err := LoadFromBytes([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, "fixed_pattern", cfg.Format)
	assert.Equal(t, kickoff.DefaultSettings(), cfg.Settings())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournament.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Teams, 6)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	base := func(mutate func(string) string) string {
		return mutate(testConfigYAML)
	}

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "day 2 before day 1",
			yaml:    base(func(s string) string { return strings.Replace(s, `["2027-03-20", "2027-03-21"]`, `["2027-03-21", "2027-03-20"]`, 1) }),
			wantErr: "must be after day 1",
		},
		{
			name:    "single day",
			yaml:    base(func(s string) string { return strings.Replace(s, `["2027-03-20", "2027-03-21"]`, `["2027-03-20"]`, 1) }),
			wantErr: "exactly 2 days",
		},
		{
			name:    "bad date",
			yaml:    base(func(s string) string { return strings.Replace(s, "2027-03-20", "03/20/2027", 1) }),
			wantErr: "invalid date",
		},
		{
			name:    "unknown format",
			yaml:    base(func(s string) string { return strings.Replace(s, "format: fixed_pattern", "format: swiss", 1) }),
			wantErr: "unknown strategy",
		},
		{
			name:    "bad start time",
			yaml:    base(func(s string) string { return strings.Replace(s, `"08:30"`, `"8.30"`, 1) }),
			wantErr: "invalid time",
		},
		{
			name:    "zero duration",
			yaml:    base(func(s string) string { return strings.Replace(s, "interval: 5", "match_duration: 0", 1) }),
			wantErr: "match duration",
		},
		{
			name:    "duplicate team",
			yaml:    base(func(s string) string { return strings.Replace(s, "id: a2", "id: a1", 1) }),
			wantErr: `team "a1" appears more than once`,
		},
		{
			name:    "repeated team name",
			yaml:    base(func(s string) string { return strings.Replace(s, "name: Burghfield", "name: Ajax Reading", 1) }),
			wantErr: `team "a2": "Ajax Reading" is already used by team "a1"`,
		},
		{
			name:    "short name clashes with another name ignoring case",
			yaml:    base(func(s string) string { return strings.Replace(s, "name: Caversham,", "name: Caversham, short_name: burghfield,", 1) }),
			wantErr: `"burghfield" is already used by team "a2"`,
		},
		{
			name:    "comma in a team name",
			yaml:    base(func(s string) string { return strings.Replace(s, "name: Caversham", `name: "Caversham, Reading"`, 1) }),
			wantErr: "must not contain a comma",
		},
		{
			name:    "seed out of range",
			yaml:    base(func(s string) string { return strings.Replace(s, "seed: 5", "seed: 7", 1) }),
			wantErr: "seed 7",
		},
		{
			name:    "bad team type",
			yaml:    base(func(s string) string { return strings.Replace(s, "type: invited", "type: guest", 1) }),
			wantErr: "type must be",
		},
		{
			name:    "unknown excluded team",
			yaml:    base(func(s string) string { return strings.Replace(s, "[a1, a3]", "[a1, zz]", 1) }),
			wantErr: `unknown team "zz"`,
		},
		{
			name:    "excluded pair of one team",
			yaml:    base(func(s string) string { return strings.Replace(s, "[a1, a3]", "[a1, a1]", 1) }),
			wantErr: "same team twice",
		},
		{
			name:    "no venues",
			yaml:    base(func(s string) string { return strings.Replace(strings.Replace(s, "  - {id: p1, name: Pitch 1, group: A}\n", "", 1), "  - {name: Pitch 2}\n", "", 1) }),
			wantErr: "at least one venue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
