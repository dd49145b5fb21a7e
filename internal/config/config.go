package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/kickoff"
	"github.com/derekprior/youthcup/internal/schedule"
	"github.com/derekprior/youthcup/internal/strategy"
	"github.com/derekprior/youthcup/internal/validator"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(fixture.DateLayout, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type Tournament struct {
	Name string `yaml:"name"`
	Days []Date `yaml:"days"`
}

// Timing overrides the default kickoff rhythm. Omitted keys keep their
// defaults.
type Timing struct {
	StartTime     *kickoff.Clock `yaml:"start_time"`
	MatchDuration *int           `yaml:"match_duration"`
	Interval      *int           `yaml:"interval"`
}

type Team struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Group     string `yaml:"group"`
	Seed      int    `yaml:"seed"`
	Type      string `yaml:"type"`
	Region    string `yaml:"region"`
	League    string `yaml:"league"`
}

type Venue struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Group string `yaml:"group"`
}

type Config struct {
	Tournament    Tournament      `yaml:"tournament"`
	Format        string          `yaml:"format"`
	Timing        Timing          `yaml:"timing"`
	Teams         []Team          `yaml:"teams"`
	Venues        []Venue         `yaml:"venues"`
	ExcludedPairs [][]string      `yaml:"excluded_pairs"`
	Rules         validator.Rules `yaml:"rules"`
}

// Settings resolves the kickoff rhythm, filling omitted keys with defaults.
func (c *Config) Settings() kickoff.Settings {
	s := kickoff.DefaultSettings()
	if c.Timing.StartTime != nil {
		s.Start = *c.Timing.StartTime
	}
	if c.Timing.MatchDuration != nil {
		s.Duration = *c.Timing.MatchDuration
	}
	if c.Timing.Interval != nil {
		s.Interval = *c.Timing.Interval
	}
	return s
}

// Competitors converts the team list. A team without an id uses its name.
func (c *Config) Competitors() []fixture.Competitor {
	competitors := make([]fixture.Competitor, len(c.Teams))
	for i, t := range c.Teams {
		competitors[i] = fixture.Competitor{
			ID:        t.id(),
			Name:      t.Name,
			ShortName: t.ShortName,
			Group:     t.Group,
			Seed:      t.Seed,
			Type:      t.Type,
			Region:    t.Region,
			League:    t.League,
		}
	}
	return competitors
}

func (t Team) id() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Name
}

func (c *Config) FixtureVenues() []fixture.Venue {
	venues := make([]fixture.Venue, len(c.Venues))
	for i, v := range c.Venues {
		id := v.ID
		if id == "" {
			id = v.Name
		}
		venues[i] = fixture.Venue{ID: id, Name: v.Name, Group: v.Group}
	}
	return venues
}

// Excluded returns the declared no-rematch pairs.
func (c *Config) Excluded() []fixture.Pair {
	pairs := make([]fixture.Pair, 0, len(c.ExcludedPairs))
	for _, p := range c.ExcludedPairs {
		pairs = append(pairs, fixture.NewPair(p[0], p[1]))
	}
	return pairs
}

// ScheduleInput assembles the scheduler input for both tournament days.
func (c *Config) ScheduleInput() schedule.Input {
	settings := c.Settings()
	return schedule.Input{
		Competitors: c.Competitors(),
		Venues:      c.FixtureVenues(),
		Day1:        c.Tournament.Days[0].Time,
		Day2:        c.Tournament.Days[1].Time,
		Timing:      &settings,
	}
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = strategy.NameFixedPattern
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if len(c.Tournament.Days) != 2 {
		return fmt.Errorf("tournament must have exactly 2 days, got %d", len(c.Tournament.Days))
	}
	if !c.Tournament.Days[1].Time.After(c.Tournament.Days[0].Time) {
		return fmt.Errorf("day 2 %s must be after day 1 %s",
			c.Tournament.Days[1].Time.Format(fixture.DateLayout),
			c.Tournament.Days[0].Time.Format(fixture.DateLayout))
	}

	if _, err := strategy.Get(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("timing: %w", err)
	}

	if len(c.Teams) < 2 {
		return fmt.Errorf("at least 2 teams are required")
	}
	if len(c.Venues) == 0 {
		return fmt.Errorf("at least one venue is required")
	}

	seen := make(map[string]bool)
	for i, t := range c.Teams {
		id := t.id()
		if id == "" {
			return fmt.Errorf("team %d has neither id nor name", i+1)
		}
		if seen[id] {
			return fmt.Errorf("team %q appears more than once", id)
		}
		seen[id] = true
		if t.Seed < 0 || t.Seed > strategy.GroupSize {
			return fmt.Errorf("team %q: seed %d must be between 1 and %d or omitted", id, t.Seed, strategy.GroupSize)
		}
		switch t.Type {
		case "", fixture.TypeLocal, fixture.TypeInvited:
		default:
			return fmt.Errorf("team %q: type must be %q or %q, got %q", id, fixture.TypeLocal, fixture.TypeInvited, t.Type)
		}
	}

	if err := c.validateTeamKeys(); err != nil {
		return err
	}

	for i, v := range c.Venues {
		if v.Name == "" {
			return fmt.Errorf("venue %d has no name", i+1)
		}
	}

	for _, p := range c.ExcludedPairs {
		if len(p) != 2 {
			return fmt.Errorf("excluded pair %v must name exactly 2 teams", p)
		}
		if p[0] == p[1] {
			return fmt.Errorf("excluded pair %v names the same team twice", p)
		}
		for _, id := range p {
			if !seen[id] {
				return fmt.Errorf("excluded pair %v: unknown team %q", p, id)
			}
		}
	}

	return nil
}

// validateTeamKeys requires every id, name and short name to identify one
// team, ignoring case, since the workbook refers to teams by any of them.
// Commas are rejected because referee lists are comma separated.
func (c *Config) validateTeamKeys() error {
	owners := make(map[string]string)
	for _, t := range c.Teams {
		id := t.id()
		for _, key := range []string{t.ID, t.Name, t.ShortName} {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if strings.Contains(key, ",") {
				return fmt.Errorf("team %q: %q must not contain a comma", id, key)
			}
			folded := strings.ToLower(key)
			if owner, ok := owners[folded]; ok && owner != id {
				return fmt.Errorf("team %q: %q is already used by team %q", id, key, owner)
			}
			owners[folded] = id
		}
	}
	return nil
}
