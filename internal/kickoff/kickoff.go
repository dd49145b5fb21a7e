// Package kickoff turns a day's timing settings into an ordered sequence of
// kickoff times and maps a kickoff time back to its slot number.
package kickoff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrBeforeStart is returned by SlotOf when a kickoff precedes the first
// kickoff of the day and therefore has no valid slot.
var ErrBeforeStart = errors.New("kickoff is before the day's start time")

// Clock is a time of day in minutes after midnight. Tournament days are
// bounded, so values past 23:59 are not wrapped.
type Clock int

// At builds a Clock from an hour and minute.
func At(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	return At(hour, minute), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c *Clock) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseClock(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalYAML() (any, error) {
	return c.String(), nil
}

// Default timing: 09:00 first kickoff, 15 minute matches, 10 minutes for
// half-time plus turnaround.
const (
	DefaultDuration = 15
	DefaultInterval = 10
)

// DefaultStart is the default first kickoff of a day.
var DefaultStart = At(9, 0)

// Settings describes the kickoff rhythm of a tournament day.
type Settings struct {
	Start    Clock
	Duration int // match length in minutes
	Interval int // gap between the end of one match and the next kickoff
}

// DefaultSettings returns the standard 09:00 / 15 / 10 rhythm.
func DefaultSettings() Settings {
	return Settings{Start: DefaultStart, Duration: DefaultDuration, Interval: DefaultInterval}
}

// Resolve returns s, or the defaults when s is nil.
func Resolve(s *Settings) Settings {
	if s == nil {
		return DefaultSettings()
	}
	return *s
}

// Validate reports settings that cannot produce an increasing sequence.
func (s Settings) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("match duration must be positive, got %d", s.Duration)
	}
	if s.Interval < 0 {
		return fmt.Errorf("interval cannot be negative, got %d", s.Interval)
	}
	return nil
}

// Step is the distance in minutes between consecutive kickoffs.
func (s Settings) Step() int {
	return s.Duration + s.Interval
}

// Times returns count kickoff times starting at s.Start, each Step minutes
// after its predecessor.
func (s Settings) Times(count int) []Clock {
	if count <= 0 {
		return nil
	}
	times := make([]Clock, count)
	for i := range times {
		times[i] = s.Start.Add(i * s.Step())
	}
	return times
}

// SlotOf returns the 1-based slot a kickoff falls in:
// floor((t - start) / step) + 1. Kickoffs before the start have no slot.
func (s Settings) SlotOf(t Clock) (int, error) {
	if t < s.Start {
		return 0, fmt.Errorf("%s (start %s): %w", t, s.Start, ErrBeforeStart)
	}
	step := s.Step()
	if step <= 0 {
		return 1, nil
	}
	return int(t-s.Start)/step + 1, nil
}
