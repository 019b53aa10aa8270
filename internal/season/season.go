// Package season loads season files: the team list and slot policy the CLI
// seeds and schedules from.
package season

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(time.DateOnly, value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type Team struct {
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

// CityPtr returns nil for a blank city.
func (t Team) CityPtr() *string {
	if strings.TrimSpace(t.City) == "" {
		return nil
	}
	c := t.City
	return &c
}

type Season struct {
	Name         string   `yaml:"name"`
	Timezone     string   `yaml:"timezone"`
	StartDate    *Date    `yaml:"start_date"`
	KickoffTimes []string `yaml:"kickoff_times"`
	Seed         *uint64  `yaml:"seed"`
	Teams        []Team   `yaml:"teams"`
}

// Default is the demo league used when no season file is given.
func Default() *Season {
	s := &Season{Name: "Demo League", Timezone: "Local"}
	for _, name := range []string{"TIMA", "TIMB", "TIMC", "TIMD", "TIME"} {
		s.Teams = append(s.Teams, Team{Name: name, City: "TANGERANG"})
	}
	return s
}

// LoadFromBytes parses YAML bytes into a Season and validates it.
func LoadFromBytes(data []byte) (*Season, error) {
	var s Season
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing season: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFromFile reads and parses a YAML season file.
func LoadFromFile(path string) (*Season, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading season file: %w", err)
	}
	return LoadFromBytes(data)
}

func (s *Season) validate() error {
	if len(s.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}

	seen := make(map[string]bool, len(s.Teams))
	for i, t := range s.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("team %d has no name", i+1)
		}
		if seen[name] {
			return fmt.Errorf("duplicate team name %q", name)
		}
		seen[name] = true
		s.Teams[i].Name = name
	}

	if _, err := s.Location(); err != nil {
		return err
	}

	for _, k := range s.KickoffTimes {
		if _, err := time.Parse("15:04", strings.TrimSpace(k)); err != nil {
			return fmt.Errorf("invalid kickoff time %q: want HH:MM", k)
		}
	}
	if len(s.KickoffTimes) > 0 && s.StartDate == nil {
		return fmt.Errorf("kickoff_times requires start_date")
	}
	return nil
}

// Location resolves Timezone, defaulting to the local zone.
func (s *Season) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Day returns start_date at midnight in the season's zone, or ok=false.
func (s *Season) Day(loc *time.Location) (time.Time, bool) {
	if s.StartDate == nil {
		return time.Time{}, false
	}
	y, m, d := s.StartDate.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true
}

// Rand returns a seeded source, or nil for a time-seeded shuffle.
func (s *Season) Rand() *rand.Rand {
	if s.Seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*s.Seed, *s.Seed))
}
