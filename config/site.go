package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"simpleevents/internal/domain"
)

// Default site display settings, as Go reference-time layouts.
const (
	DefaultDateLayout = "January 2, 2006"
	DefaultTimeLayout = "3:04 pm"
	DefaultTimezone   = "UTC"
	DefaultSiteName   = "Events"
)

// EventType is an event-type term configured for the site. A zero ID is
// assigned from the term's position by the in-memory store.
type EventType struct {
	ID   int    `yaml:"id"`
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// SiteSettings are the site-wide display settings. It implements domain.SiteFormats.
type SiteSettings struct {
	Name       string      `yaml:"name"`
	BaseURL    string      `yaml:"base_url"`
	DateLayout string      `yaml:"date_format"`
	TimeLayout string      `yaml:"time_format"`
	Timezone   string      `yaml:"timezone"`
	EventTypes []EventType `yaml:"event_types"`

	location *time.Location
}

var _ domain.SiteFormats = (*SiteSettings)(nil)

// DefaultSite returns the settings used when no site file exists.
func DefaultSite() *SiteSettings {
	s := &SiteSettings{}
	_ = s.Normalize()
	return s
}

// Normalize fills missing values with defaults and resolves the timezone.
// BaseURL loses any trailing slash.
// Event types without a slug are dropped; a missing name falls back to the slug.
func (s *SiteSettings) Normalize() error {
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.DateLayout == "" {
		s.DateLayout = DefaultDateLayout
	}
	if s.TimeLayout == "" {
		s.TimeLayout = DefaultTimeLayout
	}
	if s.Timezone == "" {
		s.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", s.Timezone, err)
	}
	s.location = loc

	types := make([]EventType, 0, len(s.EventTypes))
	for _, t := range s.EventTypes {
		t.Slug = strings.TrimSpace(t.Slug)
		if t.Slug == "" {
			continue
		}
		if t.Name == "" {
			t.Name = t.Slug
		}
		types = append(types, t)
	}
	s.EventTypes = types
	return nil
}

// LoadSite reads site settings from a YAML file. A missing file yields DefaultSite.
func LoadSite(path string) (*SiteSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSite(), nil
		}
		return nil, fmt.Errorf("read site config: %w", err)
	}

	var s SiteSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", path, err)
	}
	if err := s.Normalize(); err != nil {
		return nil, fmt.Errorf("site config %s: %w", path, err)
	}
	return &s, nil
}

func (s *SiteSettings) DateFormat() string { return s.DateLayout }

func (s *SiteSettings) TimeFormat() string { return s.TimeLayout }

// Location is the site timezone. It is UTC until Normalize succeeds.
func (s *SiteSettings) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// Terms returns the configured event types as taxonomy terms, numbering
// types without an id after the highest configured id.
func (s *SiteSettings) Terms() []*domain.Term {
	next := 0
	for _, t := range s.EventTypes {
		next = max(next, t.ID)
	}
	terms := make([]*domain.Term, 0, len(s.EventTypes))
	for _, t := range s.EventTypes {
		id := t.ID
		if id == domain.AllTypes {
			next++
			id = next
		}
		terms = append(terms, &domain.Term{ID: id, Slug: t.Slug, Name: t.Name})
	}
	return terms
}
