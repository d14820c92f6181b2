// Package ics publishes events as an iCalendar feed.
package ics

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"simpleevents/internal/domain"
)

// Feed builds VCALENDAR documents from events. Describe, when set, supplies each
// VEVENT's DESCRIPTION; EventURL, when set, its URL.
type Feed struct {
	Name     string
	Location *time.Location
	Describe func(e *domain.Event) string
	EventURL func(e *domain.Event) string
}

// Calendar returns one VEVENT per event with a parseable datetime and the ids
// of the events it skipped. DTEND is DTSTART plus the duration in hours.
func (f *Feed) Calendar(events []*domain.Event, stamp time.Time) (cal *ical.Calendar, skipped []string) {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}

	cal = ical.NewCalendarFor(domain.PostType)
	cal.SetMethod(ical.MethodPublish)
	if f.Name != "" {
		cal.SetName(f.Name)
		cal.SetXWRCalName(f.Name)
	}
	cal.SetXWRTimezone(loc.String())

	for _, e := range events {
		start, err := e.Start(loc)
		if err != nil {
			skipped = append(skipped, e.ID)
			continue
		}
		end := start.Add(time.Duration(e.Duration * float64(time.Hour)))

		ve := cal.AddEvent(e.ID + "@" + domain.PostType)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(e.Title)
		if e.Location != "" && e.Location != domain.Missing {
			ve.SetLocation(e.Location)
		}
		ve.SetProperty(ical.ComponentPropertyClass, classification(e.Visibility))
		if f.Describe != nil {
			ve.SetDescription(f.Describe(e))
		}
		if f.EventURL != nil {
			ve.SetURL(f.EventURL(e))
		}
	}
	return cal, skipped
}

// Write serializes the feed for events to w.
func (f *Feed) Write(w io.Writer, events []*domain.Event, stamp time.Time) (skipped []string, err error) {
	cal, skipped := f.Calendar(events, stamp)
	if err := cal.SerializeTo(w); err != nil {
		return skipped, err
	}
	return skipped, nil
}

func classification(v domain.Visibility) string {
	if v == domain.VisibilityPrivate {
		return "PRIVATE"
	}
	return strings.ToUpper(string(domain.VisibilityPublic))
}
