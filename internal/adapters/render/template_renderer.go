// Package render turns calendar months and events into markup using embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"simpleevents/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Renderer renders the calendar and event blocks. Event links are EventPath
// followed by the event id.
type Renderer struct {
	EventPath string
}

// NewRenderer returns a Renderer linking events under eventPath, e.g. "/events/".
func NewRenderer(eventPath string) *Renderer {
	return &Renderer{EventPath: eventPath}
}

type calendarLink struct {
	URL   string
	Title string
}

type calendarCell struct {
	Blank  bool
	Day    int
	Date   string
	Events []calendarLink
}

type calendarData struct {
	Caption  string
	Weekdays []string
	Weeks    [][]calendarCell
}

type eventData struct {
	ID     string
	URL    string
	Title  string
	Fields []domain.DisplayField
}

// Calendar renders m as an HTML table, one row per week, captioned "January 2006".
func (r *Renderer) Calendar(m *domain.CalendarMonth) (string, error) {
	data := calendarData{
		Caption:  fmt.Sprintf("%s %d", time.Month(m.Grid.Month), m.Grid.Year),
		Weekdays: weekdays,
	}
	for _, week := range m.Grid.Weeks() {
		row := make([]calendarCell, 0, len(week))
		for _, c := range week {
			cell := calendarCell{Blank: c.Blank, Day: c.Day, Date: c.Date}
			for _, id := range c.EventIDs {
				title := id
				if e, ok := m.Events[id]; ok {
					title = e.Title
				}
				cell.Events = append(cell.Events, calendarLink{URL: r.EventPath + id, Title: title})
			}
			row = append(row, cell)
		}
		data.Weeks = append(data.Weeks, row)
	}

	out, err := r.renderFile("calendar.html", data, true)
	if err != nil {
		return "", fmt.Errorf("render calendar: %w", err)
	}
	return out, nil
}

// Event renders the event block: the title and each display column.
func (r *Renderer) Event(e *domain.Event, cols []domain.DisplayField) (string, error) {
	out, err := r.renderFile("event.html", r.eventData(e, cols), true)
	if err != nil {
		return "", fmt.Errorf("render event: %w", err)
	}
	return out, nil
}

// EventText renders the event as plain "Label: value" lines.
func (r *Renderer) EventText(e *domain.Event, cols []domain.DisplayField) (string, error) {
	out, err := r.renderFile("event.txt", r.eventData(e, cols), false)
	if err != nil {
		return "", fmt.Errorf("render event text: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Renderer) eventData(e *domain.Event, cols []domain.DisplayField) eventData {
	return eventData{ID: e.ID, URL: r.EventPath + e.ID, Title: e.Title, Fields: cols}
}

func (r *Renderer) renderFile(name string, data any, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	tmplStr := string(raw)
	var buf bytes.Buffer
	if html {
		t, err := template.New(name).Parse(tmplStr)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(tmplStr)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
