// Package fields composes and transforms event field values: the setters that
// normalize caller input and the table that turns stored values into display strings.
package fields

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"simpleevents/internal/domain"
)

// SetMonth accepts 1 through 12.
func SetMonth(m int) (int, error) {
	if m < 1 || m > 12 {
		return 0, domain.InvalidValue("month", m)
	}
	return m, nil
}

// SetYear promotes two-digit years into the 21st century: 24 becomes 2024.
func SetYear(y int) int {
	if y < 100 {
		return y + 2000
	}
	return y
}

// SetDuration snaps d to the nearest quarter hour. The half-hour minimum is
// enforced where input is accepted, not here.
func SetDuration(d float64) float64 {
	return math.Round(d*4) / 4
}

// SetDateOrTime updates whichever of date and time is non-nil and recomputes DateTime.
func SetDateOrTime(e *domain.Event, date, tm *string) {
	if date != nil {
		e.Date = *date
	}
	if tm != nil {
		e.Time = *tm
	}
	e.DateTime = e.Date + " " + e.Time
}

// SetType accepts domain.AllTypes or any id in known.
func SetType(typeID int, known []int) (int, error) {
	if typeID != domain.AllTypes && !slices.Contains(known, typeID) {
		return 0, domain.InvalidValue("type", typeID)
	}
	return typeID, nil
}

// SetVisibility maps the empty string to public and rejects anything but public or private.
func SetVisibility(raw string) (domain.Visibility, error) {
	if raw == "" {
		return domain.VisibilityPublic, nil
	}
	v := domain.Visibility(raw)
	if !v.Valid() {
		return "", domain.InvalidValue(domain.FieldVisibility, raw)
	}
	return v, nil
}

// FormatDuration renders a duration the way it is stored: 1 is "1", 1.25 is "1.25".
func FormatDuration(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

type setter func(e *domain.Event, raw string) error

// Composer applies caller input to an Event through a fixed table of field setters.
type Composer struct {
	setters map[string]setter
}

// NewComposer builds the setter table.
func NewComposer() *Composer {
	return &Composer{
		setters: map[string]setter{
			domain.FieldTitle: func(e *domain.Event, raw string) error {
				e.Title = raw
				return nil
			},
			domain.FieldHost: func(e *domain.Event, raw string) error {
				e.Host = raw
				return nil
			},
			domain.FieldLocation: func(e *domain.Event, raw string) error {
				e.Location = raw
				return nil
			},
			domain.FieldDate: func(e *domain.Event, raw string) error {
				SetDateOrTime(e, &raw, nil)
				return nil
			},
			domain.FieldTime: func(e *domain.Event, raw string) error {
				SetDateOrTime(e, nil, &raw)
				return nil
			},
			domain.FieldDuration: func(e *domain.Event, raw string) error {
				d, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
				if err != nil {
					return domain.InvalidValue(domain.FieldDuration, raw)
				}
				e.Duration = SetDuration(d)
				return nil
			},
			domain.FieldVisibility: func(e *domain.Event, raw string) error {
				v, err := SetVisibility(raw)
				if err != nil {
					return err
				}
				e.Visibility = v
				return nil
			},
		},
	}
}

// Apply sets one field from its raw string form.
func (c *Composer) Apply(e *domain.Event, field, raw string) error {
	set, ok := c.setters[field]
	if !ok {
		return domain.InvalidValue("field", field)
	}
	return set(e, raw)
}

// ApplyInput applies every non-nil field of in. It stops at the first invalid value,
// leaving e partially updated; callers work on a copy.
func (c *Composer) ApplyInput(e *domain.Event, in domain.EventInput) error {
	steps := []struct {
		field string
		value *string
	}{
		{domain.FieldTitle, in.Title},
		{domain.FieldHost, in.Host},
		{domain.FieldLocation, in.Location},
		{domain.FieldDate, in.Date},
		{domain.FieldTime, in.Time},
		{domain.FieldVisibility, in.Visibility},
	}
	for _, s := range steps {
		if s.value == nil {
			continue
		}
		if err := c.Apply(e, s.field, *s.value); err != nil {
			return err
		}
	}
	if in.Duration != nil {
		e.Duration = SetDuration(*in.Duration)
	}
	return nil
}

// ComposeCalendar validates and normalizes a calendar request's month, year and type.
func ComposeCalendar(req domain.CalendarRequest, knownTypes []int) (domain.CalendarRequest, error) {
	month, err := SetMonth(req.Month)
	if err != nil {
		return domain.CalendarRequest{}, err
	}
	typeID, err := SetType(req.Type, knownTypes)
	if err != nil {
		return domain.CalendarRequest{}, err
	}
	return domain.CalendarRequest{
		Month:      month,
		Year:       SetYear(req.Year),
		Type:       typeID,
		Visibility: req.Visibility,
	}, nil
}
