package fields

import (
	"strconv"

	"simpleevents/internal/domain"
)

// FromRecord builds an Event from a stored record. Missing string fields read
// back as domain.Missing and missing visibility as public. DateTime is recomputed
// whenever both date and time are stored.
func FromRecord(rec *domain.RawEvent) *domain.Event {
	get := func(field string) string {
		if v, ok := rec.Fields[field]; ok && v != "" {
			return v
		}
		return domain.Missing
	}

	e := &domain.Event{
		ID:         rec.ID,
		Title:      rec.Title,
		Host:       get(domain.FieldHost),
		Location:   get(domain.FieldLocation),
		Date:       get(domain.FieldDate),
		Time:       get(domain.FieldTime),
		DateTime:   get(domain.FieldDateTime),
		Visibility: domain.VisibilityPublic,
		TypeIDs:    append([]int{}, rec.TypeIDs...),
	}
	if e.Date != domain.Missing && e.Time != domain.Missing {
		SetDateOrTime(e, nil, nil)
	}
	if d, err := strconv.ParseFloat(rec.Fields[domain.FieldDuration], 64); err == nil {
		e.Duration = d
	}
	if v := domain.Visibility(rec.Fields[domain.FieldVisibility]); v.Valid() {
		e.Visibility = v
	}
	return e
}

// Editable builds an Event from a stored record without placeholders: fields the
// record never set stay empty, so composing over it never persists TBD.
func Editable(rec *domain.RawEvent) *domain.Event {
	e := &domain.Event{
		ID:         rec.ID,
		Title:      rec.Title,
		Host:       rec.Fields[domain.FieldHost],
		Location:   rec.Fields[domain.FieldLocation],
		Date:       rec.Fields[domain.FieldDate],
		Time:       rec.Fields[domain.FieldTime],
		DateTime:   rec.Fields[domain.FieldDateTime],
		Visibility: domain.VisibilityPublic,
		TypeIDs:    append([]int{}, rec.TypeIDs...),
	}
	if d, err := strconv.ParseFloat(rec.Fields[domain.FieldDuration], 64); err == nil {
		e.Duration = d
	}
	if v := domain.Visibility(rec.Fields[domain.FieldVisibility]); v.Valid() {
		e.Visibility = v
	}
	return e
}

// Touched returns the stored fields an input writes. Setting date or time also
// writes datetime.
func Touched(in domain.EventInput) []string {
	var out []string
	add := func(set bool, field string) {
		if set {
			out = append(out, field)
		}
	}
	add(in.Host != nil, domain.FieldHost)
	add(in.Location != nil, domain.FieldLocation)
	add(in.Date != nil, domain.FieldDate)
	add(in.Time != nil, domain.FieldTime)
	add(in.Date != nil || in.Time != nil, domain.FieldDateTime)
	add(in.Duration != nil, domain.FieldDuration)
	add(in.Visibility != nil, domain.FieldVisibility)
	return out
}

// ToRecord renders e's fields in their stored string form, passing each through
// the transformer's to-storage step. A zero duration is unset and stored empty.
func ToRecord(e *domain.Event, t *Transformer) *domain.RawEvent {
	duration := ""
	if e.Duration != 0 {
		duration = FormatDuration(e.Duration)
	}
	values := map[string]string{
		domain.FieldHost:       e.Host,
		domain.FieldLocation:   e.Location,
		domain.FieldDate:       e.Date,
		domain.FieldTime:       e.Time,
		domain.FieldDateTime:   e.DateTime,
		domain.FieldDuration:   duration,
		domain.FieldVisibility: string(e.Visibility),
	}
	out := make(map[string]string, len(values))
	for field, v := range values {
		out[field] = t.ToStorage(field, v)
	}
	return &domain.RawEvent{
		ID:      e.ID,
		Title:   e.Title,
		Fields:  out,
		TypeIDs: append([]int{}, e.TypeIDs...),
	}
}
