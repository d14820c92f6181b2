package fields

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"simpleevents/internal/domain"
)

type fromStorage func(value string, formats domain.SiteFormats) string

// Transformer converts stored field values to display strings. Fields without
// an entry pass through unchanged. Transforms are not idempotent: apply them to
// stored values only.
type Transformer struct {
	from map[string]fromStorage
}

// NewTransformer builds the from-storage table.
func NewTransformer() *Transformer {
	return &Transformer{
		from: map[string]fromStorage{
			domain.FieldDate:       transformDate,
			domain.FieldTime:       transformTime,
			domain.FieldDateTime:   transformDateTime,
			domain.FieldDuration:   transformDuration,
			domain.FieldPrivate:    transformVisibility,
			domain.FieldVisibility: transformVisibility,
		},
	}
}

// FromStorage returns the display form of a stored value.
func (t *Transformer) FromStorage(field, value string, formats domain.SiteFormats) string {
	fn, ok := t.from[field]
	if !ok {
		return value
	}
	return fn(value, formats)
}

// ToStorage returns value unchanged: no field normalizes on the way in beyond what
// the Composer already did.
func (t *Transformer) ToStorage(field, value string) string {
	return value
}

// Display returns e's stored fields in listing order, each transformed for display.
// Unset fields are transformed as domain.Missing, so no duration shows as "TBD hours".
func (t *Transformer) Display(e *domain.Event, formats domain.SiteFormats) []domain.DisplayField {
	rec := ToRecord(e, t)
	out := make([]domain.DisplayField, 0, len(domain.FieldLabels))
	for _, fl := range domain.FieldLabels {
		value := rec.Fields[fl.Field]
		if value == "" {
			value = domain.Missing
		}
		out = append(out, domain.DisplayField{
			Field: fl.Field,
			Label: fl.Label,
			Value: t.FromStorage(fl.Field, value, formats),
		})
	}
	return out
}

var (
	dateInputs = []string{domain.DateLayout, domain.DateTimeLayout, domain.DateTimeLayout + ":05"}
	timeInputs = []string{domain.TimeLayout, domain.TimeLayout + ":05", domain.DateTimeLayout, domain.DateTimeLayout + ":05"}

	dateTimeInputs = []string{domain.DateTimeLayout, domain.DateTimeLayout + ":05"}
)

func parseAny(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateFormat(formats domain.SiteFormats) string {
	if formats == nil || formats.DateFormat() == "" {
		return domain.DateLayout
	}
	return formats.DateFormat()
}

func timeFormat(formats domain.SiteFormats) string {
	if formats == nil || formats.TimeFormat() == "" {
		return domain.TimeLayout
	}
	return formats.TimeFormat()
}

func transformDate(value string, formats domain.SiteFormats) string {
	t, ok := parseAny(value, dateInputs)
	if !ok {
		return value
	}
	return t.Format(dateFormat(formats))
}

func transformTime(value string, formats domain.SiteFormats) string {
	t, ok := parseAny(value, timeInputs)
	if !ok {
		return value
	}
	return t.Format(timeFormat(formats))
}

// transformDateTime joins the two outputs with no separator.
func transformDateTime(value string, formats domain.SiteFormats) string {
	if _, ok := parseAny(value, dateTimeInputs); !ok {
		return value
	}
	return transformDate(value, formats) + transformTime(value, formats)
}

func transformDuration(value string, _ domain.SiteFormats) string {
	if value == "1" {
		return value + " hour"
	}
	return value + " hours"
}

func transformVisibility(value string, _ domain.SiteFormats) string {
	return upperFirst(value) + " Event"
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
