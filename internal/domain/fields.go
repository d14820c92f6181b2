package domain

import "strings"

// PostType and Taxonomy name the record type and its category taxonomy in the host.
const (
	PostType = "simple-event"
	Taxonomy = "event-type"
)

// Field names, as used in RawEvent.Fields and in query predicates.
const (
	FieldTitle      = "title"
	FieldHost       = "host"
	FieldTime       = "time"
	FieldDate       = "date"
	FieldDateTime   = "datetime"
	FieldDuration   = "duration"
	FieldLocation   = "location"
	FieldVisibility = "visibility"
	// FieldPrivate is the legacy name under which visibility was displayed.
	FieldPrivate = "private"
)

// FieldLabel pairs a stored field with its column heading.
type FieldLabel struct {
	Field string
	Label string
}

// FieldLabels lists the stored event fields in listing column order.
var FieldLabels = []FieldLabel{
	{FieldHost, "Host"},
	{FieldTime, "Time"},
	{FieldDate, "Date"},
	{FieldDateTime, "Date & Time"},
	{FieldDuration, "Duration"},
	{FieldLocation, "Location"},
	{FieldVisibility, "Visibility"},
}

// IsStoredField reports whether name is one of FieldLabels.
func IsStoredField(name string) bool {
	for _, f := range FieldLabels {
		if f.Field == name {
			return true
		}
	}
	return false
}

// MetaKeyPrefix is the storage key prefix shared by every event field, e.g. "simple_event_".
func MetaKeyPrefix() string {
	return KebabToSnake(PostType + "-")
}

// MetaKey returns the storage key of field: "host" becomes "simple_event_host".
// External readers and writers rely on this mapping.
func MetaKey(field string) string {
	return MetaKeyPrefix() + KebabToSnake(field)
}

// FieldFromMetaKey reverses MetaKey. ok is false for keys outside the prefix.
func FieldFromMetaKey(key string) (field string, ok bool) {
	prefix := MetaKeyPrefix()
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return "", false
	}
	return strings.ReplaceAll(key[len(prefix):], "_", "-"), true
}

// KebabToSnake converts "simple-event-host" to "simple_event_host".
func KebabToSnake(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
