package domain

import (
	"context"
	"time"
)

// Visibility controls whether an event is listed publicly.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is one of the stored visibility values.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Missing holds the value read back for a string field the record never set.
const Missing = "TBD"

// DateTimeLayout is the canonical, sortable layout of Event.DateTime.
const DateTimeLayout = "2006-01-02 15:04"

// DateLayout and TimeLayout are the stored layouts of Event.Date and Event.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event is a single dated record.
// swagger:model Event
type Event struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Host       string     `json:"host"`
	Location   string     `json:"location"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	DateTime   string     `json:"datetime"`
	Duration   float64    `json:"duration"`
	Visibility Visibility `json:"visibility"`
	TypeIDs    []int      `json:"type_ids"`
}

// NewEvent returns an Event with visibility defaulted to public. ID is typically set by the store on create.
func NewEvent(title string) *Event {
	return &Event{
		Title:      title,
		Visibility: VisibilityPublic,
		TypeIDs:    []int{},
	}
}

// Start parses DateTime in loc. Records without a usable date or time return an error.
func (e *Event) Start(loc *time.Location) (time.Time, error) {
	return ParseDateTime(e.DateTime, loc)
}

// ParseDateTime parses a stored datetime, with or without seconds.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, loc)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateTimeLayout+":05", s, loc)
}

// RawEvent is a record as the store holds it: a title plus string fields keyed by field name.
type RawEvent struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Fields  map[string]string `json:"fields"`
	TypeIDs []int             `json:"type_ids"`
}

// EventRepository is the record store for events.
type EventRepository interface {
	Create(ctx context.Context, rec *RawEvent) error
	GetByID(ctx context.Context, id string) (*RawEvent, error)
	// List returns the records matching q, ordered and paginated as q asks.
	List(ctx context.Context, q Query) ([]*RawEvent, error)
	// Count returns how many records match q, ignoring its pagination.
	Count(ctx context.Context, q Query) (int, error)
	// Update writes title and fields of an event, and replaces its type ids
	// unless typeIDs is nil, all in one write.
	Update(ctx context.Context, id, title string, fields map[string]string, typeIDs []int) error
	Delete(ctx context.Context, id string) error
}

// EventInput carries caller-supplied values for create and update. Nil fields are left untouched.
type EventInput struct {
	Title      *string
	Host       *string
	Location   *string
	Date       *string
	Time       *string
	Duration   *float64
	Visibility *string
	TypeIDs    []int
}

// DisplayField is one labelled, display-ready field of an event.
type DisplayField struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// EventService defines the business logic for reading, listing and editing events.
type EventService interface {
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, scope RequestScope, sel Selection, page PaginationParams) ([]*Event, int, error)
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id string, in EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	DisplayEvent(e *Event, formats SiteFormats) []DisplayField
	ListTypes(ctx context.Context) ([]*Term, error)
}
