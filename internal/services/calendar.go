package services

import (
	"context"
	"fmt"
	"time"

	"simpleevents/internal/calendar"
	"simpleevents/internal/criteria"
	"simpleevents/internal/domain"
	"simpleevents/internal/fields"
)

type calendarService struct {
	eventRepo      domain.EventRepository
	termRepo       domain.TermRepository
	contextTimeout time.Duration
}

func NewCalendarService(eventRepo domain.EventRepository, termRepo domain.TermRepository, timeout time.Duration) domain.CalendarService {
	return &calendarService{
		eventRepo:      eventRepo,
		termRepo:       termRepo,
		contextTimeout: timeout,
	}
}

// Month builds the grid for req and places the month's events into it. Events
// whose datetime cannot be parsed are reported in Unplaced rather than failing.
func (s *calendarService) Month(ctx context.Context, scope domain.RequestScope, req domain.CalendarRequest) (*domain.CalendarMonth, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	terms, err := s.termRepo.ListTerms(ctx, domain.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	req, err = fields.ComposeCalendar(req, domain.TermIDs(terms))
	if err != nil {
		return nil, err
	}
	c, err := criteria.Build(domain.Selection{Visibility: req.Visibility})
	if err != nil {
		return nil, err
	}

	grid, err := calendar.BuildGrid(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	q := domain.Query{
		Predicates: criteria.MonthRange(req.Year, req.Month),
		Sort:       domain.SortSpec{Field: domain.FieldDateTime, Order: domain.SortAsc, Type: domain.CompareDateTime},
	}
	if p, ok := criteria.VisibilityPredicate(c.Visibility); ok {
		q.Predicates = append(q.Predicates, p)
	}
	if req.Type != domain.AllTypes {
		for _, t := range terms {
			if t.ID == req.Type {
				q.TermSlug = t.Slug
				break
			}
		}
	}

	recs, err := s.eventRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list month events: %w", err)
	}
	events := make([]*domain.Event, 0, len(recs))
	byID := make(map[string]*domain.Event, len(recs))
	for _, rec := range recs {
		e := fields.FromRecord(rec)
		events = append(events, e)
		byID[e.ID] = e
	}

	unplaced := calendar.AssignEvents(grid, events, scope.Location)
	return &domain.CalendarMonth{Grid: grid, Events: byID, Unplaced: unplaced}, nil
}
