package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simpleevents/internal/criteria"
	"simpleevents/internal/domain"
	"simpleevents/internal/fields"
)

type eventService struct {
	eventRepo      domain.EventRepository
	termRepo       domain.TermRepository
	composer       *fields.Composer
	transformer    *fields.Transformer
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, termRepo domain.TermRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		termRepo:       termRepo,
		composer:       fields.NewComposer(),
		transformer:    fields.NewTransformer(),
		contextTimeout: timeout,
	}
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rec, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return fields.FromRecord(rec), nil
}

func (s *eventService) ListEvents(ctx context.Context, scope domain.RequestScope, sel domain.Selection, page domain.PaginationParams) ([]*domain.Event, int, error) {
	c, err := criteria.Build(sel)
	if err != nil {
		return nil, 0, err
	}
	q := criteria.Query(c, scope)
	if page.PageSize > 0 {
		q.Page = &page
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	total, err := s.eventRepo.Count(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	recs, err := s.eventRepo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	events := make([]*domain.Event, 0, len(recs))
	for _, rec := range recs {
		events = append(events, fields.FromRecord(rec))
	}
	return events, total, nil
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e := domain.NewEvent("")
	if err := s.composer.ApplyInput(e, in); err != nil {
		return nil, err
	}
	typeIDs, err := s.validateTypes(ctx, in.TypeIDs)
	if err != nil {
		return nil, err
	}
	e.TypeIDs = typeIDs

	rec := fields.ToRecord(e, s.transformer)
	rec.Fields = pick(rec.Fields, append(fields.Touched(in), domain.FieldVisibility))
	if err := s.eventRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	created, err := s.eventRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("reload event: %w", err)
	}
	return fields.FromRecord(created), nil
}

// UpdateEvent writes only the supplied fields. Date and time are composed
// against the stored values, so supplying one recomputes datetime from both.
func (s *eventService) UpdateEvent(ctx context.Context, id string, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rec, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	e := fields.Editable(rec)
	if err := s.composer.ApplyInput(e, in); err != nil {
		return nil, err
	}
	var typeIDs []int
	if in.TypeIDs != nil {
		if typeIDs, err = s.validateTypes(ctx, in.TypeIDs); err != nil {
			return nil, err
		}
	}

	updated := fields.ToRecord(e, s.transformer)
	if err := s.eventRepo.Update(ctx, id, updated.Title, pick(updated.Fields, fields.Touched(in)), typeIDs); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	rec, err = s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload event: %w", err)
	}
	return fields.FromRecord(rec), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) DisplayEvent(e *domain.Event, formats domain.SiteFormats) []domain.DisplayField {
	return s.transformer.Display(e, formats)
}

func (s *eventService) ListTypes(ctx context.Context) ([]*domain.Term, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	terms, err := s.termRepo.ListTerms(ctx, domain.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return terms, nil
}

// validateTypes checks every id against the taxonomy. The all-types sentinel is
// a filter value and is rejected here.
func (s *eventService) validateTypes(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}
	terms, err := s.termRepo.ListTerms(ctx, domain.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	known := domain.TermIDs(terms)

	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id == domain.AllTypes {
			return nil, domain.InvalidValue("type", id)
		}
		if _, err := fields.SetType(id, known); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func pick(values map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = values[k]
	}
	return out
}
