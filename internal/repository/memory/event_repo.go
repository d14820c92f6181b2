// Package memory holds map-backed repositories for running without a database.
package memory

import (
	"context"
	"maps"
	"sync"

	"simpleevents/internal/criteria"
	"simpleevents/internal/domain"

	"github.com/google/uuid"
)

// EventRepository keeps records in insertion order. It is safe for concurrent use.
type EventRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.RawEvent
	terms domain.TermRepository
}

// NewEventRepository returns an empty store. Term slugs in queries are resolved
// through terms.
func NewEventRepository(terms domain.TermRepository) *EventRepository {
	return &EventRepository{
		byID:  make(map[string]*domain.RawEvent),
		terms: terms,
	}
}

func (r *EventRepository) Create(ctx context.Context, rec *domain.RawEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = uuid.NewString()
	r.byID[rec.ID] = clone(rec)
	r.order = append(r.order, rec.ID)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.RawEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	return clone(rec), nil
}

func (r *EventRepository) List(ctx context.Context, q domain.Query) ([]*domain.RawEvent, error) {
	engine, err := r.engine(ctx)
	if err != nil {
		return nil, err
	}
	page, _ := engine.Apply(r.snapshot(), q)
	return page, nil
}

func (r *EventRepository) Count(ctx context.Context, q domain.Query) (int, error) {
	engine, err := r.engine(ctx)
	if err != nil {
		return 0, err
	}
	q.Page = nil
	_, total := engine.Apply(r.snapshot(), q)
	return total, nil
}

func (r *EventRepository) Update(ctx context.Context, id, title string, fields map[string]string, typeIDs []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return &domain.NotFoundError{ID: id}
	}
	rec.Title = title
	maps.Copy(rec.Fields, fields)
	if typeIDs != nil {
		rec.TypeIDs = append([]int{}, typeIDs...)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &domain.NotFoundError{ID: id}
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *EventRepository) engine(ctx context.Context) (*criteria.Engine, error) {
	if r.terms == nil {
		return criteria.NewEngine(nil), nil
	}
	terms, err := r.terms.ListTerms(ctx, domain.Taxonomy)
	if err != nil {
		return nil, err
	}
	return criteria.NewEngine(terms), nil
}

// snapshot copies every record in insertion order.
func (r *EventRepository) snapshot() []*domain.RawEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.RawEvent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.byID[id]))
	}
	return out
}

func clone(rec *domain.RawEvent) *domain.RawEvent {
	fields := make(map[string]string, len(rec.Fields))
	maps.Copy(fields, rec.Fields)
	return &domain.RawEvent{
		ID:      rec.ID,
		Title:   rec.Title,
		Fields:  fields,
		TypeIDs: append([]int{}, rec.TypeIDs...),
	}
}
