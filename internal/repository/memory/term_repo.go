package memory

import (
	"context"
	"sort"
	"sync"

	"simpleevents/internal/domain"
)

// TermRepository serves a fixed set of terms per taxonomy.
type TermRepository struct {
	mu    sync.RWMutex
	terms map[string][]*domain.Term
}

// NewTermRepository returns a store holding terms under taxonomy.
func NewTermRepository(taxonomy string, terms []*domain.Term) *TermRepository {
	r := &TermRepository{terms: make(map[string][]*domain.Term)}
	r.Put(taxonomy, terms)
	return r
}

// Put replaces the terms of taxonomy.
func (r *TermRepository) Put(taxonomy string, terms []*domain.Term) {
	sorted := make([]*domain.Term, 0, len(terms))
	for _, t := range terms {
		c := *t
		sorted = append(sorted, &c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms[taxonomy] = sorted
}

func (r *TermRepository) ListTerms(ctx context.Context, taxonomy string) ([]*domain.Term, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Term, 0, len(r.terms[taxonomy]))
	for _, t := range r.terms[taxonomy] {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}
