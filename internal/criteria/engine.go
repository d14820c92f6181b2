package criteria

import (
	"sort"
	"strings"
	"time"

	"simpleevents/internal/domain"
)

// Engine evaluates a domain.Query over records held in memory. Term slugs are
// resolved through the terms it was built with.
type Engine struct {
	termIDs map[string]int
}

// NewEngine returns an Engine that resolves term slugs against terms.
func NewEngine(terms []*domain.Term) *Engine {
	ids := make(map[string]int, len(terms))
	for _, t := range terms {
		ids[t.Slug] = t.ID
	}
	return &Engine{termIDs: ids}
}

// Apply filters, sorts and paginates recs. total is the number of matches before
// pagination.
func (en *Engine) Apply(recs []*domain.RawEvent, q domain.Query) (page []*domain.RawEvent, total int) {
	matched := make([]*domain.RawEvent, 0, len(recs))
	for _, r := range recs {
		if en.Match(r, q) {
			matched = append(matched, r)
		}
	}
	Sort(matched, q.Sort)

	total = len(matched)
	if q.Page == nil || q.Page.PageSize <= 0 {
		return matched, total
	}
	start := min(q.Page.Offset(), total)
	end := min(start+q.Page.PageSize, total)
	return matched[start:end], total
}

// Match reports whether r satisfies every predicate of q and carries its term.
func (en *Engine) Match(r *domain.RawEvent, q domain.Query) bool {
	for _, p := range q.Predicates {
		if !matchPredicate(r, p) {
			return false
		}
	}
	if q.TermSlug == "" {
		return true
	}
	id, ok := en.termIDs[q.TermSlug]
	if !ok {
		return false
	}
	for _, t := range r.TypeIDs {
		if t == id {
			return true
		}
	}
	return false
}

// Sort orders recs by a field, breaking ties by title. The sort is stable. Values
// that cannot be compared as by.Type sort last ascending and first descending.
func Sort(recs []*domain.RawEvent, by domain.SortSpec) {
	desc := by.Order == domain.SortDesc
	sort.SliceStable(recs, func(i, j int) bool {
		c := compareKeys(value(recs[i], by.Field), value(recs[j], by.Field), by.Type)
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return recs[i].Title < recs[j].Title
	})
}

func value(r *domain.RawEvent, field string) string {
	switch field {
	case domain.FieldTitle:
		return r.Title
	case domain.FieldVisibility:
		if v := r.Fields[field]; v != "" {
			return v
		}
		return string(domain.VisibilityPublic)
	}
	return r.Fields[field]
}

func matchPredicate(r *domain.RawEvent, p domain.Predicate) bool {
	left := value(r, p.Field)
	var c int
	if p.Type == domain.CompareDateTime {
		lt, lok := parse(left)
		rt, rok := parse(p.Value)
		if !lok || !rok {
			return false
		}
		c = lt.Compare(rt)
	} else {
		c = strings.Compare(left, p.Value)
	}

	switch p.Op {
	case domain.OpEq:
		return c == 0
	case domain.OpGte:
		return c >= 0
	case domain.OpLte:
		return c <= 0
	}
	return false
}

// compareKeys orders a before b (-1), after (1) or level (0). Unparseable
// datetimes are greater than any parseable one.
func compareKeys(a, b string, typ domain.CompareType) int {
	if typ != domain.CompareDateTime {
		return strings.Compare(a, b)
	}
	at, aok := parse(a)
	bt, bok := parse(b)
	switch {
	case aok && bok:
		return at.Compare(bt)
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}

func parse(s string) (time.Time, bool) {
	t, err := domain.ParseDateTime(strings.TrimSpace(s), time.UTC)
	return t, err == nil
}
