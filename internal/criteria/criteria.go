// Package criteria turns a listing request's selection into the query a record
// store executes, and evaluates such queries over in-memory records.
package criteria

import (
	"fmt"
	"strings"
	"time"

	"simpleevents/internal/domain"
)

// Build validates sel. Empty values take their defaults: timing upcoming,
// visibility both, no explicit sort.
func Build(sel domain.Selection) (domain.FilterCriteria, error) {
	c := domain.FilterCriteria{
		Timing:     domain.TimingUpcoming,
		Visibility: domain.VisibilityFilterBoth,
		TypeSlug:   strings.TrimSpace(sel.Type),
	}

	switch t := domain.Timing(strings.ToLower(sel.Timing)); t {
	case "":
	case domain.TimingUpcoming, domain.TimingPrior:
		c.Timing = t
	default:
		return domain.FilterCriteria{}, domain.InvalidValue("timing", sel.Timing)
	}

	switch v := domain.VisibilityFilter(strings.ToLower(sel.Visibility)); v {
	case "":
	case domain.VisibilityFilterPublic, domain.VisibilityFilterPrivate, domain.VisibilityFilterBoth:
		c.Visibility = v
	default:
		return domain.FilterCriteria{}, domain.InvalidValue("visibility", sel.Visibility)
	}

	if sel.OrderBy != "" {
		if sel.OrderBy != domain.FieldTitle && !domain.IsStoredField(sel.OrderBy) {
			return domain.FilterCriteria{}, domain.InvalidValue("orderby", sel.OrderBy)
		}
		c.SortField = sel.OrderBy
	}

	switch o := domain.SortOrder(strings.ToUpper(sel.Order)); o {
	case "":
	case domain.SortAsc, domain.SortDesc:
		c.SortOrder = o
	default:
		return domain.FilterCriteria{}, domain.InvalidValue("order", sel.Order)
	}

	return c, nil
}

// Query resolves c against the request's current moment. The sort field defaults
// to datetime, compared as a datetime. An explicit order always wins; otherwise a
// datetime sort runs ascending for upcoming and descending for prior, and any
// other field is left to the store's default.
func Query(c domain.FilterCriteria, scope domain.RequestScope) domain.Query {
	sort := domain.SortSpec{Field: c.SortField, Order: c.SortOrder}
	if sort.Field == "" {
		sort.Field = domain.FieldDateTime
	}
	if sort.Field == domain.FieldDateTime {
		sort.Type = domain.CompareDateTime
		if sort.Order == "" {
			sort.Order = domain.SortAsc
			if c.Timing == domain.TimingPrior {
				sort.Order = domain.SortDesc
			}
		}
	}

	q := domain.Query{
		Predicates: []domain.Predicate{TimingPredicate(c.Timing, scope.NowString())},
		TermSlug:   c.TypeSlug,
		Sort:       sort,
	}
	if p, ok := VisibilityPredicate(c.Visibility); ok {
		q.Predicates = append(q.Predicates, p)
	}
	return q
}

// TimingPredicate compares datetime against now: >= for upcoming, <= for prior.
func TimingPredicate(timing domain.Timing, now string) domain.Predicate {
	op := domain.OpGte
	if timing == domain.TimingPrior {
		op = domain.OpLte
	}
	return domain.Predicate{Field: domain.FieldDateTime, Op: op, Value: now, Type: domain.CompareDateTime}
}

// VisibilityPredicate returns the equality predicate for v; ok is false for both.
func VisibilityPredicate(v domain.VisibilityFilter) (p domain.Predicate, ok bool) {
	if v == "" || v == domain.VisibilityFilterBoth {
		return domain.Predicate{}, false
	}
	return domain.Predicate{Field: domain.FieldVisibility, Op: domain.OpEq, Value: string(v)}, true
}

// MonthRange returns the predicates selecting datetimes within month of year.
func MonthRange(year, month int) []domain.Predicate {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return []domain.Predicate{
		{Field: domain.FieldDateTime, Op: domain.OpGte, Value: first.Format(domain.DateTimeLayout), Type: domain.CompareDateTime},
		{Field: domain.FieldDateTime, Op: domain.OpLte, Value: fmt.Sprintf("%s 23:59", last.Format(domain.DateLayout)), Type: domain.CompareDateTime},
	}
}
