package postgres

import (
	"fmt"
	"strings"

	"simpleevents/internal/domain"
)

// queryBuilder renders a domain.Query as SQL over the events table aliased e,
// collecting positional arguments as it goes.
type queryBuilder struct {
	args []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// where returns the WHERE clause for q's predicates and term slug, or "".
func (b *queryBuilder) where(q domain.Query) string {
	conds := make([]string, 0, len(q.Predicates)+1)
	for _, p := range q.Predicates {
		left := b.value(p.Field)
		right := b.arg(p.Value)
		if p.Type == domain.CompareDateTime {
			left = asTimestamp(left)
			right = right + "::timestamp"
		}
		conds = append(conds, fmt.Sprintf("%s %s %s", left, sqlOperator(p.Op), right))
	}
	if q.TermSlug != "" {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM event_terms et JOIN terms t ON t.id = et.term_id WHERE et.event_id = e.id AND t.taxonomy = %s AND t.slug = %s)",
			b.arg(domain.Taxonomy), b.arg(q.TermSlug)))
	}
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

// orderBy sorts by the requested field, then title, then creation order.
// Postgres puts NULLs last ascending and first descending.
func (b *queryBuilder) orderBy(s domain.SortSpec) string {
	key := b.value(s.Field)
	if s.Type == domain.CompareDateTime {
		key = asTimestamp(key)
	}
	dir := "ASC"
	if s.Order == domain.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, e.title ASC, e.created_at ASC", key, dir)
}

// value is the SQL expression reading field for the current row.
func (b *queryBuilder) value(field string) string {
	if field == domain.FieldTitle {
		return "e.title"
	}
	expr := fmt.Sprintf("(SELECT m.meta_value FROM event_meta m WHERE m.event_id = e.id AND m.meta_key = %s)", b.arg(domain.MetaKey(field)))
	if field == domain.FieldVisibility {
		expr = fmt.Sprintf("COALESCE(%s, '%s')", expr, domain.VisibilityPublic)
	}
	return expr
}

// asTimestamp casts a stored datetime string, yielding NULL for values that do
// not look like one (such as TBD).
func asTimestamp(expr string) string {
	return fmt.Sprintf(`(CASE WHEN %[1]s ~ '^\d{4}-\d{2}-\d{2} \d{2}:\d{2}' THEN (%[1]s)::timestamp END)`, expr)
}

func sqlOperator(op domain.Operator) string {
	switch op {
	case domain.OpGte:
		return ">="
	case domain.OpLte:
		return "<="
	default:
		return "="
	}
}
