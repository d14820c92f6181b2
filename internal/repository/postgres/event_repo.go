package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"simpleevents/internal/domain"

	"github.com/lib/pq"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository backed by the events,
// event_meta and event_terms tables. Fields are stored as meta rows keyed by
// domain.MetaKey.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, rec *domain.RawEvent) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (title, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, rec.Title).Scan(&rec.ID); err != nil {
		return err
	}
	if err := upsertMeta(ctx, tx, rec.ID, rec.Fields); err != nil {
		return err
	}
	if err := insertTerms(ctx, tx, rec.ID, rec.TypeIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.RawEvent, error) {
	query := `SELECT id, title FROM events WHERE id = $1`
	rec := &domain.RawEvent{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, err
	}
	if err := r.loadDetails(ctx, []*domain.RawEvent{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *eventRepository) List(ctx context.Context, q domain.Query) ([]*domain.RawEvent, error) {
	b := &queryBuilder{}
	where := b.where(q)
	query := fmt.Sprintf(`
		SELECT e.id, e.title
		FROM events e
		%s
		ORDER BY %s
	`, where, b.orderBy(q.Sort))
	if q.Page != nil && q.Page.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %s OFFSET %s", b.arg(q.Page.PageSize), b.arg(q.Page.Offset()))
	}

	rows, err := r.DB.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recs := make([]*domain.RawEvent, 0)
	for rows.Next() {
		rec := &domain.RawEvent{}
		if err := rows.Scan(&rec.ID, &rec.Title); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *eventRepository) Count(ctx context.Context, q domain.Query) (int, error) {
	b := &queryBuilder{}
	query := `SELECT COUNT(*) FROM events e ` + b.where(q)
	var n int
	if err := r.DB.QueryRowContext(ctx, query, b.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *eventRepository) Update(ctx context.Context, id, title string, fields map[string]string, typeIDs []int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE events SET title = $2, updated_at = NOW() WHERE id = $1`, id, title)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &domain.NotFoundError{ID: id}
	}
	if err := upsertMeta(ctx, tx, id, fields); err != nil {
		return err
	}
	if typeIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_terms WHERE event_id = $1`, id); err != nil {
			return err
		}
		if err := insertTerms(ctx, tx, id, typeIDs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// loadDetails fills Fields and TypeIDs of recs with two batched queries.
func (r *eventRepository) loadDetails(ctx context.Context, recs []*domain.RawEvent) error {
	if len(recs) == 0 {
		return nil
	}
	byID := make(map[string]*domain.RawEvent, len(recs))
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		rec.Fields = map[string]string{}
		rec.TypeIDs = []int{}
		byID[rec.ID] = rec
		ids = append(ids, rec.ID)
	}

	metaRows, err := r.DB.QueryContext(ctx,
		`SELECT event_id, meta_key, meta_value FROM event_meta WHERE event_id = ANY($1) AND meta_key LIKE $2`,
		pq.Array(ids), domain.MetaKeyPrefix()+"%")
	if err != nil {
		return err
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var eventID, key, value string
		if err := metaRows.Scan(&eventID, &key, &value); err != nil {
			return err
		}
		field, ok := domain.FieldFromMetaKey(key)
		if rec := byID[eventID]; ok && rec != nil {
			rec.Fields[field] = value
		}
	}
	if err := metaRows.Err(); err != nil {
		return err
	}

	termRows, err := r.DB.QueryContext(ctx,
		`SELECT event_id, term_id FROM event_terms WHERE event_id = ANY($1) ORDER BY term_id`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer termRows.Close()
	for termRows.Next() {
		var eventID string
		var termID int
		if err := termRows.Scan(&eventID, &termID); err != nil {
			return err
		}
		if rec := byID[eventID]; rec != nil {
			rec.TypeIDs = append(rec.TypeIDs, termID)
		}
	}
	return termRows.Err()
}

func upsertMeta(ctx context.Context, tx *sql.Tx, eventID string, fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for field := range fields {
		keys = append(keys, field)
	}
	slices.Sort(keys)

	query := `
		INSERT INTO event_meta (event_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`
	for _, field := range keys {
		if _, err := tx.ExecContext(ctx, query, eventID, domain.MetaKey(field), fields[field]); err != nil {
			return err
		}
	}
	return nil
}

func insertTerms(ctx context.Context, tx *sql.Tx, eventID string, termIDs []int) error {
	if len(termIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO event_terms (event_id, term_id) SELECT $1, unnest($2::int[]) ON CONFLICT DO NOTHING`,
		eventID, pq.Array(termIDs))
	return err
}
