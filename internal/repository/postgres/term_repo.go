package postgres

import (
	"context"
	"database/sql"

	"simpleevents/internal/domain"
)

type termRepository struct {
	DB *sql.DB
}

// NewTermRepository returns a domain.TermRepository implemented with Postgres.
func NewTermRepository(db *sql.DB) domain.TermRepository {
	return &termRepository{DB: db}
}

func (r *termRepository) ListTerms(ctx context.Context, taxonomy string) ([]*domain.Term, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, slug, name FROM terms
		 WHERE taxonomy = $1
		 ORDER BY name, id`, taxonomy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]*domain.Term, 0)
	for rows.Next() {
		var term domain.Term
		if err := rows.Scan(&term.ID, &term.Slug, &term.Name); err != nil {
			return nil, err
		}
		terms = append(terms, &term)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}
