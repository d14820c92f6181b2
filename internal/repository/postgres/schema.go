package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables the repositories read and write. It is safe to run
// against an already migrated database.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SeedTerms inserts the given terms of taxonomy, leaving existing slugs untouched.
func SeedTerms(ctx context.Context, db *sql.DB, taxonomy string, terms []SeedTerm) error {
	query := `
		INSERT INTO terms (taxonomy, slug, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (taxonomy, slug) DO NOTHING
	`
	for _, t := range terms {
		if _, err := db.ExecContext(ctx, query, taxonomy, t.Slug, t.Name); err != nil {
			return fmt.Errorf("seed term %q: %w", t.Slug, err)
		}
	}
	return nil
}

// SeedTerm is a term to create; its id is assigned by the database.
type SeedTerm struct {
	Slug string
	Name string
}
