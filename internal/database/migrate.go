package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the schema and tables if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	ddl := strings.ReplaceAll(schemaSQL, "{schema}", pgx.Identifier{schema}.Sanitize())
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate schema %s: %w", schema, err)
	}
	return nil
}
