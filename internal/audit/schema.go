// Package audit persists completed generation runs into a DuckDB database
// for cross-run queries: variant balance, repeat rates, seed provenance.
package audit

import (
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing audit databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("audit: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}
