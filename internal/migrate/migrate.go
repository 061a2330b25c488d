// Package migrate applies embedded SQL migrations on startup.
package migrate

import (
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/iliyamo/health-tracker/migrations"
)

// Up runs all pending migrations from the embedded filesystem against the
// already-open MySQL handle.
func Up(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
