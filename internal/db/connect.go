package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the questions schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:questions.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/examgen?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY,
  exam_label TEXT NOT NULL DEFAULT '',
  question_label TEXT NOT NULL DEFAULT '',
  question_text TEXT NOT NULL,
  selections TEXT NOT NULL DEFAULT '',
  selection_criteria TEXT NOT NULL DEFAULT '',
  correct_answers TEXT NOT NULL DEFAULT '',
  difficulty TEXT NOT NULL DEFAULT '',
  domain TEXT NOT NULL DEFAULT '',
  occurrence INTEGER NOT NULL DEFAULT 0,
  generation INTEGER
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS questions (
  id BIGINT PRIMARY KEY,
  exam_label TEXT NOT NULL DEFAULT '',
  question_label TEXT NOT NULL DEFAULT '',
  question_text TEXT NOT NULL,
  selections TEXT NOT NULL DEFAULT '',
  selection_criteria TEXT NOT NULL DEFAULT '',
  correct_answers TEXT NOT NULL DEFAULT '',
  difficulty TEXT NOT NULL DEFAULT '',
  domain TEXT NOT NULL DEFAULT '',
  occurrence BIGINT NOT NULL DEFAULT 0,
  generation BIGINT
);
`
