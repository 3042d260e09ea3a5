package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const maxConns = 10

//go:embed schema.sql
var schema string

// connectorConfig parses a DSN and forces the settings the repository depends on:
// DATETIME columns scan into time.Time in UTC.
func connectorConfig(uri string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg, nil
}

func Connect(ctx context.Context, uri string) (*sql.DB, error) {
	cfg, err := connectorConfig(uri)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL DB: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("checking MySQL DB connection: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the tables the repository uses if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating MySQL schema: %w", err)
	}
	return nil
}
