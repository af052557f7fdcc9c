package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open creates and configures a connection pool for the given driver and
// verifies it with a ping bounded by pingTimeout.
func Open(driver, dsn string, pingTimeout time.Duration) (*sql.DB, error) {
	if driver == DriverMySQL {
		// Rows carry DATETIME columns that we scan into time.Time, and
		// UPDATE must report matched rows rather than changed rows.
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DSN: %w", err)
		}
		cfg.ParseTime = true
		cfg.ClientFoundRows = true
		dsn = cfg.FormatDSN()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Configure the connection pool settings.
	if driver == DriverSQLite {
		// Every sqlite connection to ":memory:" is its own database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return db, nil
}

var schema = map[string][]string{
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS profiles (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			email VARCHAR(255) NOT NULL DEFAULT '',
			coins INT NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id CHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			task_type VARCHAR(32) NOT NULL,
			prompt TEXT NOT NULL,
			result JSON NOT NULL,
			created_at DATETIME NOT NULL,
			INDEX idx_history_user_created (user_id, created_at)
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT NOT NULL PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			coins INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT NOT NULL PRIMARY KEY,
			user_id TEXT NOT NULL,
			task_type TEXT NOT NULL,
			prompt TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user_created ON history (user_id, created_at)`,
	},
}

// Migrate creates the profiles and history tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts, ok := schema[driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
