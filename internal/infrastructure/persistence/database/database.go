// Package database opens the content database: a local SQLite file, or a
// Turso (libSQL) database when a remote URL is configured.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const (
	DriverSQLite = "sqlite3"
	DriverLibSQL = "libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
	Driver string
}

// Options selects and tunes the database connection.
type Options struct {
	SQLitePath   string
	TursoURL     string
	TursoToken   string
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to Turso when TursoURL is set and to SQLite otherwise.
func Open(opts Options, logger *logging.ChanneledLogger) (*DB, error) {
	driver, dsn := DriverSQLite, opts.SQLitePath
	if opts.TursoURL != "" {
		driver, dsn = DriverLibSQL, TursoDSN(opts.TursoURL, opts.TursoToken)
	} else if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := NewConnectionWithLogger(driver, dsn, logger)
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	return db, nil
}

// NewConnectionWithLogger establishes a new database connection for the specified driver with logging.
func NewConnectionWithLogger(driverName, dataSourceName string, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()
	logger.Database().Debug("Creating new database connection", "driverName", driverName)

	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", driverName)
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	if err = db.Ping(); err != nil {
		logger.Database().Error("Database ping failed", "error", err.Error(), "driverName", driverName)
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	duration := time.Since(start)
	logger.Database().Info("Database connection established", "driverName", driverName, "duration", duration)
	CheckAndLogSlowQuery(logger, "DATABASE_CONNECTION", duration)

	return &DB{DB: db, Driver: driverName}, nil
}
