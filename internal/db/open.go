package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(driverSQLite, sqlx.QUESTION)
}

// Open connects to the database named by databaseURL. postgres:// and
// postgresql:// URLs use pgx; sqlite://path, or a bare file path, uses SQLite.
func Open(databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return openPostgres(databaseURL)
	}
	return openSQLite(sqlitePath(databaseURL))
}

// IsPostgres reports whether conn talks to Postgres.
func IsPostgres(conn *sqlx.DB) bool {
	return conn.DriverName() == driverPostgres
}

func openPostgres(url string) (*sqlx.DB, error) {
	conn, err := sqlx.Open(driverPostgres, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxLifetime(2 * time.Hour)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	conn, err := sqlx.Open(driverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; transactions must not touch conn directly.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return conn, nil
}

func sqlitePath(url string) string {
	for _, prefix := range []string{"sqlite://", "sqlite:"} {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}
	return url
}
