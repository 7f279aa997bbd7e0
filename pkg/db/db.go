// Package db opens the SQL backends used by the catalog and receipt stores
// and applies their schema.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	PingTimeout  = 1 * time.Second
	QueryTimeout = 3 * time.Second

	pgUniqueCode = "23505"
)

var ErrUnsupportedDriver = errors.New("unsupported sql driver")

// Open connects to dsn with one of the supported drivers and verifies the
// connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if _, err := Dialect(driver); err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite serializes writers; a single connection also keeps
		// ":memory:" databases alive across calls.
		conn.SetMaxOpenConns(1)
	}

	if err := WithTimeout(ctx, PingTimeout, conn.PingContext); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return conn, nil
}

// Dialect maps a database/sql driver name to its goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", nil
	case DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func WithTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

// IsUniqueViolation reports primary key and unique constraint failures from
// either backend.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueCode
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
