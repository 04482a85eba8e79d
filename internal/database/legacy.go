package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

// Supported database/sql driver names
const (
	DriverODBC    = "odbc"
	DriverPgx     = "pgx"
	DriverSQLite3 = "sqlite3"
)

// LegacyDB manages access to the legacy invoice database through database/sql.
// The pool is opened lazily so a missing or unreachable server never blocks startup.
type LegacyDB struct {
	driver string
	dsn    string

	mu sync.Mutex
	db *sql.DB
}

// NewLegacyDB creates a handle for the given driver and connection string
func NewLegacyDB(driver, dsn string) *LegacyDB {
	if driver == "" {
		driver = DriverODBC
	}
	return &LegacyDB{driver: driver, dsn: strings.TrimSpace(dsn)}
}

// Configured reports whether a connection string is set
func (l *LegacyDB) Configured() bool {
	return l.dsn != ""
}

// Driver returns the database/sql driver name
func (l *LegacyDB) Driver() string {
	return l.driver
}

// Conn opens a dedicated connection. The caller must close it.
func (l *LegacyDB) Conn(ctx context.Context) (*sql.Conn, error) {
	if !l.Configured() {
		return nil, fmt.Errorf("%w: connection string is not set", domain.ErrDatabaseUnavailable)
	}

	db, err := l.pool()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %v", domain.ErrDatabaseUnavailable, err)
	}
	return conn, nil
}

// Placeholder returns the bind parameter marker for the n-th (1-based) argument
func (l *LegacyDB) Placeholder(n int) string {
	if l.driver == DriverPgx {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Close closes the connection pool
func (l *LegacyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func (l *LegacyDB) pool() (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db != nil {
		return l.db, nil
	}

	db, err := sql.Open(l.driver, l.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", l.driver, err)
	}
	// Every query opens and closes its own session.
	db.SetMaxIdleConns(0)
	l.db = db
	return db, nil
}
