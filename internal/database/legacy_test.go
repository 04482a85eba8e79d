package database

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

func TestLegacyDB_UnconfiguredIsUnavailable(t *testing.T) {
	db := NewLegacyDB("", "   ")
	assert.False(t, db.Configured())
	assert.Equal(t, DriverODBC, db.Driver())

	_, err := db.Conn(context.Background())
	assert.ErrorIs(t, err, domain.ErrDatabaseUnavailable)
	assert.NoError(t, db.Close())
}

func TestLegacyDB_UnknownDriverIsUnavailable(t *testing.T) {
	db := NewLegacyDB("no-such-driver", "dsn")
	_, err := db.Conn(context.Background())
	assert.ErrorIs(t, err, domain.ErrDatabaseUnavailable)
}

func TestLegacyDB_Conn(t *testing.T) {
	db := NewLegacyDB(DriverSQLite3, filepath.Join(t.TempDir(), "legacy.db"))
	defer db.Close()

	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	var one int
	require.NoError(t, conn.QueryRowContext(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestLegacyDB_Placeholder(t *testing.T) {
	assert.Equal(t, "$2", NewLegacyDB(DriverPgx, "x").Placeholder(2))
	assert.Equal(t, "?", NewLegacyDB(DriverODBC, "x").Placeholder(2))
	assert.Equal(t, "?", NewLegacyDB(DriverSQLite3, "x").Placeholder(1))
}
