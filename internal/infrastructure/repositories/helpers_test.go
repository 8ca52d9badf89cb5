package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAPIKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		owner_email TEXT,
		key_hash TEXT NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL,
		rate_limit_per_minute INTEGER NOT NULL,
		last_used_at DATETIME,
		created_at DATETIME
	);`)
}

func createRateLimitTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE rate_limit_records (
		id TEXT PRIMARY KEY,
		key_hash TEXT NOT NULL,
		requested_at DATETIME NOT NULL
	);`)
}

func createRequestLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE request_logs (
		id TEXT PRIMARY KEY,
		endpoint TEXT NOT NULL,
		key_hash TEXT NOT NULL,
		requested_at DATETIME NOT NULL,
		status_code INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL,
		vehicle TEXT,
		diagnosis TEXT,
		estimate_usd REAL
	);`)
}
