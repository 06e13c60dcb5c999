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

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT UNIQUE NOT NULL,
		student_id TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME,
		last_login DATETIME,
		reset_token TEXT,
		reset_code_hash TEXT,
		reset_token_expires DATETIME
	);`)
}

func createStudentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE student_ids (
		id TEXT PRIMARY KEY,
		student_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		department TEXT,
		major TEXT,
		class_name TEXT,
		is_used BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}
