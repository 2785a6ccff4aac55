//go:build !postgres

package sql

import (
	"path/filepath"
	"testing"

	"github.com/urandom/newsroom/content/repo/sql/db"
	_ "github.com/urandom/newsroom/content/repo/sql/db/sqlite3"
)

func openTestDB(t *testing.T, opts ...db.Option) *db.DB {
	t.Helper()

	dbo := db.New(logger, opts...)
	path := filepath.Join(t.TempDir(), "newsroom-test.sqlite3")

	if err := dbo.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_txlock=immediate"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dbo.Close() })

	return dbo
}

func TestDB_Open_sqlite3(t *testing.T) {
	dbo := openTestDB(t)

	if got := dbo.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("DB.Open() max open connections = %d, want 1", got)
	}
}
