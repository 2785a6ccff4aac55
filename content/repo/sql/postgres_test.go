//go:build postgres

package sql

import (
	"os"
	"testing"

	"github.com/urandom/newsroom/content/repo/sql/db"
	_ "github.com/urandom/newsroom/content/repo/sql/db/pgx"
	_ "github.com/urandom/newsroom/content/repo/sql/db/postgres"
)

// NEWSROOM_TEST_POSTGRES holds the connection string of a disposable
// database, NEWSROOM_TEST_DRIVER selects between postgres and pgx.
func openTestDB(t *testing.T, opts ...db.Option) *db.DB {
	t.Helper()

	connect := os.Getenv("NEWSROOM_TEST_POSTGRES")
	if connect == "" {
		t.Skip("NEWSROOM_TEST_POSTGRES not set")
	}

	driver := os.Getenv("NEWSROOM_TEST_DRIVER")
	if driver == "" {
		driver = "postgres"
	}

	dbo := db.New(logger, opts...)
	if err := dbo.Open(driver, connect); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dbo.Close() })

	if _, err := dbo.Exec("TRUNCATE news_articles"); err != nil {
		t.Fatal(err)
	}

	return dbo
}
