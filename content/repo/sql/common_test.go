package sql

import (
	"os"
	"testing"

	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/log"
)

var (
	logger = log.WithStd(os.Stderr, "testing ", 0)
)

func newTestService(t *testing.T, opts ...db.Option) Service {
	t.Helper()

	s, err := newService(openTestDB(t, opts...), logger)
	if err != nil {
		t.Fatal(err)
	}

	return s
}
