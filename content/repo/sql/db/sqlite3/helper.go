package sqlite3

import (
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/content/repo/sql/db/base"
)

type Helper struct {
	*base.Helper
}

func (h Helper) InitSQL() []string {
	return initSQL
}

// MaxOpenConns caps the pool at a single connection, sqlite admits one
// writer at a time.
func (h Helper) MaxOpenConns() int {
	return 1
}

// UniqueViolation parses the column out of messages such as
// "UNIQUE constraint failed: news_articles.url".
func (h Helper) UniqueViolation(err error) (string, bool) {
	var serr sqlite3.Error
	if !errors.As(err, &serr) || serr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}

	msg := serr.Error()
	idx := strings.Index(msg, "failed: ")
	if idx == -1 {
		return "", true
	}

	target := strings.SplitN(msg[idx+len("failed: "):], ",", 2)[0]
	if dot := strings.LastIndex(target, "."); dot != -1 {
		target = target[dot+1:]
	}

	return strings.TrimSpace(target), true
}

func init() {
	helper := &Helper{Helper: base.NewHelper()}

	db.Register("sqlite3", helper)
}
