package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Helper provides the driver specific parts of the store.
type Helper interface {
	SQL() SqlStmts
	InitSQL() []string

	CreateWithID(ctx context.Context, tx *sqlx.Tx, sql string, arg interface{}) (int64, error)

	// UniqueViolation reports the column whose unique constraint err
	// violated, if err is such a violation.
	UniqueViolation(err error) (column string, ok bool)
}

// ConnLimiter is implemented by helpers whose driver allows a single
// writer, capping the number of open connections of the pool.
type ConnLimiter interface {
	MaxOpenConns() int
}

type ArticleStmts struct {
	Exists   string
	Create   string
	GetByURL string

	GetTemplate   string
	CountTemplate string

	UniqueTitleIndex     string
	DropUniqueTitleIndex string
}

type SqlStmts struct {
	Article ArticleStmts
}

func Register(driver string, helper Helper) {
	if helper == nil {
		panic("No helper provided")
	}

	if _, ok := helpers[driver]; ok {
		panic("Helper " + driver + " already registered")
	}

	helpers[driver] = helper
}

// Can't recover from missing driver or statement, panic
func (db DB) SQL() SqlStmts {
	return db.helper().SQL()
}

func (db DB) helper() Helper {
	driver := db.DriverName()

	if h, ok := helpers[driver]; ok {
		return h
	}

	panic("No helper registered for " + driver)
}
