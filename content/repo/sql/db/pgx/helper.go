// Package pgx registers a helper for the pgx database/sql driver, sharing
// the postgres schema and statements.
package pgx

import (
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/content/repo/sql/db/base"
	"github.com/urandom/newsroom/content/repo/sql/db/postgres"
)

type Helper struct {
	*postgres.Helper
}

func (h Helper) UniqueViolation(err error) (string, bool) {
	var perr *pgconn.PgError
	if !errors.As(err, &perr) || perr.Code != postgres.UniqueViolationCode {
		return "", false
	}

	column, _ := base.ConstraintColumn(perr.ConstraintName)

	return column, true
}

func init() {
	db.Register("pgx", &Helper{Helper: postgres.NewHelper()})
}
