package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/content/repo/sql/db/base"
)

// UniqueViolationCode is the SQLSTATE of unique_violation.
const UniqueViolationCode = "23505"

type Helper struct {
	*base.Helper
}

// NewHelper creates a postgres helper, usable by any driver speaking the
// postgres dialect.
func NewHelper() *Helper {
	return &Helper{Helper: base.NewHelper()}
}

func (h Helper) InitSQL() []string {
	return initSQL
}

func (h Helper) CreateWithID(ctx context.Context, tx *sqlx.Tx, sql string, arg interface{}) (int64, error) {
	var id int64

	sql += " RETURNING id"

	stmt, err := tx.PrepareNamedContext(ctx, sql)
	if err != nil {
		return 0, errors.Wrap(err, "preparing create-with-id statement")
	}
	defer stmt.Close()

	err = stmt.QueryRowxContext(ctx, arg).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "scanning created id")
	}

	return id, nil
}

func (h Helper) UniqueViolation(err error) (string, bool) {
	var perr *pq.Error
	if !errors.As(err, &perr) || perr.Code != UniqueViolationCode {
		return "", false
	}

	column, _ := base.ConstraintColumn(perr.Constraint)

	return column, true
}

func init() {
	db.Register("postgres", NewHelper())
}
