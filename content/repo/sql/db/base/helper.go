package base

import (
	"context"
	"reflect"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content/repo/sql/db"
)

// Constraint names shared by the schemas of all drivers.
const (
	URLConstraint   = "news_articles_url_key"
	TitleConstraint = "news_articles_title_key"
)

type Helper struct {
	sql db.SqlStmts
}

func NewHelper() *Helper {
	return &Helper{sql: sqlStmts}
}

func (h Helper) SQL() db.SqlStmts {
	return h.sql
}

// Set replaces the statements which are non-empty in override.
func (h *Helper) Set(override db.SqlStmts) {
	oursPtr := reflect.ValueOf(&h.sql)
	ours := oursPtr.Elem()
	theirs := reflect.ValueOf(override)

	for i := 0; i < ours.NumField(); i++ {
		ourInner := ours.Field(i)
		theirInner := theirs.Field(i)

		for j := 0; j < theirInner.NumField(); j++ {
			ourField := ourInner.Field(j)
			theirField := theirInner.Field(j)

			if ourField.CanSet() && ourField.Kind() == reflect.String {
				if s := theirField.String(); s != "" {
					ourField.SetString(s)
				}
			}
		}
	}
}

func (h Helper) CreateWithID(ctx context.Context, tx *sqlx.Tx, sql string, arg interface{}) (int64, error) {
	stmt, err := tx.PrepareNamedContext(ctx, sql)
	if err != nil {
		return 0, errors.Wrap(err, "preparing create-with-id statement")
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, arg)
	if err != nil {
		return 0, errors.Wrap(err, "executing create-with-id statement")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "getting last insert id")
	}

	return id, nil
}

// ConstraintColumn maps a constraint name to the column it guards.
func ConstraintColumn(constraint string) (string, bool) {
	switch constraint {
	case URLConstraint:
		return "url", true
	case TitleConstraint:
		return "title", true
	}

	return "", false
}

var (
	sqlStmts = db.SqlStmts{}
)
