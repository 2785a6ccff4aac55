package db

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/log"
)

// DB is a connection pool with the driver helper and store options attached.
// Every repository operation acquires its own connection or transaction
// from it.
type DB struct {
	*sqlx.DB
	log log.Log

	uniqueTitles bool
}

// Option customizes a DB before it is opened.
type Option func(*DB)

var (
	dbVersion = 1

	helpers = make(map[string]Helper)
)

// UniqueTitles toggles the unique constraint on the article title.
func UniqueTitles(unique bool) Option {
	return func(db *DB) {
		db.uniqueTitles = unique
	}
}

func New(log log.Log, opts ...Option) *DB {
	db := &DB{log: log, uniqueTitles: true}

	for _, o := range opts {
		o(db)
	}

	return db
}

func (db *DB) Open(driver, connect string) (err error) {
	if u, err := url.Parse(connect); err == nil && u.Scheme == "file" {
		path := u.Opaque
		if path == "" {
			path = u.Path
		}

		if dir := filepath.Dir(path); dir != "" && path != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return errors.Wrapf(err, "creating db directory %s", dir)
			}
		}
	}

	db.DB, err = sqlx.Connect(driver, connect)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s database", driver)
	}

	if l, ok := helpers[driver].(ConnLimiter); ok {
		db.SetMaxOpenConns(l.MaxOpenConns())
	}

	return db.init()
}

func (db *DB) CreateWithID(ctx context.Context, tx *sqlx.Tx, sql string, arg interface{}) (int64, error) {
	return db.helper().CreateWithID(ctx, tx, sql, arg)
}

// UniqueViolation reports the column of the unique constraint violated by
// err, if any.
func (db *DB) UniqueViolation(err error) (string, bool) {
	return db.helper().UniqueViolation(err)
}

func (db *DB) WithNamedStmt(ctx context.Context, query string, tx *sqlx.Tx, cb func(*sqlx.NamedStmt) error) error {
	var stmt *sqlx.NamedStmt
	var err error

	if tx == nil {
		stmt, err = db.PrepareNamedContext(ctx, query)
	} else {
		stmt, err = tx.PrepareNamedContext(ctx, query)
	}
	if err != nil {
		return errors.WithMessage(err, "preparing named statement")
	}
	defer stmt.Close()

	return cb(stmt)
}

// WithTx runs cb inside a transaction scoped to the call. The transaction is
// committed only if cb succeeds.
func (db *DB) WithTx(ctx context.Context, cb func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.WithMessage(err, "creating transaction")
	}
	defer tx.Rollback()

	if err := cb(tx); err != nil {
		return errors.WithMessage(err, "executing transaction")
	}

	if err := tx.Commit(); err != nil {
		return errors.WithMessage(err, "committing transaction")
	}

	return nil
}

func (db *DB) init() error {
	helper := helpers[db.DriverName()]

	if helper == nil {
		return errors.Errorf("no helper provided for driver '%s'", db.DriverName())
	}

	statements := helper.InitSQL()
	if db.uniqueTitles {
		statements = append(statements, helper.SQL().Article.UniqueTitleIndex)
	} else {
		statements = append(statements, helper.SQL().Article.DropUniqueTitleIndex)
	}

	for _, sql := range statements {
		_, err := db.Exec(sql)
		if err != nil {
			return errors.Wrapf(err, "executing '%s'", sql)
		}
	}

	var version int
	if err := db.Get(&version, "SELECT db_version FROM newsroom"); err != nil {
		if err != sql.ErrNoRows {
			return errors.Wrap(err, "getting the current db_version")
		}
		version = dbVersion
	}

	if version > dbVersion {
		return errors.Errorf("the db version '%d' is newer than the expected '%d'", version, dbVersion)
	}

	_, err := db.Exec(`DELETE FROM newsroom`)
	if err == nil {
		_, err = db.Exec(db.Rebind(`INSERT INTO newsroom(db_version) VALUES(?)`), dbVersion)
	}
	if err != nil {
		return errors.Wrap(err, "initializing newsroom utility table")
	}

	db.log.Debugf("Initialized %s database, version %d, unique titles: %v", db.DriverName(), dbVersion, db.uniqueTitles)

	return nil
}
