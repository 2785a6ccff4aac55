package sql

import (
	"text/template"

	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/log"
)

type Service struct {
	db *db.DB

	article articleRepo
	log     log.Log
}

// NewService opens the database and prepares the repositories. The driver
// helper must have been registered by importing its db subpackage.
func NewService(driver, source string, log log.Log, opts ...db.Option) (Service, error) {
	dbo := db.New(log, opts...)
	if err := dbo.Open(driver, source); err != nil {
		return Service{}, errors.WithMessage(err, "connecting to database")
	}

	s, err := newService(dbo, log)
	if err != nil {
		dbo.Close()
		return Service{}, err
	}

	return s, nil
}

func newService(dbo *db.DB, log log.Log) (Service, error) {
	stmts := dbo.SQL().Article

	get, err := template.New("get-articles-sql").Parse(stmts.GetTemplate)
	if err != nil {
		return Service{}, errors.Wrap(err, "generating get-articles template")
	}

	count, err := template.New("article-count-sql").Parse(stmts.CountTemplate)
	if err != nil {
		return Service{}, errors.Wrap(err, "generating article-count template")
	}

	return Service{
		db:      dbo,
		article: articleRepo{db: dbo, log: log, getTemplate: get, countTemplate: count},
		log:     log,
	}, nil
}

func (s Service) ArticleRepo() repo.Article {
	return s.article
}

func (s Service) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, "closing database")
	}

	return nil
}
