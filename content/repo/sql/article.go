package sql

import (
	"context"
	"database/sql"
	"strings"
	"text/template"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/pool"
)

type articleRepo struct {
	db *db.DB

	getTemplate   *template.Template
	countTemplate *template.Template

	log log.Log
}

type getArticlesData struct {
	Where string
	Order string
	Limit string
}

// Store inserts the article within a transaction, unless an article with
// the same url is already present. A unique violation on the url, caused by
// a concurrent store of the same article, is reported as a skip.
func (r articleRepo) Store(ctx context.Context, article content.Article) (bool, error) {
	if err := article.Validate(); err != nil {
		return false, errors.WithMessage(err, "validating article")
	}

	article = article.Categorized()

	r.log.Infof("Storing article %s", article)

	s := r.db.SQL().Article
	stored := false

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var count int64
		if err := r.db.WithNamedStmt(ctx, s.Exists, tx, func(stmt *sqlx.NamedStmt) error {
			return stmt.GetContext(ctx, &count, article)
		}); err != nil {
			return errors.Wrapf(err, "checking for existing article %s", article.URL)
		}

		if count > 0 {
			return nil
		}

		id, err := r.db.CreateWithID(ctx, tx, s.Create, article)
		if err != nil {
			return errors.WithMessage(err, "creating article")
		}

		r.log.Debugf("Created article %s with id %d", article.URL, id)
		stored = true

		return nil
	})

	if err != nil {
		if column, ok := r.db.UniqueViolation(err); ok {
			switch column {
			case "url":
				r.log.Infof("Article %s was stored concurrently, skipping", article.URL)
				return false, nil
			case "title":
				return false, errors.Wrapf(repo.ErrTitleConflict, "storing article %s with title %q", article.URL, article.Title)
			}
		}

		return false, errors.WithMessage(err, "storing article")
	}

	if !stored {
		r.log.Debugf("Article %s already stored", article.URL)
	}

	return stored, nil
}

func (r articleRepo) GetByURL(ctx context.Context, url string) (content.Article, error) {
	r.log.Infof("Getting article by url %s", url)

	var article content.Article
	if err := r.db.WithNamedStmt(ctx, r.db.SQL().Article.GetByURL, nil, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &article, content.Article{URL: url})
	}); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			err = content.ErrNoContent
		}

		return content.Article{}, errors.Wrapf(err, "getting article by url %s", url)
	}

	return article, nil
}

func (r articleRepo) All(ctx context.Context, opts ...content.QueryOpt) ([]content.Article, error) {
	o := content.QueryOptions{}
	o.Apply(opts)

	r.log.Infof("Getting articles with options %+v", o)

	renderData := getArticlesData{}

	var args map[string]interface{}
	renderData.Where, renderData.Order, renderData.Limit, args = constructSQLQueryOptions(o)

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	if err := r.getTemplate.Execute(buf, renderData); err != nil {
		return []content.Article{}, errors.Wrap(err, "executing get-articles template")
	}

	articles := []content.Article{}
	if err := r.db.WithNamedStmt(ctx, buf.String(), nil, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &articles, args)
	}); err != nil {
		return []content.Article{}, errors.Wrap(err, "getting articles")
	}

	return articles, nil
}

func (r articleRepo) Count(ctx context.Context, opts ...content.QueryOpt) (int64, error) {
	o := content.QueryOptions{}
	o.Apply(opts)

	r.log.Infof("Counting articles with options %+v", o)

	renderData := getArticlesData{}

	var args map[string]interface{}
	renderData.Where, _, _, args = constructSQLQueryOptions(o)

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	if err := r.countTemplate.Execute(buf, renderData); err != nil {
		return 0, errors.Wrap(err, "executing article-count template")
	}

	var count int64
	if err := r.db.WithNamedStmt(ctx, buf.String(), nil, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	}); err != nil {
		return 0, errors.Wrap(err, "getting article count")
	}

	return count, nil
}

func constructSQLQueryOptions(opts content.QueryOptions) (string, string, string, map[string]interface{}) {
	args := map[string]interface{}{}

	whereSlice := []string{}
	if opts.Category != "" {
		whereSlice = append(whereSlice, "category = :category")
		args["category"] = string(opts.Category)
	}

	var where string
	if len(whereSlice) > 0 {
		where = "WHERE " + strings.Join(whereSlice, " AND ")
	}

	order := "ORDER BY pub_date DESC, id DESC"
	if opts.OlderFirst {
		order = "ORDER BY pub_date ASC, id ASC"
	}

	var limit string
	if opts.Limit > 0 {
		limit = "LIMIT :limit OFFSET :offset"
		args["limit"] = opts.Limit
		args["offset"] = opts.Offset
	}

	return where, order, limit, args
}
