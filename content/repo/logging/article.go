package logging

import (
	"context"
	"time"

	"github.com/urandom/newsroom/content"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/log"
)

type articleRepo struct {
	repo.Article

	log log.Log
}

func (r articleRepo) Store(ctx context.Context, article content.Article) (bool, error) {
	start := time.Now()

	stored, err := r.Article.Store(ctx, article)

	r.log.Infof("repo.Article.Store took %s", time.Since(start))

	return stored, err
}

func (r articleRepo) GetByURL(ctx context.Context, url string) (content.Article, error) {
	start := time.Now()

	article, err := r.Article.GetByURL(ctx, url)

	r.log.Infof("repo.Article.GetByURL took %s", time.Since(start))

	return article, err
}

func (r articleRepo) All(ctx context.Context, opts ...content.QueryOpt) ([]content.Article, error) {
	start := time.Now()

	articles, err := r.Article.All(ctx, opts...)

	r.log.Infof("repo.Article.All took %s", time.Since(start))

	return articles, err
}

func (r articleRepo) Count(ctx context.Context, opts ...content.QueryOpt) (int64, error) {
	start := time.Now()

	count, err := r.Article.Count(ctx, opts...)

	r.log.Infof("repo.Article.Count took %s", time.Since(start))

	return count, err
}
