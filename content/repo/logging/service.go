// Package logging decorates the content repositories, logging the duration
// of every call.
package logging

import (
	"time"

	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/log"
)

// Service wraps a repo.Service, timing every article repository call.
type Service struct {
	repo.Service

	article articleRepo
	log     log.Log
}

func NewService(s repo.Service, log log.Log) Service {
	return Service{
		Service: s,
		article: articleRepo{s.ArticleRepo(), log},
		log:     log,
	}
}

func (s Service) ArticleRepo() repo.Article {
	return s.article
}

func (s Service) Close() error {
	start := time.Now()

	err := s.Service.Close()

	s.log.Infof("repo.Service.Close took %s", time.Since(start))

	return err
}
