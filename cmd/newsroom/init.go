package main

import (
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/classifier"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/content/repo"
	"github.com/urandom/newsroom/content/repo/logging"
	"github.com/urandom/newsroom/content/repo/sql"
	"github.com/urandom/newsroom/content/repo/sql/db"
	"github.com/urandom/newsroom/feed"
	"github.com/urandom/newsroom/log"
	"github.com/urandom/newsroom/task"

	_ "github.com/urandom/newsroom/content/repo/sql/db/pgx"
	_ "github.com/urandom/newsroom/content/repo/sql/db/postgres"
	_ "github.com/urandom/newsroom/content/repo/sql/db/sqlite3"
)

func initLog(config config.Log) log.Log {
	return log.WithLogrus(config)
}

func initService(config config.Config, log log.Log) (repo.Service, error) {
	service, err := sql.NewService(
		config.DB.Driver, config.DB.Connect, log,
		db.UniqueTitles(config.Store.UniqueTitles),
	)
	if err != nil {
		return nil, errors.WithMessage(err, "creating content service")
	}

	if config.Log.RepoCallDuration {
		return logging.NewService(service, log), nil
	}

	return service, nil
}

func initFetcher(config config.Timeout, log log.Log) feed.Fetcher {
	return feed.NewFetcher(
		feed.NewTimeoutClient(config.Converted.Connect, config.Converted.ReadWrite),
		log,
	)
}

// initOrchestrator wires the pipeline. The repository may be nil for
// processes which only submit feeds.
func initOrchestrator(queue task.Queue, config config.Config, articleRepo repo.Article, log log.Log) task.Orchestrator {
	return task.NewOrchestrator(queue, initFetcher(config.Timeout, log), classifier.New(), articleRepo, log)
}
